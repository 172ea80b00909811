package hashrand

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Config tunes which sampling strategy Binomial uses. It carries the one
// sampler-tuning field of dkagen.Config the samplers read (HashSample)
// without importing the root package, so hashrand stays a leaf.
type Config struct {
	// HashSample selects the exact hash-based rejection sampler instead of
	// the fast binomial approximation. Slower, but its result depends only
	// on (digest, n, p), never on any floating-point RNG state.
	HashSample bool
}

// Binomial draws a Binomial(n, p) variate seeded by digest. The result is a
// pure function of (digest, n, p, cfg.HashSample): calling it twice with the
// same inputs, on any rank, on any platform, returns the same k.
//
// p is clamped defensively to [0, 1] by the caller's construction (chunk
// splitters always produce p in that range); Binomial itself rejects
// out-of-range inputs rather than silently clamping, since an out-of-range p
// reaching this function indicates a bug in the caller's splitter math.
func Binomial(digest uint64, n int64, p float64, cfg Config) (int64, error) {
	if n < 0 {
		return 0, ErrNegativeTrials
	}
	if p < 0 || p > 1 {
		return 0, ErrInvalidProbability
	}
	if n == 0 || p == 0 {
		return 0, nil
	}
	if p == 1 {
		return n, nil
	}

	if cfg.HashSample {
		return exactBinomial(digest, n, p), nil
	}
	return approxBinomial(digest, n, p), nil
}

// approxBinomial uses gonum's stat/distuv implementation, which switches
// internally between direct simulation and a normal approximation depending
// on n·p — fast, and accurate enough once a chunk's point count is large
// relative to the number of times it gets split.
func approxBinomial(digest uint64, n int64, p float64) int64 {
	dist := distuv.Binomial{
		N:   float64(n),
		P:   p,
		Src: rand.New(rand.NewSource(int64(digest))),
	}
	k := int64(dist.Rand())
	if k < 0 {
		k = 0
	}
	if k > n {
		k = n
	}
	return k
}

// exactBinomial simulates n independent Bernoulli(p) trials, each trial's
// outcome a deterministic function of digest and the trial index via
// Hash64, and returns the count of successes. It is O(n) but depends on
// nothing but its three inputs, which is what "exact hash-based reject
// sampling" buys over the approximation: no dependence on any RNG's
// internal state, only on the hash.
func exactBinomial(digest uint64, n int64, p float64) int64 {
	var successes int64
	for i := int64(0); i < n; i++ {
		u := uniformFromHash(Hash64(digest, uint64(i)))
		if u < p {
			successes++
		}
	}
	return successes
}

// uniformFromHash turns a 64-bit digest into a uniform double in [0, 1)
// using the top 53 bits, matching the precision math/rand.Float64 uses.
func uniformFromHash(h uint64) float64 {
	return float64(h>>11) / float64(uint64(1)<<53)
}
