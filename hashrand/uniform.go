package hashrand

import "math/rand"

// UniformStream is a per-cell uniform generator seeded from a digest. It
// stands in for a Mersenne Twister:
// math/rand's default source already produces 53-bit-precision uniform
// doubles via Float64, which is exactly the precision this module needs, so no
// dedicated MT19937 port is needed here — see the module's DESIGN.md.
//
// A UniformStream is only ever used after a cell's point count is fixed: no
// cross-rank determinism depends on which draws happen in which order once
// materialization starts, since every cell has its own independent stream.
type UniformStream struct {
	rng *rand.Rand
}

// NewUniformStream seeds a stream from digest. Two streams built from the
// same digest produce identical sequences.
func NewUniformStream(digest uint64) *UniformStream {
	return &UniformStream{rng: rand.New(rand.NewSource(int64(digest)))}
}

// Float64 returns the next uniform double in [0, 1).
func (s *UniformStream) Float64() float64 {
	return s.rng.Float64()
}

// In returns the next uniform double in [lo, hi).
func (s *UniformStream) In(lo, hi float64) float64 {
	return lo + s.Float64()*(hi-lo)
}
