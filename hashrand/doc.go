// Package hashrand provides the deterministic sampling primitives shared by
// every chunk/cell decomposition in dkagen.
//
// A generator never shares random state across ranks: instead, every variate
// it draws is seeded from a 64-bit hash of (seed, key), so that two ranks
// asking for the same key always see the same draw regardless of what else
// either rank has generated so far.
//
// Overview:
//
//   - Hash64 mixes a 64-bit seed and a 64-bit key into a single 64-bit digest.
//     It is never used as a variate itself, only to seed the generators below.
//   - Binomial draws a Binomial(n, p) variate from a digest, via either a fast
//     approximation (gonum's stat/distuv) or an exact hash-based rejection
//     sampler, selected by Config.HashSample.
//   - UniformStream wraps a digest-seeded math/rand.Rand that produces
//     53-bit uniform floats — the role a Mersenne Twister would otherwise
//     play, without needing a dedicated MT19937 port.
//
// Determinism:
//
//   - Binomial(key, n, p) depends only on (key, n, p); it never touches any
//     other digest or stream.
//   - Independence across recursion siblings comes from disjoint keys, not
//     from advancing any shared generator state.
//
// Complexity: Hash64, the approximate Binomial path and UniformStream draws
// are O(1) beyond the underlying math/rand and distuv calls; the exact
// Binomial path (Config.HashSample) is O(n) in the number of trials.
package hashrand
