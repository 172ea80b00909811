package chunkgraph

import "github.com/dkagen/dkagen/hashrand"

// SplitExact reports whether idx, a position in [0, total), is one of the
// want items selected from that range. It is resolveChunk's recursive
// binary-split multinomial applied along a single axis instead of two or
// three: at each step the remaining region is halved, a Binomial draw
// (capped so that neither half receives more items than it has positions)
// decides how many of the current want fall in the low half, and the
// recursion narrows into whichever half contains idx, carrying the updated
// want with it. That conserves want across the split exactly, the same
// invariant resolveChunk conserves n across a chunk's axes, and the result
// depends only on (seed, total, want, idx) — any two callers asking about
// disjoint idx values in the same (seed, total, want) space never need to
// exchange anything to agree on a consistent selection.
//
// This is the primitive a caller reaches for when it needs to distribute an
// exact total count across a pool addressed by flat index without
// inter-rank communication, the way chunk resolution distributes N points
// across K^d chunks — erdosrenyi.go's exact-M edge selection is one such
// caller, picking M edges out of the full pair pool.
func SplitExact(seed, total uint64, want int64, idx uint64, cfg hashrand.Config) (bool, error) {
	if total == 0 {
		return false, nil
	}
	lo, hi := uint64(0), total
	n := want
	var level uint64

	for hi-lo > 1 {
		size := hi - lo
		splitter := lo + (size+1)/2
		p := float64(splitter-lo) / float64(size)

		digest := hashrand.Hash64(seed, hashrand.ChunkKey(lo, level, total))
		nLow, err := hashrand.Binomial(digest, n, p, cfg)
		if err != nil {
			return false, err
		}
		// Neither half can hold more selected items than it has positions.
		if lowSize := int64(splitter - lo); nLow > lowSize {
			nLow = lowSize
		}
		if highSize := int64(hi - splitter); n-nLow > highSize {
			nLow = n - highSize
		}
		if nLow < 0 || nLow > n {
			return false, &InternalInvariantError{
				Seed: seed, ChunkID: idx, Level: level,
				Reason: "binomial draw did not conserve count",
			}
		}

		if idx < splitter {
			n = nLow
			hi = splitter
		} else {
			n -= nLow
			lo = splitter
		}
		level++
	}
	return n == 1, nil
}
