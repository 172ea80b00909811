package chunkgraph

import "github.com/dkagen/dkagen/hashrand"

// resolveChunk derives chunk id's (n, offset) by descending the binary-split
// tree from the root box [0, chunks_per_dim)^dim, narrowing one axis at a
// time until every axis's range is a single chunk index. It never touches
// any chunk but the one on the path to id, which is the whole point: two
// ranks resolving disjoint chunks never need to talk to each other.
func (e *Engine) resolveChunk(id uint64) (Chunk, error) {
	dim := int(e.cfg.Dim)
	target := e.decode(id)

	lo := make([]uint64, dim)
	hi := make([]uint64, dim)
	for i := 0; i < dim; i++ {
		lo[i] = 0
		hi[i] = e.cfg.ChunksPerDim
	}

	n := e.cfg.N
	var offset uint64
	var level uint64

	for !boxIsSingleton(lo, hi) {
		regionStart := e.encode(lo)
		base := hashrand.Hash64(e.cfg.Seed, hashrand.ChunkKey(regionStart, level, e.totalChunks))

		for axis := 0; axis < dim; axis++ {
			size := hi[axis] - lo[axis]
			if size <= 1 {
				continue
			}
			splitter := lo[axis] + (size+1)/2
			if splitter <= lo[axis] || splitter >= hi[axis] {
				return Chunk{}, &InternalInvariantError{
					Seed: e.cfg.Seed, ChunkID: id, Level: level,
					Reason: "splitter did not narrow the region",
				}
			}
			lowCount := splitter - lo[axis]
			p := float64(lowCount) / float64(size)

			digest := hashrand.Hash64(base, uint64(axis))
			nLow, err := hashrand.Binomial(digest, n, p, e.cfg.Sampler)
			if err != nil {
				return Chunk{}, err
			}
			if nLow < 0 || nLow > n {
				return Chunk{}, &InternalInvariantError{
					Seed: e.cfg.Seed, ChunkID: id, Level: level,
					Reason: "binomial draw did not conserve point count",
				}
			}

			if target[axis] < splitter {
				n = nLow
				hi[axis] = splitter
			} else {
				offset += uint64(nLow)
				n = n - nLow
				lo[axis] = splitter
			}
		}
		level++
	}

	var lower [3]float64
	for i := 0; i < dim; i++ {
		lower[i] = float64(lo[i]) * e.chunkSize
	}

	c := Chunk{ID: id, N: n, Lower: lower, Offset: offset, State: Counted}
	e.chunks.Put(c)
	return c, nil
}

func boxIsSingleton(lo, hi []uint64) bool {
	for i := range lo {
		if hi[i]-lo[i] > 1 {
			return false
		}
	}
	return true
}
