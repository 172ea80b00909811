package chunkgraph

import "sort"

// OwnedChunks returns, in ascending offset order, the chunk ids rank owns
// out of size ranks, plus the vertex range those chunks cover.
//
// Chunk ids are Morton-encoded, which interleaves axis bits; chunk
// offsets accumulate in resolveChunk's own recursion order (axis-major
// within each split level, most-significant level first). For a K-chunk
// grid with more than one axis these two orders are different
// permutations of [0, K^d) — e.g. for a 2x2x2 grid, ascending offset
// visits Morton ids 0,4,2,6,1,5,3,7, not 0..7 — so the K^d chunks must be
// sorted by Offset, not by id, before they can be sliced into contiguous
// per-rank blocks. Distributing by id order would give each rank a
// correct chunk *set* but a non-contiguous vertex range, which is what
// VertexRange's contiguous-partition invariant forbids.
//
// size need not equal TotalChunks(): chunks_per_dim (K) is fixed by
// Config independent of the communicator size (P), the way KaGen itself
// decouples the two — a rank may own many chunks, one, or (if
// size > TotalChunks()) none.
func (e *Engine) OwnedChunks(rank, size int) (ids []uint64, start, count uint64, err error) {
	order, err := e.chunksByOffset()
	if err != nil {
		return nil, 0, 0, err
	}

	total := uint64(len(order))
	blockStart, blockCount := blockRangeFor(total, rank, size)
	owned := order[blockStart : blockStart+blockCount]

	if len(owned) == 0 {
		return nil, 0, 0, nil
	}

	first, err := e.Chunk(owned[0])
	if err != nil {
		return nil, 0, 0, err
	}
	last, err := e.Chunk(owned[len(owned)-1])
	if err != nil {
		return nil, 0, 0, err
	}

	ids = make([]uint64, len(owned))
	copy(ids, owned)
	return ids, first.Offset, last.Offset + uint64(last.N) - first.Offset, nil
}

// chunksByOffset resolves every chunk's (n, offset) — a per-rank,
// communication-free computation since each chunk's metadata is a pure
// function of (seed, N, K, id) — and returns their ids sorted by Offset.
func (e *Engine) chunksByOffset() ([]uint64, error) {
	ids := make([]uint64, e.totalChunks)
	offsets := make([]uint64, e.totalChunks)
	for id := uint64(0); id < e.totalChunks; id++ {
		c, err := e.Chunk(id)
		if err != nil {
			return nil, err
		}
		ids[id] = id
		offsets[id] = c.Offset
	}
	sort.Slice(ids, func(i, j int) bool { return offsets[ids[i]] < offsets[ids[j]] })
	return ids, nil
}

// blockRangeFor splits total items into size contiguous blocks as evenly
// as possible, the first (total mod size) blocks getting one extra item;
// ranks beyond the last non-empty block get a zero-length block.
func blockRangeFor(total uint64, rank, size int) (start, count uint64) {
	if size <= 0 || rank < 0 || uint64(rank) >= uint64(size) {
		return 0, 0
	}
	base := total / uint64(size)
	remainder := total % uint64(size)
	for r := 0; r < rank; r++ {
		c := base
		if uint64(r) < remainder {
			c++
		}
		start += c
	}
	count = base
	if uint64(rank) < remainder {
		count++
	}
	return start, count
}
