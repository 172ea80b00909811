package chunkgraph

import (
	"errors"
	"sort"
	"testing"

	"github.com/dkagen/dkagen/hashrand"
)

func newTestEngine(t *testing.T, n int64, chunksPerDim, cellsPerDim uint64, dim Dimension) *Engine {
	t.Helper()
	e, err := NewEngine(EngineConfig{
		Seed:         424242,
		N:            n,
		ChunksPerDim: chunksPerDim,
		CellsPerDim:  cellsPerDim,
		Dim:          dim,
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  EngineConfig
		want error
	}{
		{"zero chunks per dim", EngineConfig{ChunksPerDim: 0, CellsPerDim: 1, N: 10, Dim: Dim2}, ErrInvalidChunksPerDim},
		{"zero cells per dim", EngineConfig{ChunksPerDim: 2, CellsPerDim: 0, N: 10, Dim: Dim2}, ErrInvalidCellsPerDim},
		{"negative n", EngineConfig{ChunksPerDim: 2, CellsPerDim: 2, N: -1, Dim: Dim2}, ErrInvalidPointCount},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewEngine(c.cfg)
			if !errors.Is(err, c.want) {
				t.Fatalf("got %v, want %v", err, c.want)
			}
		})
	}
}

// TestChunkCountsConserveTotal checks Invariant 1: summing every chunk's n
// over the whole grid reproduces N exactly, regardless of how many chunks
// the domain is split into.
func TestChunkCountsConserveTotal(t *testing.T) {
	for _, chunksPerDim := range []uint64{1, 2, 3, 5, 8} {
		e := newTestEngine(t, 10_000, chunksPerDim, 2, Dim2)
		var total int64
		for id := uint64(0); id < e.TotalChunks(); id++ {
			c, err := e.Chunk(id)
			if err != nil {
				t.Fatalf("Chunk(%d): %v", id, err)
			}
			if c.N < 0 {
				t.Fatalf("chunk %d has negative N=%d", id, c.N)
			}
			total += c.N
		}
		if total != 10_000 {
			t.Errorf("chunks_per_dim=%d: total=%d, want 10000", chunksPerDim, total)
		}
	}
}

// TestChunkOffsetsArePrefixSums checks Invariant 2: chunk offsets, sorted
// by offset, form the exclusive prefix sum of chunk counts, so vertex ids
// assigned across all chunks never overlap and never leave a gap. Sorting
// by id instead would not hold: resolveChunk's recursive binary split
// narrows axes in its own axis-major, level-major order, which for more
// than one axis is a different bit permutation from the Morton id's
// interleaved bits — offsets are not monotonic in id order.
func TestChunkOffsetsArePrefixSums(t *testing.T) {
	e := newTestEngine(t, 5_000, 4, 2, Dim2)
	type chunkByOffset struct {
		offset uint64
		n      int64
	}
	chunks := make([]chunkByOffset, 0, e.TotalChunks())
	for id := uint64(0); id < e.TotalChunks(); id++ {
		c, err := e.Chunk(id)
		if err != nil {
			t.Fatalf("Chunk(%d): %v", id, err)
		}
		chunks = append(chunks, chunkByOffset{c.Offset, c.N})
	}
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].offset < chunks[j].offset })

	var expected uint64
	for _, c := range chunks {
		if c.offset != expected {
			t.Fatalf("chunk at offset %d, want %d", c.offset, expected)
		}
		expected += uint64(c.n)
	}
	if expected != 5_000 {
		t.Fatalf("final prefix sum=%d, want 5000", expected)
	}
}

// TestOwnedChunksPartitionsExactlyOnceAcrossVaryingP fixes K (chunks_per_dim)
// and checks OwnedChunks across several communicator sizes, confirming K
// stays decoupled from P: every chunk id is owned by exactly one rank for
// every P tried, and the owned (count, offset) a rank reports exactly
// matches the sum over its owned chunks, taken in offset order, so
// consecutive ranks' ranges are contiguous.
func TestOwnedChunksPartitionsExactlyOnceAcrossVaryingP(t *testing.T) {
	const chunksPerDim = 8
	e := newTestEngine(t, 50_000, chunksPerDim, 2, Dim3)
	total := e.TotalChunks() // 8^3 = 512

	for _, size := range []int{1, 2, 4, 8, 16} {
		owner := make(map[uint64]int, total)
		var prevEnd uint64
		var sawAny bool
		for rank := 0; rank < size; rank++ {
			ids, start, count, err := e.OwnedChunks(rank, size)
			if err != nil {
				t.Fatalf("OwnedChunks(rank=%d, size=%d): %v", rank, size, err)
			}
			if count == 0 {
				continue
			}
			if sawAny && start != prevEnd {
				t.Fatalf("size=%d rank=%d range starts at %d, want %d (contiguous with previous rank)", size, rank, start, prevEnd)
			}
			sawAny = true
			prevEnd = start + count

			var sumN int64
			for _, id := range ids {
				if other, dup := owner[id]; dup {
					t.Fatalf("size=%d: chunk %d owned by both rank %d and rank %d", size, id, other, rank)
				}
				owner[id] = rank
				c, err := e.Chunk(id)
				if err != nil {
					t.Fatalf("Chunk(%d): %v", id, err)
				}
				sumN += c.N
			}
			if uint64(sumN) != count {
				t.Fatalf("size=%d rank=%d: owned chunks sum to %d vertices, OwnedChunks reported %d", size, rank, sumN, count)
			}
		}
		if uint64(len(owner)) != total {
			t.Fatalf("size=%d: %d of %d chunks owned, want all of them", size, len(owner), total)
		}
	}
}

// TestChunkMetadataIsInvariantUnderCommunicatorSize checks the testable
// property a fixed chunk's (n, offset) never depends on how many ranks K^d
// chunks are being divided across — Chunk resolves from (seed, N, K, id)
// alone, and OwnedChunks only slices the already-resolved, offset-sorted
// sequence, so reshaping P never perturbs any chunk's own metadata.
func TestChunkMetadataIsInvariantUnderCommunicatorSize(t *testing.T) {
	const chunksPerDim = 8
	e := newTestEngine(t, 50_000, chunksPerDim, 2, Dim3)

	const probeID = uint64(37)
	want, err := e.Chunk(probeID)
	if err != nil {
		t.Fatalf("Chunk(%d): %v", probeID, err)
	}

	for _, size := range []int{1, 2, 4, 8, 16} {
		got, err := e.Chunk(probeID)
		if err != nil {
			t.Fatalf("Chunk(%d) after touching size=%d: %v", probeID, size, err)
		}
		if got.N != want.N || got.Offset != want.Offset {
			t.Fatalf("size=%d perturbed chunk %d: got (n=%d, off=%d), want (n=%d, off=%d)", size, probeID, got.N, got.Offset, want.N, want.Offset)
		}
		// Exercise OwnedChunks at this size too, confirming whichever rank
		// ends up owning probeID reports metadata consistent with Chunk.
		for rank := 0; rank < size; rank++ {
			ids, _, _, err := e.OwnedChunks(rank, size)
			if err != nil {
				t.Fatalf("OwnedChunks(rank=%d, size=%d): %v", rank, size, err)
			}
			for _, id := range ids {
				if id != probeID {
					continue
				}
				c, err := e.Chunk(id)
				if err != nil {
					t.Fatalf("Chunk(%d): %v", id, err)
				}
				if c.N != want.N || c.Offset != want.Offset {
					t.Fatalf("size=%d rank=%d: chunk %d metadata (n=%d, off=%d) != (n=%d, off=%d)", size, rank, id, c.N, c.Offset, want.N, want.Offset)
				}
			}
		}
	}
}

// TestOwnedChunksHandlesMoreRanksThanChunks checks that ranks beyond the
// last non-empty block get an empty, zero-offset range rather than an
// error, when P exceeds the number of chunks available to distribute.
func TestOwnedChunksHandlesMoreRanksThanChunks(t *testing.T) {
	e := newTestEngine(t, 100, 2, 2, Dim2) // 4 chunks total
	ids, _, count, err := e.OwnedChunks(3, 8)
	if err != nil {
		t.Fatalf("OwnedChunks: %v", err)
	}
	if len(ids) != 0 || count != 0 {
		t.Fatalf("rank beyond chunk count: got ids=%v count=%d, want empty", ids, count)
	}
}

// TestChunkResolutionIsDeterministicAndMemoized checks Invariant 3: calling
// Chunk twice with the same id returns the identical value, whether served
// from cache or recomputed in a fresh Engine.
func TestChunkResolutionIsDeterministicAndMemoized(t *testing.T) {
	e := newTestEngine(t, 1_000, 4, 2, Dim3)
	first, err := e.Chunk(17)
	if err != nil {
		t.Fatalf("Chunk(17): %v", err)
	}
	second, err := e.Chunk(17)
	if err != nil {
		t.Fatalf("Chunk(17) again: %v", err)
	}
	if first != second {
		t.Fatalf("memoized chunk changed: %+v vs %+v", first, second)
	}

	fresh := newTestEngine(t, 1_000, 4, 2, Dim3)
	third, err := fresh.Chunk(17)
	if err != nil {
		t.Fatalf("Chunk(17) on fresh engine: %v", err)
	}
	if first != third {
		t.Fatalf("chunk 17 is not a pure function of (seed, id): %+v vs %+v", first, third)
	}
}

// TestChunkResolutionIsOrderIndependent checks that resolving chunks out of
// order, or resolving only a subset (as a rank owning one chunk would),
// gives the same result as resolving every chunk in id order — the whole
// point of "communication-free": no chunk's value depends on resolution
// order.
func TestChunkResolutionIsOrderIndependent(t *testing.T) {
	const chunksPerDim = 5
	baseline := newTestEngine(t, 8_192, chunksPerDim, 2, Dim2)
	var want []Chunk
	for id := uint64(0); id < baseline.TotalChunks(); id++ {
		c, err := baseline.Chunk(id)
		if err != nil {
			t.Fatalf("baseline Chunk(%d): %v", id, err)
		}
		want = append(want, c)
	}

	reversed := newTestEngine(t, 8_192, chunksPerDim, 2, Dim2)
	for id := reversed.TotalChunks(); id > 0; id-- {
		if _, err := reversed.Chunk(id - 1); err != nil {
			t.Fatalf("reversed Chunk(%d): %v", id-1, err)
		}
	}
	for id := uint64(0); id < reversed.TotalChunks(); id++ {
		got, _ := reversed.Chunk(id)
		if got != want[id] {
			t.Fatalf("chunk %d differs when resolved in reverse order: %+v vs %+v", id, got, want[id])
		}
	}
}

func TestChunkIDOutOfRangeIsRejected(t *testing.T) {
	e := newTestEngine(t, 100, 2, 2, Dim2)
	_, err := e.Chunk(e.TotalChunks())
	if !errors.Is(err, ErrChunkIDOutOfRange) {
		t.Fatalf("got %v, want ErrChunkIDOutOfRange", err)
	}
}

// TestCellCountsConserveChunkTotal mirrors TestChunkCountsConserveTotal one
// level down: a chunk's cells must sum back to that chunk's own N.
func TestCellCountsConserveChunkTotal(t *testing.T) {
	e := newTestEngine(t, 10_000, 3, 4, Dim2)
	for chunkID := uint64(0); chunkID < e.TotalChunks(); chunkID++ {
		chunk, err := e.Chunk(chunkID)
		if err != nil {
			t.Fatalf("Chunk(%d): %v", chunkID, err)
		}
		var total int64
		for localID := uint64(0); localID < e.CellsPerChunk(); localID++ {
			cell, err := e.Cell(chunkID, localID)
			if err != nil {
				t.Fatalf("Cell(%d, %d): %v", chunkID, localID, err)
			}
			total += cell.N
		}
		if total != chunk.N {
			t.Errorf("chunk %d: cell total=%d, want %d", chunkID, total, chunk.N)
		}
	}
}

// TestMaterializeVerticesProducesExactlyN checks that vertex materialization
// always yields exactly N vertices per cell, each within the cell's bounding
// box, and that repeating it is a no-op returning the same vertices.
func TestMaterializeVerticesProducesExactlyN(t *testing.T) {
	e := newTestEngine(t, 2_000, 4, 4, Dim2)
	cell, err := e.MaterializeVertices(6, 2)
	if err != nil {
		t.Fatalf("MaterializeVertices: %v", err)
	}
	if int64(len(cell.Vertices)) != cell.N {
		t.Fatalf("got %d vertices, want %d", len(cell.Vertices), cell.N)
	}
	for _, v := range cell.Vertices {
		if v.X < cell.Lower[0] || v.X >= cell.Lower[0]+e.CellSize() {
			t.Fatalf("vertex %d X=%f outside cell bounds [%f, %f)", v.ID, v.X, cell.Lower[0], cell.Lower[0]+e.CellSize())
		}
		if v.Y < cell.Lower[1] || v.Y >= cell.Lower[1]+e.CellSize() {
			t.Fatalf("vertex %d Y=%f outside cell bounds [%f, %f)", v.ID, v.Y, cell.Lower[1], cell.Lower[1]+e.CellSize())
		}
	}

	again, err := e.MaterializeVertices(6, 2)
	if err != nil {
		t.Fatalf("MaterializeVertices again: %v", err)
	}
	if len(again.Vertices) != len(cell.Vertices) {
		t.Fatalf("second call changed vertex count: %d vs %d", len(again.Vertices), len(cell.Vertices))
	}
}

func TestEvictGhostChunkRemovesChunkAndCells(t *testing.T) {
	e := newTestEngine(t, 1_000, 4, 2, Dim2)
	if _, err := e.Chunk(5); err != nil {
		t.Fatalf("Chunk(5): %v", err)
	}
	if _, err := e.Cell(5, 0); err != nil {
		t.Fatalf("Cell(5, 0): %v", err)
	}

	e.EvictGhostChunk(5)

	if _, ok := e.chunks.Get(5); ok {
		t.Fatalf("chunk 5 still present after eviction")
	}
	if _, ok := e.cells.Get(GlobalCellID(5, 0, e.CellsPerChunk())); ok {
		t.Fatalf("cell (5, 0) still present after eviction")
	}
}

func TestMarkGhostConsumedSweepsOnNextCall(t *testing.T) {
	e := newTestEngine(t, 1_000, 4, 2, Dim2)
	if _, err := e.Chunk(5); err != nil {
		t.Fatalf("Chunk(5): %v", err)
	}
	if _, err := e.Cell(5, 0); err != nil {
		t.Fatalf("Cell(5, 0): %v", err)
	}

	e.MarkGhostConsumed(5)
	if _, ok := e.chunks.Get(5); !ok {
		t.Fatal("chunk 5 evicted before sweep")
	}

	e.SweepConsumedGhosts()
	if _, ok := e.chunks.Get(5); ok {
		t.Fatal("chunk 5 still present after sweep")
	}

	// Sweeping again with nothing marked is a no-op, not an error.
	e.SweepConsumedGhosts()
}

func TestSplitExactConservesWantAcrossEveryIndex(t *testing.T) {
	for _, total := range []uint64{1, 2, 3, 7, 50} {
		for _, want := range []int64{0, 1, int64(total) / 2, int64(total)} {
			var selected int64
			for idx := uint64(0); idx < total; idx++ {
				ok, err := SplitExact(99, total, want, idx, hashrand.Config{})
				if err != nil {
					t.Fatalf("SplitExact(total=%d, want=%d, idx=%d): %v", total, want, idx, err)
				}
				if ok {
					selected++
				}
			}
			if selected != want {
				t.Fatalf("total=%d want=%d: selected %d", total, want, selected)
			}
		}
	}
}

func TestSplitExactIsOrderIndependent(t *testing.T) {
	const total, want = uint64(40), int64(13)
	forward := make([]bool, total)
	for idx := uint64(0); idx < total; idx++ {
		ok, err := SplitExact(7, total, want, idx, hashrand.Config{})
		if err != nil {
			t.Fatalf("SplitExact: %v", err)
		}
		forward[idx] = ok
	}
	for idx := total; idx > 0; idx-- {
		ok, err := SplitExact(7, total, want, idx-1, hashrand.Config{})
		if err != nil {
			t.Fatalf("SplitExact: %v", err)
		}
		if ok != forward[idx-1] {
			t.Fatalf("idx=%d: forward=%v backward=%v", idx-1, forward[idx-1], ok)
		}
	}
}

// TestHashSamplerConservesTotal checks that the exact hash-based sampler
// (cfg.Sampler.HashSample=true) conserves the total just as the gonum
// approximation does, since both must satisfy Invariant 1 regardless of
// which strategy is selected.
func TestHashSamplerConservesTotal(t *testing.T) {
	exact, err := NewEngine(EngineConfig{
		Seed: 7, N: 50_000, ChunksPerDim: 6, CellsPerDim: 2, Dim: Dim3,
		Sampler: hashrand.Config{HashSample: true},
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	var total int64
	for id := uint64(0); id < exact.TotalChunks(); id++ {
		c, err := exact.Chunk(id)
		if err != nil {
			t.Fatalf("Chunk(%d): %v", id, err)
		}
		total += c.N
	}
	if total != 50_000 {
		t.Fatalf("hash sampler: total=%d, want 50000", total)
	}
}
