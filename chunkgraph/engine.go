package chunkgraph

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/dkagen/dkagen/hashrand"
	"github.com/dkagen/dkagen/morton"
)

// EngineConfig configures a chunk/cell decomposition.
type EngineConfig struct {
	Seed          uint64
	N             int64 // total point count
	ChunksPerDim  uint64
	CellsPerDim   uint64 // per axis; cells_per_chunk = CellsPerDim^Dim
	Dim           Dimension
	Sampler       hashrand.Config
}

// Engine resolves chunks and cells for one rank. It is not safe for
// concurrent use: a generator is scoped to a single goroutine per rank, so
// Engine touches its tables without locking, matching core.Graph's model of
// explicit synchronization only where callers actually share state.
type Engine struct {
	cfg EngineConfig

	totalChunks   uint64
	chunkSize     float64
	cellsPerChunk uint64
	cellSize      float64

	chunks *chunkTable
	cells  *cellTable

	// consumedGhosts tracks ghost chunk ids the edge emitter has finished
	// with. Marking is O(1); SweepConsumedGhosts evicts them from the
	// tables in one amortized pass instead of the emitter calling
	// EvictGhostChunk inline on every chunk boundary crossing.
	consumedGhosts *roaring.Bitmap
}

// NewEngine validates cfg and constructs an Engine. K=0 or cells_per_dim=0
// are startup-time ConfigurationErrors in the façade; here they surface as
// the package's own sentinel errors so chunkgraph stays usable standalone.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.ChunksPerDim == 0 {
		return nil, ErrInvalidChunksPerDim
	}
	if cfg.CellsPerDim == 0 {
		return nil, ErrInvalidCellsPerDim
	}
	if cfg.N < 0 {
		return nil, ErrInvalidPointCount
	}
	dim := int(cfg.Dim)

	totalChunks := pow(cfg.ChunksPerDim, uint64(dim))
	cellsPerChunk := pow(cfg.CellsPerDim, uint64(dim))

	return &Engine{
		cfg:           cfg,
		totalChunks:   totalChunks,
		chunkSize:     1.0 / float64(cfg.ChunksPerDim),
		cellsPerChunk:  cellsPerChunk,
		cellSize:       1.0 / (float64(cfg.ChunksPerDim) * float64(cfg.CellsPerDim)),
		chunks:         newChunkTable(totalChunks, 64),
		cells:          newCellTable(totalChunks*cellsPerChunk, 256),
		consumedGhosts: roaring.New(),
	}, nil
}

// TotalChunks returns chunks_per_dim^dim.
func (e *Engine) TotalChunks() uint64 { return e.totalChunks }

// CellsPerChunk returns cells_per_dim^dim.
func (e *Engine) CellsPerChunk() uint64 { return e.cellsPerChunk }

// ChunkSize returns the side length of one chunk in the unit domain.
func (e *Engine) ChunkSize() float64 { return e.chunkSize }

// CellSize returns the side length of one cell in the unit domain.
func (e *Engine) CellSize() float64 { return e.cellSize }

// Chunk resolves and returns chunk id, computing it (and, transitively, any
// intermediate boxes on its path from the root) if it is not already
// memoized. Calling Chunk twice with the same id returns the same value
// (Invariant 3).
func (e *Engine) Chunk(id uint64) (Chunk, error) {
	if id >= e.totalChunks {
		return Chunk{}, ErrChunkIDOutOfRange
	}
	if c, ok := e.chunks.Get(id); ok {
		return *c, nil
	}
	return e.resolveChunk(id)
}

// EvictGhostChunk removes a non-owned chunk and all of its cells from the
// tables immediately, once the edge emitter has fully consumed it as a
// neighbor. Ghost cells can be discarded as soon as their chunk has been
// fully consumed by the edge emitter.
func (e *Engine) EvictGhostChunk(id uint64) {
	e.chunks.Delete(id)
	for i := uint64(0); i < e.cellsPerChunk; i++ {
		e.cells.Delete(GlobalCellID(id, i, e.cellsPerChunk))
	}
}

// MarkGhostConsumed records that the emitter is done with a ghost chunk,
// without evicting it yet. The id is truncated to uint32, which is lossless
// while the chunk count chunks_per_dim^dim stays below 2^32.
func (e *Engine) MarkGhostConsumed(id uint64) {
	e.consumedGhosts.Add(uint32(id))
}

// SweepConsumedGhosts evicts every chunk marked by MarkGhostConsumed since
// the last sweep, in one amortized pass, and clears the mark set.
func (e *Engine) SweepConsumedGhosts() {
	for _, id := range e.consumedGhosts.ToArray() {
		e.EvictGhostChunk(uint64(id))
	}
	e.consumedGhosts.Clear()
}

func pow(base, exp uint64) uint64 {
	result := uint64(1)
	for i := uint64(0); i < exp; i++ {
		result *= base
	}
	return result
}

// encode maps a per-axis coordinate slice to a single chunk id via the
// Morton codec (component B), giving spatially adjacent chunks nearby ids.
func (e *Engine) encode(coords []uint64) uint64 {
	if e.cfg.Dim == Dim2 {
		return morton.Encode2D(coords[0], coords[1])
	}
	return morton.Encode3D(coords[0], coords[1], coords[2])
}

// decode is the inverse of encode.
func (e *Engine) decode(id uint64) []uint64 {
	if e.cfg.Dim == Dim2 {
		x, y := morton.Decode2D(id)
		return []uint64{x, y}
	}
	x, y, z := morton.Decode3D(id)
	return []uint64{x, y, z}
}
