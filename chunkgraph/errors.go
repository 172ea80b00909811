package chunkgraph

import (
	"errors"
	"fmt"
)

// Sentinel errors for the chunkgraph package.
var (
	// ErrInvalidChunksPerDim indicates chunks_per_dim was zero or negative.
	ErrInvalidChunksPerDim = errors.New("chunkgraph: chunks_per_dim must be positive")
	// ErrInvalidCellsPerDim indicates cells_per_dim was zero or negative.
	ErrInvalidCellsPerDim = errors.New("chunkgraph: cells_per_dim must be positive")
	// ErrInvalidPointCount indicates N was negative.
	ErrInvalidPointCount = errors.New("chunkgraph: point count must be non-negative")
	// ErrChunkIDOutOfRange indicates a requested chunk id is outside [0, K^d).
	ErrChunkIDOutOfRange = errors.New("chunkgraph: chunk id out of range")
)

// InternalInvariantError reports a multinomial split that failed to
// conserve its input count, or a recursion that could not make progress —
// both are bugs in the engine, never expected in normal operation, and the
// this module aborts with full context rather than silently
// continuing.
type InternalInvariantError struct {
	Seed    uint64
	ChunkID uint64
	Level   uint64
	Reason  string
}

func (e *InternalInvariantError) Error() string {
	return fmt.Sprintf("chunkgraph: internal invariant violated (seed=%d chunk=%d level=%d): %s",
		e.Seed, e.ChunkID, e.Level, e.Reason)
}

// Unwrap lets callers match errors.Is(err, ErrInternalInvariant).
func (e *InternalInvariantError) Unwrap() error { return ErrInternalInvariant }

// ErrInternalInvariant is the category sentinel InternalInvariantError wraps.
var ErrInternalInvariant = errors.New("chunkgraph: internal invariant violated")
