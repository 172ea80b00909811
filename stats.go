package dkagen

import (
	"context"
	"log/slog"
)

// Stats is a per-rank snapshot of generation counters. Generate fills it in
// at every Config.StatisticsLevel.
type Stats struct {
	ChunksResolved uint64
	CellsResolved  uint64
	EdgesEmitted   uint64
}

// logAdvanced emits a per-chunk breakdown at slog.LevelDebug when the
// configured statistics level is StatisticsAdvanced. It is a no-op
// otherwise, so the hot generation path never pays for a disabled logger.
func logAdvanced(ctx context.Context, logger *slog.Logger, level StatisticsLevel, chunkID uint64, chunkN int64, edgesFromChunk int) {
	if level != StatisticsAdvanced {
		return
	}
	logger.DebugContext(ctx, "chunk resolved",
		slog.Uint64("chunk_id", chunkID),
		slog.Int64("n", chunkN),
		slog.Int("edges_emitted", edgesFromChunk),
	)
}
