package dkagen

import (
	"context"
	"log/slog"

	"github.com/dkagen/dkagen/gridmodel"
)

func generateGrid(ctx context.Context, cfg Config, logger *slog.Logger) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	dim := gridmodel.Dim2
	if cfg.Generator == GeneratorGrid3D {
		dim = gridmodel.Dim3
	}

	lattice, err := gridmodel.NewLattice(gridmodel.Config{
		BaseSize:     cfg.BaseSize,
		BlocksPerDim: cfg.K,
		Dim:          dim,
		Periodic:     cfg.Periodic,
		SelfLoops:    cfg.SelfLoops,
	})
	if err != nil {
		return Result{}, err
	}

	rank := uint64(cfg.Rank)
	start, size, err := lattice.VertexRangeFor(rank)
	if err != nil {
		return Result{}, err
	}
	edges, err := lattice.EmitBlock(rank)
	if err != nil {
		return Result{}, err
	}

	result := Result{VertexRange: VertexRange{Start: start, NumNodes: size}}
	for _, e := range edges {
		result.EdgeList = append(result.EdgeList, [2]uint64{e.U, e.V})
	}
	result.Stats = Stats{ChunksResolved: 1, EdgesEmitted: uint64(len(edges))}
	logAdvanced(ctx, logger, cfg.StatisticsLevel, rank, int64(size), len(edges))
	return result, nil
}
