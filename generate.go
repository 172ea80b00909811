package dkagen

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/dkagen/dkagen/chunkgraph"
	"github.com/dkagen/dkagen/geometric"
	"github.com/dkagen/dkagen/hashrand"
)

// Generate computes this rank's slice of the graph described by cfg. It
// validates cfg, checks cfg's generator against its own Requirements, and
// dispatches to the matching generator implementation.
//
// ctx is checked once per local chunk, not inside a chunk's hot loops:
// the concurrency model promises no suspension points within a chunk, so
// cancellation is cooperative between chunks only.
func Generate(ctx context.Context, cfg Config, logger *slog.Logger) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if err := checkRequirements(cfg); err != nil {
		return Result{}, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	var result Result
	var err error
	switch cfg.Generator {
	case GeneratorRGG2D, GeneratorRGG3D, GeneratorRHG:
		result, err = generateGeometric(ctx, cfg, logger)
	case GeneratorGrid2D, GeneratorGrid3D:
		result, err = generateGrid(ctx, cfg, logger)
	case GeneratorGNM, GeneratorGNP:
		result, err = generateErdosRenyi(ctx, cfg, logger)
	default:
		return Result{}, &ConfigurationError{Field: "Generator", Reason: "unknown generator type"}
	}
	var inv *chunkgraph.InternalInvariantError
	if errors.As(err, &inv) {
		return Result{}, &InternalInvariantError{Seed: inv.Seed, ChunkID: inv.ChunkID, Level: inv.Level, Reason: inv.Reason}
	}
	return result, err
}

func generateGeometric(ctx context.Context, cfg Config, logger *slog.Logger) (Result, error) {
	dim := chunkgraph.Dim2
	if cfg.Generator == GeneratorRGG3D {
		dim = chunkgraph.Dim3
	}

	chunkSize := 1.0 / float64(cfg.K)
	cellsPerDim := cfg.CellsPerDim
	if cellsPerDim == 0 {
		cellsPerDim = geometric.CellsPerDim(chunkSize, cfg.R)
	}

	engine, err := chunkgraph.NewEngine(chunkgraph.EngineConfig{
		Seed:         cfg.Seed,
		N:            cfg.N,
		ChunksPerDim: cfg.K,
		CellsPerDim:  cellsPerDim,
		Dim:          dim,
		Sampler:      hashrand.Config{HashSample: cfg.HashSample},
	})
	if err != nil {
		return Result{}, err
	}

	var emit func(uint64) ([]geometric.Edge, error)
	switch cfg.Generator {
	case GeneratorRGG2D, GeneratorRGG3D:
		emitter, err := geometric.NewRGGEmitter(engine, cfg.R, cfg.Periodic, cfg.SelfLoops)
		if err != nil {
			return Result{}, err
		}
		emit = emitter.EmitChunk
	case GeneratorRHG:
		rMax := cfg.HypBase
		if rMax == 0 {
			rMax = 2 * math.Log(math.Max(float64(cfg.N)/math.Max(cfg.AvgDegree, 1), 1))
		}
		emitter, err := geometric.NewRHGEmitter(engine, cfg.R, rMax, cfg.Seed, cfg.SelfLoops)
		if err != nil {
			return Result{}, err
		}
		emit = emitter.EmitChunk
	}

	ownedChunks, start, numNodes, err := engine.OwnedChunks(cfg.Rank, cfg.Size)
	if err != nil {
		return Result{}, err
	}

	edges, err := emitOwnedChunks(ctx, engine, cfg, logger, ownedChunks, emit)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		VertexRange: VertexRange{Start: start, NumNodes: numNodes},
	}
	for _, e := range edges {
		result.EdgeList = append(result.EdgeList, [2]uint64{e.U, e.V})
	}
	if cfg.Coordinates {
		result.Coordinates = collectCoordinates(engine, ownedChunks)
	}
	result.Stats = Stats{
		ChunksResolved: uint64(len(ownedChunks)),
		CellsResolved:  engine.CellsPerChunk() * uint64(len(ownedChunks)),
		EdgesEmitted:   uint64(len(edges)),
	}
	return result, nil
}

// emitOwnedChunks runs emit against every chunk this rank owns, per
// chunkgraph.Engine.OwnedChunks, checking ctx once before each chunk — the
// concurrency model's only suspension point, between chunks, never inside
// one.
func emitOwnedChunks(ctx context.Context, engine *chunkgraph.Engine, cfg Config, logger *slog.Logger, ownedChunks []uint64, emit func(uint64) ([]geometric.Edge, error)) ([]geometric.Edge, error) {
	var edges []geometric.Edge
	for _, chunkID := range ownedChunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		chunk, err := engine.Chunk(chunkID)
		if err != nil {
			return nil, err
		}
		chunkEdges, err := emit(chunkID)
		if err != nil {
			return nil, err
		}
		edges = append(edges, chunkEdges...)
		logAdvanced(ctx, logger, cfg.StatisticsLevel, chunkID, chunk.N, len(chunkEdges))
	}
	return edges, nil
}

func collectCoordinates(engine *chunkgraph.Engine, ownedChunks []uint64) []Coordinate {
	coords := make([]Coordinate, 0)
	for _, chunkID := range ownedChunks {
		for localID := uint64(0); localID < engine.CellsPerChunk(); localID++ {
			cell, err := engine.MaterializeVertices(chunkID, localID)
			if err != nil {
				continue
			}
			for _, v := range cell.Vertices {
				coords = append(coords, Coordinate{X: v.X, Y: v.Y, Z: v.Z})
			}
		}
	}
	return coords
}
