package geometric

import (
	"math"

	"github.com/dkagen/dkagen/chunkgraph"
)

// RGGEmitter emits random-geometric-graph edges: two vertices are adjacent
// iff their Euclidean distance is at most Radius.
type RGGEmitter struct {
	engine    *chunkgraph.Engine
	radius    float64
	periodic  bool
	selfLoops bool
}

// NewRGGEmitter validates that the engine's cell size can hold the
// requested radius (cell_size >= r, per the construction-time enforcement
// decision recorded in DESIGN.md) and returns an emitter bound to engine.
func NewRGGEmitter(engine *chunkgraph.Engine, radius float64, periodic, selfLoops bool) (*RGGEmitter, error) {
	if radius <= 0 {
		return nil, ErrNonPositiveRadius
	}
	if engine.CellSize() < radius {
		return nil, ErrRadiusExceedsChunk
	}
	return &RGGEmitter{engine: engine, radius: radius, periodic: periodic, selfLoops: selfLoops}, nil
}

// EmitChunk resolves every cell of chunkID, materializes its vertices, and
// emits every edge owned by a vertex in that chunk: for vertex v, scan the
// 3x3 (2D) or 3x3x3 (3D) neighbor cell stencil and emit (v.ID, w.ID) for
// every w within Radius, skipping only the w.ID == v.ID pair unless
// SelfLoops is set. The stencil is symmetric, so when w also owns a chunk
// in scope it independently emits (w.ID, v.ID) for the same pair, giving
// both directions of the undirected edge without either side deduplicating
// by id order.
func (em *RGGEmitter) EmitChunk(chunkID uint64) ([]Edge, error) {
	dim := int(em.engine.Dim())
	var edges []Edge
	defer em.engine.SweepConsumedGhosts()

	for localID := uint64(0); localID < em.engine.CellsPerChunk(); localID++ {
		cell, err := em.engine.MaterializeVertices(chunkID, localID)
		if err != nil {
			return nil, err
		}
		abs := em.engine.AbsoluteCellCoords(chunkID, localID)

		offsets := neighborOffsets(dim)
		for _, v := range cell.Vertices {
			for _, off := range offsets {
				neighborCoords := make([]int64, dim)
				for i := 0; i < dim; i++ {
					neighborCoords[i] = int64(abs[i]) + off[i]
				}
				neighborCell, ok, err := em.engine.CellAtAbsolute(neighborCoords, em.periodic)
				if err != nil {
					return nil, err
				}
				if !ok {
					continue
				}
				if neighborCell.ChunkID != chunkID {
					em.engine.MarkGhostConsumed(neighborCell.ChunkID)
				}
				for _, w := range neighborCell.Vertices {
					if w.ID == v.ID && !em.selfLoops {
						continue
					}
					if em.distance(v, w) <= em.radius {
						edges = append(edges, Edge{U: v.ID, V: w.ID})
					}
				}
			}
		}
	}
	return edges, nil
}

func (em *RGGEmitter) distance(a, b chunkgraph.Vertex) float64 {
	dx := wrappedDelta(a.X, b.X, em.periodic)
	dy := wrappedDelta(a.Y, b.Y, em.periodic)
	if em.engine.Dim() == chunkgraph.Dim2 {
		return math.Hypot(dx, dy)
	}
	dz := wrappedDelta(a.Z, b.Z, em.periodic)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// wrappedDelta returns the shortest signed distance between two unit-domain
// coordinates, accounting for the periodic wraparound.
func wrappedDelta(a, b float64, periodic bool) float64 {
	d := a - b
	if !periodic {
		return d
	}
	if d > 0.5 {
		d -= 1
	} else if d < -0.5 {
		d += 1
	}
	return d
}

// neighborOffsets returns the 9 (2D) or 27 (3D) cell offsets, including the
// zero offset, that must be scanned for every vertex.
func neighborOffsets(dim int) [][]int64 {
	var offsets [][]int64
	axis := []int64{-1, 0, 1}
	if dim == 2 {
		for _, dx := range axis {
			for _, dy := range axis {
				offsets = append(offsets, []int64{dx, dy})
			}
		}
		return offsets
	}
	for _, dx := range axis {
		for _, dy := range axis {
			for _, dz := range axis {
				offsets = append(offsets, []int64{dx, dy, dz})
			}
		}
	}
	return offsets
}
