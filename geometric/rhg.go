package geometric

import (
	"math"

	"github.com/dkagen/dkagen/chunkgraph"
	"github.com/dkagen/dkagen/hashrand"
)

// RHGEmitter emits random-hyperbolic-graph edges using the native disk
// model: every vertex carries a radial coordinate R and an angular
// coordinate Theta, and two vertices are joined when the hyperbolic
// distance between their polar coordinates is at most Threshold. Only pairs
// whose X cells are at most one cell apart (with wraparound) are tested;
// pairs farther apart in angle are not emitted, even when their hyperbolic
// distance is within Threshold.
//
// The angular coordinate reuses chunkgraph's chunk/cell grid unchanged,
// treating the unit-domain X coordinate a vertex is assigned during
// materialization as Theta scaled to [0, 2*pi) — the grid's locality
// property (nearby cells hold nearby angles) is exactly what the neighbor
// stencil needs, whether the underlying coordinate means "position" or
// "angle". The radial coordinate is sampled independently per vertex from
// the hyperbolic disk's area-uniform density.
type RHGEmitter struct {
	engine    *chunkgraph.Engine
	threshold float64
	rMax      float64
	seed      uint64
	selfLoops bool
}

// NewRHGEmitter constructs an emitter over engine (expected to be a Dim2
// decomposition, the angular band partition). rMax bounds the disk radius
// and is typically derived from the target average degree.
func NewRHGEmitter(engine *chunkgraph.Engine, threshold, rMax float64, seed uint64, selfLoops bool) (*RHGEmitter, error) {
	if threshold <= 0 {
		return nil, ErrNonPositiveRadius
	}
	return &RHGEmitter{engine: engine, threshold: threshold, rMax: rMax, seed: seed, selfLoops: selfLoops}, nil
}

// radialCoordinate draws vertex v's radial coordinate from the disk's
// area-uniform density (inverse-CDF sampling: R = arccosh(1 + u*(cosh(rMax)-1))),
// seeded deterministically from the vertex id so it never depends on scan
// order.
func (em *RHGEmitter) radialCoordinate(vertexID uint64) float64 {
	stream := hashrand.NewUniformStream(hashrand.Hash64(em.seed, vertexID))
	u := stream.Float64()
	return math.Acosh(1 + u*(math.Cosh(em.rMax)-1))
}

func angleOf(v chunkgraph.Vertex) float64 {
	return v.X * 2 * math.Pi
}

// hyperbolicDistanceBelowThreshold reports whether the hyperbolic distance
// between (r1, theta1) and (r2, theta2) is at most Threshold, via the
// hyperbolic law of cosines: cosh(d) = cosh(r1)cosh(r2) -
// sinh(r1)sinh(r2)cos(theta1-theta2). Comparing cosh(d) against
// cosh(Threshold) avoids an extra Acosh call per pair.
func (em *RHGEmitter) hyperbolicDistanceBelowThreshold(r1, theta1, r2, theta2 float64) bool {
	coshD := math.Cosh(r1)*math.Cosh(r2) - math.Sinh(r1)*math.Sinh(r2)*math.Cos(theta1-theta2)
	return coshD <= math.Cosh(em.threshold)
}

// EmitChunk mirrors RGGEmitter.EmitChunk, but derives each vertex's radial
// coordinate on the fly and tests the hyperbolic predicate instead of
// Euclidean distance.
//
// Only the first grid axis (X) carries angle; the second (Y) is a leftover
// of reusing the 2D Euclidean chunk/cell grid and has no bearing on
// adjacency. Restricting the Y offset to the usual -1/0/1 stencil would
// miss vertices with near-equal angle but distant Y, so this scans every
// Y-cell of the engine's grid at each X offset in {-1, 0, 1}, and wraps the
// X axis at the grid boundary since angle is periodic at 2*pi by
// construction.
func (em *RHGEmitter) EmitChunk(chunkID uint64) ([]Edge, error) {
	var edges []Edge
	defer em.engine.SweepConsumedGhosts()

	cellsPerAxis := int64(em.engine.CellsPerAxis())

	for localID := uint64(0); localID < em.engine.CellsPerChunk(); localID++ {
		cell, err := em.engine.MaterializeVertices(chunkID, localID)
		if err != nil {
			return nil, err
		}
		abs := em.engine.AbsoluteCellCoords(chunkID, localID)

		for _, v := range cell.Vertices {
			rv := em.radialCoordinate(v.ID)
			thetaV := angleOf(v)
			for _, dx := range []int64{-1, 0, 1} {
				neighborX := int64(abs[0]) + dx
				for neighborY := int64(0); neighborY < cellsPerAxis; neighborY++ {
					neighborCell, ok, err := em.engine.CellAtAbsolute([]int64{neighborX, neighborY}, true)
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
						rw := em.radialCoordinate(w.ID)
						if em.hyperbolicDistanceBelowThreshold(rv, thetaV, rw, angleOf(w)) {
							edges = append(edges, Edge{U: v.ID, V: w.ID})
						}
					}
				}
			}
		}
	}
	return edges, nil
}
