package chunkgraph

// Dimension selects 2D or 3D chunk decomposition.
type Dimension int

const (
	// Dim2 partitions the unit square into chunks_per_dim^2 chunks.
	Dim2 Dimension = 2
	// Dim3 partitions the unit cube into chunks_per_dim^3 chunks.
	Dim3 Dimension = 3
)

// State is a chunk or cell's position in the Absent → Counted →
// CellsDistributed → Complete lifecycle. Transitions are monotonic:
// a chunk never moves backwards, and each state implies every attribute
// the states before it promise.
type State int

const (
	// Absent means the chunk/cell has never been resolved.
	Absent State = iota
	// Counted means (n, lower-corner, offset) are known.
	Counted
	// CellsDistributed means a chunk's cell counts have been split. The
	// engine never assigns it: chunks stay Counted.
	CellsDistributed
	// Complete means vertices have been materialized (cells only).
	Complete
)

// Vertex is a single generated point: coordinates plus its global id.
// Z is unused (left at 0) for 2D decompositions.
type Vertex struct {
	X, Y, Z float64
	ID      uint64
}

// Chunk is a d-dimensional axis-aligned sub-cube of the unit domain,
// identified by a Morton-encoded id in [0, K^d).
type Chunk struct {
	ID     uint64
	N      int64
	Lower  [3]float64 // lower corner coordinates; Z unused in 2D
	Offset uint64      // first vertex id assigned to this chunk
	State  State
}

// Cell is a finer subdivision inside a chunk, identified by
// (chunk id, local cell id) and flattened into a single global cell id by
// GlobalCellID.
type Cell struct {
	ChunkID      uint64
	LocalCellID  uint64
	N            int64
	Lower        [3]float64
	Offset       uint64
	State        State
	Vertices     []Vertex
}

// GlobalCellID flattens (chunkID, localCellID) into the single key the cell
// table is indexed by.
func GlobalCellID(chunkID, localCellID, cellsPerChunk uint64) uint64 {
	return chunkID*cellsPerChunk + localCellID
}
