package chunkgraph

import "github.com/dkagen/dkagen/hashrand"

// Cell resolves and returns the localID-th cell of chunk id, splitting the
// chunk's point count across its cells_per_dim^dim cells and, unlike chunk
// resolution, doing so in one shot rather than recursively: a chunk's cells
// form a flat grid, not a further binary-split tree, so distributing a
// chunk's count across its cells is a single pass over
// cellsPerChunk-1 conditioned binomial draws.
func (e *Engine) Cell(chunkID, localID uint64) (Cell, error) {
	if localID >= e.cellsPerChunk {
		return Cell{}, ErrInvalidCellsPerDim
	}
	global := GlobalCellID(chunkID, localID, e.cellsPerChunk)
	if c, ok := e.cells.Get(global); ok {
		return *c, nil
	}

	chunk, err := e.Chunk(chunkID)
	if err != nil {
		return Cell{}, err
	}

	cell, err := e.resolveCell(chunk, localID, global)
	if err != nil {
		return Cell{}, err
	}
	if cell.N > 0 {
		e.cells.PutAt(global, cell)
	}
	return cell, nil
}

// resolveCell distributes chunk.N across its cells sequentially: cell 0
// gets a Binomial(remaining, 1/cellsRemaining) draw, cell 1 gets a draw from
// what's left, and so on, each draw's digest keyed by hashrand.CellKey so
// cell i's count never depends on having resolved cell i-1's vertices (only
// on the running remainder, a pure function of the chunk's own N).
func (e *Engine) resolveCell(chunk Chunk, localID, global uint64) (Cell, error) {
	dim := int(e.cfg.Dim)
	cellsPerAxis := e.cfg.CellsPerDim
	coords := decodeCellCoords(localID, cellsPerAxis, dim)

	remaining := chunk.N
	var offset uint64
	remainingCells := e.cellsPerChunk

	for i := uint64(0); i < localID; i++ {
		digest := hashrand.Hash64(e.cfg.Seed, hashrand.CellKey(chunk.ID, e.cellsPerChunk, i, e.totalChunks))
		p := 1.0 / float64(remainingCells)
		n, err := hashrand.Binomial(digest, remaining, p, e.cfg.Sampler)
		if err != nil {
			return Cell{}, err
		}
		offset += uint64(n)
		remaining -= n
		remainingCells--
	}

	digest := hashrand.Hash64(e.cfg.Seed, hashrand.CellKey(chunk.ID, e.cellsPerChunk, localID, e.totalChunks))
	var n int64
	var err error
	if remainingCells == 1 {
		n = remaining
	} else {
		p := 1.0 / float64(remainingCells)
		n, err = hashrand.Binomial(digest, remaining, p, e.cfg.Sampler)
		if err != nil {
			return Cell{}, err
		}
	}

	var lower [3]float64
	for i := 0; i < dim; i++ {
		lower[i] = chunk.Lower[i] + float64(coords[i])*e.cellSize
	}

	return Cell{
		ChunkID:     chunk.ID,
		LocalCellID: localID,
		N:           n,
		Lower:       lower,
		Offset:      chunk.Offset + offset,
		State:       Counted,
	}, nil
}

// decodeCellCoords maps a flat local cell id into per-axis grid coordinates
// within [0, cellsPerAxis), in row-major order.
func decodeCellCoords(localID, cellsPerAxis uint64, dim int) []uint64 {
	coords := make([]uint64, dim)
	for i := 0; i < dim; i++ {
		coords[i] = localID % cellsPerAxis
		localID /= cellsPerAxis
	}
	return coords
}

// MaterializeVertices fills cell.Vertices with cell.N points drawn uniformly
// from the cell's sub-box and marks the cell Complete. It is idempotent:
// calling it twice returns the same cached Cell.
func (e *Engine) MaterializeVertices(chunkID, localID uint64) (Cell, error) {
	global := GlobalCellID(chunkID, localID, e.cellsPerChunk)
	cell, ok := e.cells.Get(global)
	if !ok {
		resolved, err := e.Cell(chunkID, localID)
		if err != nil {
			return Cell{}, err
		}
		cell = &resolved
	}
	if cell.State == Complete {
		return *cell, nil
	}

	stream := hashrand.NewUniformStream(hashrand.Hash64(e.cfg.Seed, hashrand.VertexStreamKey(chunkID, e.cellsPerChunk, localID)))
	dim := int(e.cfg.Dim)
	vertices := make([]Vertex, cell.N)
	for i := int64(0); i < cell.N; i++ {
		v := Vertex{ID: cell.Offset + uint64(i)}
		v.X = stream.In(cell.Lower[0], cell.Lower[0]+e.cellSize)
		v.Y = stream.In(cell.Lower[1], cell.Lower[1]+e.cellSize)
		if dim == 3 {
			v.Z = stream.In(cell.Lower[2], cell.Lower[2]+e.cellSize)
		}
		vertices[i] = v
	}

	cell.Vertices = vertices
	cell.State = Complete
	if cell.N > 0 {
		e.cells.PutAt(global, *cell)
	}
	return *cell, nil
}
