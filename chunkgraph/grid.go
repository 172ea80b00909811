package chunkgraph

// CellsPerAxis returns the total number of cells along one axis across the
// whole domain (chunks_per_dim · cells_per_dim), the unit the geometric
// edge emitter's neighbor stencil walks in.
func (e *Engine) CellsPerAxis() uint64 {
	return e.cfg.ChunksPerDim * e.cfg.CellsPerDim
}

// Dim reports the decomposition's dimensionality.
func (e *Engine) Dim() Dimension { return e.cfg.Dim }

// AbsoluteCellCoords returns cell (chunkID, localID)'s coordinates on the
// domain-wide cell grid, in [0, CellsPerAxis()) per axis.
func (e *Engine) AbsoluteCellCoords(chunkID, localID uint64) []uint64 {
	dim := int(e.cfg.Dim)
	chunkCoords := e.decode(chunkID)
	cellCoords := decodeCellCoords(localID, e.cfg.CellsPerDim, dim)
	abs := make([]uint64, dim)
	for i := 0; i < dim; i++ {
		abs[i] = chunkCoords[i]*e.cfg.CellsPerDim + cellCoords[i]
	}
	return abs
}

// CellAtAbsolute resolves (and, if needed, lazily materializes as a ghost)
// the cell whose domain-wide coordinates are coords, wrapping each axis
// modulo CellsPerAxis() when periodic is true. ok is false when the
// coordinates fall outside a non-periodic domain, telling the caller to
// skip this neighbor.
func (e *Engine) CellAtAbsolute(coords []int64, periodic bool) (Cell, bool, error) {
	dim := int(e.cfg.Dim)
	total := int64(e.CellsPerAxis())
	resolved := make([]uint64, dim)
	for i := 0; i < dim; i++ {
		c := coords[i]
		if periodic {
			c = ((c % total) + total) % total
		} else if c < 0 || c >= total {
			return Cell{}, false, nil
		}
		resolved[i] = uint64(c)
	}

	chunkCoords := make([]uint64, dim)
	cellCoords := make([]uint64, dim)
	for i := 0; i < dim; i++ {
		chunkCoords[i] = resolved[i] / e.cfg.CellsPerDim
		cellCoords[i] = resolved[i] % e.cfg.CellsPerDim
	}

	chunkID := e.encode(chunkCoords)
	localID := encodeCellCoords(cellCoords, e.cfg.CellsPerDim, dim)

	cell, err := e.MaterializeVertices(chunkID, localID)
	if err != nil {
		return Cell{}, false, err
	}
	return cell, true, nil
}

// encodeCellCoords is the inverse of decodeCellCoords.
func encodeCellCoords(coords []uint64, cellsPerAxis uint64, dim int) uint64 {
	var id uint64
	var mul uint64 = 1
	for i := 0; i < dim; i++ {
		id += coords[i] * mul
		mul *= cellsPerAxis
	}
	return id
}
