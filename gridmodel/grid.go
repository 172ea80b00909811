package gridmodel

// Lattice is a grid (periodic when Config.Periodic is set) partitioned into
// BlocksPerDim^Dim blocks, one per rank.
type Lattice struct {
	cfg       Config
	blockSize uint64
	totalSize uint64 // BaseSize * BlocksPerDim, per axis
}

// NewLattice validates cfg and constructs a Lattice.
func NewLattice(cfg Config) (*Lattice, error) {
	if cfg.BaseSize == 0 {
		return nil, ErrInvalidBaseSize
	}
	if cfg.BlocksPerDim == 0 {
		return nil, ErrInvalidBlocksPerDim
	}
	dim := int(cfg.Dim)
	return &Lattice{
		cfg:       cfg,
		blockSize: pow(cfg.BaseSize, uint64(dim)),
		totalSize: cfg.BaseSize * cfg.BlocksPerDim,
	}, nil
}

// TotalBlocks returns BlocksPerDim^Dim.
func (l *Lattice) TotalBlocks() uint64 { return pow(l.cfg.BlocksPerDim, uint64(l.cfg.Dim)) }

// BlockSize returns BaseSize^Dim, the number of vertices one rank owns.
func (l *Lattice) BlockSize() uint64 { return l.blockSize }

// VertexRangeFor returns the contiguous vertex id range [start, start+size)
// owned by rank.
func (l *Lattice) VertexRangeFor(rank uint64) (start, size uint64, err error) {
	if rank >= l.TotalBlocks() {
		return 0, 0, ErrRankOutOfRange
	}
	return rank * l.blockSize, l.blockSize, nil
}

// EmitBlock emits every grid edge owned by rank's block: for each local
// vertex, every one of its Dim*2 orthogonal neighbors that resolves to a
// vertex id, skipping only a self-loop when SelfLoops is unset. Neighbor
// u's block independently emits the reverse edge the same way, giving both
// directions of every undirected edge across the union of ranks.
func (l *Lattice) EmitBlock(rank uint64) ([]Edge, error) {
	start, size, err := l.VertexRangeFor(rank)
	if err != nil {
		return nil, err
	}
	dim := int(l.cfg.Dim)
	blockCoords := l.decodeBlock(rank)

	var edges []Edge
	for local := uint64(0); local < size; local++ {
		localCoords := decodeRowMajor(local, l.cfg.BaseSize, dim)
		globalCoords := make([]uint64, dim)
		for i := 0; i < dim; i++ {
			globalCoords[i] = blockCoords[i]*l.cfg.BaseSize + localCoords[i]
		}
		u := start + local

		for axis := 0; axis < dim; axis++ {
			for _, delta := range [2]int64{-1, 1} {
				neighbor := make([]int64, dim)
				for i := 0; i < dim; i++ {
					neighbor[i] = int64(globalCoords[i])
				}
				neighbor[axis] += delta

				v, ok := l.vertexIDAt(neighbor)
				if !ok {
					continue
				}
				if v == u && !l.cfg.SelfLoops {
					continue
				}
				edges = append(edges, Edge{U: u, V: v})
			}
		}
	}
	return edges, nil
}

// vertexIDAt maps absolute lattice coordinates (wrapped if Periodic) back
// to a global vertex id, or reports ok=false for an out-of-range
// coordinate under a non-periodic boundary.
func (l *Lattice) vertexIDAt(coords []int64) (uint64, bool) {
	dim := int(l.cfg.Dim)
	resolved := make([]uint64, dim)
	total := int64(l.totalSize)
	for i := 0; i < dim; i++ {
		c := coords[i]
		if l.cfg.Periodic {
			c = ((c % total) + total) % total
		} else if c < 0 || c >= total {
			return 0, false
		}
		resolved[i] = uint64(c)
	}

	blockCoords := make([]uint64, dim)
	localCoords := make([]uint64, dim)
	for i := 0; i < dim; i++ {
		blockCoords[i] = resolved[i] / l.cfg.BaseSize
		localCoords[i] = resolved[i] % l.cfg.BaseSize
	}
	rank := encodeRowMajor(blockCoords, l.cfg.BlocksPerDim, dim)
	local := encodeRowMajor(localCoords, l.cfg.BaseSize, dim)
	return rank*l.blockSize + local, true
}

func (l *Lattice) decodeBlock(rank uint64) []uint64 {
	return decodeRowMajor(rank, l.cfg.BlocksPerDim, int(l.cfg.Dim))
}

func decodeRowMajor(id, base uint64, dim int) []uint64 {
	coords := make([]uint64, dim)
	for i := 0; i < dim; i++ {
		coords[i] = id % base
		id /= base
	}
	return coords
}

func encodeRowMajor(coords []uint64, base uint64, dim int) uint64 {
	var id uint64
	var mul uint64 = 1
	for i := 0; i < dim; i++ {
		id += coords[i] * mul
		mul *= base
	}
	return id
}

func pow(base, exp uint64) uint64 {
	result := uint64(1)
	for i := uint64(0); i < exp; i++ {
		result *= base
	}
	return result
}
