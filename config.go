package dkagen

// GeneratorType selects which graph family Config.Generator drives.
type GeneratorType int

const (
	// GeneratorRGG2D is the 2D random geometric graph.
	GeneratorRGG2D GeneratorType = iota
	// GeneratorRGG3D is the 3D random geometric graph.
	GeneratorRGG3D
	// GeneratorRHG is the random hyperbolic graph (native disk model).
	GeneratorRHG
	// GeneratorGrid2D is a 2D grid (degree-4 stencil), periodic when
	// Config.Periodic is set.
	GeneratorGrid2D
	// GeneratorGrid3D is a 3D grid (degree-6 stencil), periodic when
	// Config.Periodic is set.
	GeneratorGrid3D
	// GeneratorGNM is Erdos-Renyi with a fixed edge count M.
	GeneratorGNM
	// GeneratorGNP is Erdos-Renyi with a per-pair edge probability P.
	GeneratorGNP
)

// StatisticsLevel controls what Generate logs. Result.Stats is filled in
// at every level.
type StatisticsLevel int

const (
	// StatisticsNone logs nothing.
	StatisticsNone StatisticsLevel = iota
	// StatisticsBasic logs nothing either; it behaves like StatisticsNone.
	StatisticsBasic
	// StatisticsAdvanced logs a per-chunk breakdown via log/slog at Debug
	// level.
	StatisticsAdvanced
)

// Config holds every parameter the in-scope generators read. Construct one
// with DefaultConfig and the With* options below, then call Validate
// before passing it to Generate.
type Config struct {
	Generator GeneratorType

	Seed uint64
	N    int64 // target vertex count
	M    int64 // target edge count (GNM)
	K    uint64 // chunks_per_dim
	R    float64 // RGG radius / RHG threshold
	P    float64 // GNP edge probability
	AvgDegree float64
	PLExp     float64 // RHG power-law exponent; not read by the in-scope generators
	Thres     float64 // kept for naming parity with the configuration surface; not read, RHG takes its threshold from R

	SelfLoops bool
	Directed  bool
	Periodic  bool

	Coordinates bool

	HashSample bool // selects hashrand's exact sampler over the gonum approximation
	UseBinom   bool // reserved for parity with the configuration surface; binomial is always used in-scope
	Precision  int  // reserved: unused by the in-scope samplers, kept for surface parity

	BaseSize uint64  // Grid2D/Grid3D: base chunk size
	HypBase  float64 // RHG: R_max override; 0 selects a default derived from AvgDegree

	CellsPerDim uint64 // optional override; 0 derives it from R via geometric.CellsPerDim

	StatisticsLevel StatisticsLevel

	// Rank and Size describe this process's position in the simulated
	// communicator. Size must satisfy the chosen generator's
	// RequirementFlags (e.g. a power of two).
	Rank, Size int
}

// DefaultConfig returns a Config with the field defaults the original
// configuration surface assumes: seed 1, a single rank, no self-loops, an
// undirected, non-periodic, non-coordinate-emitting RGG-2D generator.
func DefaultConfig() Config {
	return Config{
		Generator:       GeneratorRGG2D,
		Seed:            1,
		N:               0,
		K:               1,
		R:               0.1,
		AvgDegree:       10,
		PLExp:           2.5,
		Rank:            0,
		Size:            1,
		StatisticsLevel: StatisticsNone,
	}
}

// Validate rejects the documented invalid configurations (see the
// module's design notes) rather than letting Generate panic on them.
func (c Config) Validate() error {
	if c.N < 0 {
		return &ConfigurationError{Field: "N", Reason: "must be non-negative"}
	}
	if c.Size <= 0 {
		return &ConfigurationError{Field: "Size", Reason: "must be positive"}
	}
	if c.Rank < 0 || c.Rank >= c.Size {
		return &ConfigurationError{Field: "Rank", Reason: "must be in [0, Size)"}
	}
	if c.K == 0 {
		return &ConfigurationError{Field: "K", Reason: "chunks_per_dim must be positive"}
	}

	switch c.Generator {
	case GeneratorRGG2D, GeneratorRGG3D:
		if c.R <= 0 {
			return &ConfigurationError{Field: "R", Reason: "radius must be positive"}
		}
		if c.Periodic && c.R >= 1 {
			return &ConfigurationError{Field: "R", Reason: "radius >= 1 under periodic wrap would fold the whole domain"}
		}
		if !isPowerOfTwo(int(c.K)) {
			return &ConfigurationError{Field: "K", Reason: "chunks_per_dim must be a power of two: morton.Encode/Decode is only a bijection onto [0, K^dim) when K is"}
		}
	case GeneratorRHG:
		if c.R <= 0 {
			return &ConfigurationError{Field: "R", Reason: "hyperbolic threshold must be positive"}
		}
		if !isPowerOfTwo(int(c.K)) {
			return &ConfigurationError{Field: "K", Reason: "chunks_per_dim must be a power of two: morton.Encode/Decode is only a bijection onto [0, K^dim) when K is"}
		}
	case GeneratorGrid2D, GeneratorGrid3D:
		if c.BaseSize == 0 {
			return &ConfigurationError{Field: "BaseSize", Reason: "must be positive"}
		}
	case GeneratorGNM:
		if c.M < 0 {
			return &ConfigurationError{Field: "M", Reason: "must be non-negative"}
		}
		var totalPairs int64
		if c.N > 1 {
			if c.Directed {
				totalPairs = c.N * (c.N - 1)
			} else {
				totalPairs = c.N * (c.N - 1) / 2
			}
		}
		if c.M > totalPairs {
			return &ConfigurationError{Field: "M", Reason: "must not exceed the number of candidate pairs for N"}
		}
	case GeneratorGNP:
		if c.P < 0 || c.P > 1 {
			return &ConfigurationError{Field: "P", Reason: "must be in [0, 1]"}
		}
	default:
		return &ConfigurationError{Field: "Generator", Reason: "unknown generator type"}
	}
	return nil
}
