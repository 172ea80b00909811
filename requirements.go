package dkagen

// RequirementFlags is a bit-set a generator declares via Requirements,
// describing what (Rank, Size) pairs it can run under.
type RequirementFlags uint32

const (
	// RequirePowerOfTwoSize requires Config.Size to be a power of two.
	RequirePowerOfTwoSize RequirementFlags = 1 << iota
	// RequireSquareOrCubicChunks requires chunks_per_dim (K) to be a power
	// of two: morton.Encode/Decode only bijects onto [0, K^Dim) under that
	// constraint, so chunk resolution's partitioning depends on it for any
	// generator that decodes chunk ids through the Morton grid. K is fixed
	// by Config independent of the communicator size — a rank may own
	// many chunks, one, or none, per chunkgraph.Engine.OwnedChunks.
	RequireSquareOrCubicChunks
)

// Has reports whether f includes flag.
func (f RequirementFlags) Has(flag RequirementFlags) bool { return f&flag != 0 }

// isPowerOfTwo reports whether n is a positive power of two.
func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Requirements returns the RequirementFlags for cfg.Generator. RGG/RHG
// route chunk ids through the Morton grid, so K must be a power of two;
// grid and Erdos-Renyi generators have no structural requirement.
func Requirements(cfg Config) RequirementFlags {
	switch cfg.Generator {
	case GeneratorRGG2D, GeneratorRGG3D, GeneratorRHG:
		return RequireSquareOrCubicChunks
	default:
		return 0
	}
}

// checkRequirements validates cfg against its own declared requirements,
// returning a RequirementError when unmet.
func checkRequirements(cfg Config) error {
	flags := Requirements(cfg)

	if flags.Has(RequirePowerOfTwoSize) && !isPowerOfTwo(cfg.Size) {
		return &RequirementError{
			Generator: generatorName(cfg.Generator), Requirement: flags,
			Rank: cfg.Rank, Size: cfg.Size, Reason: "communicator size must be a power of two",
		}
	}
	if flags.Has(RequireSquareOrCubicChunks) && !isPowerOfTwo(int(cfg.K)) {
		return &RequirementError{
			Generator: generatorName(cfg.Generator), Requirement: flags,
			Rank: cfg.Rank, Size: cfg.Size,
			Reason: "chunks_per_dim must be a power of two for the Morton grid to partition the domain",
		}
	}
	return nil
}

func generatorName(g GeneratorType) string {
	switch g {
	case GeneratorRGG2D:
		return "rgg-2d"
	case GeneratorRGG3D:
		return "rgg-3d"
	case GeneratorRHG:
		return "rhg"
	case GeneratorGrid2D:
		return "grid-2d"
	case GeneratorGrid3D:
		return "grid-3d"
	case GeneratorGNM:
		return "gnm"
	case GeneratorGNP:
		return "gnp"
	default:
		return "unknown"
	}
}
