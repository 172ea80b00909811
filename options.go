package dkagen

// Option configures a Config in place, a functional-options pattern.
type Option func(*Config)

// WithSeed sets the deterministic hash seed.
func WithSeed(seed uint64) Option {
	return func(c *Config) { c.Seed = seed }
}

// WithVertexCount sets the target global vertex count N.
func WithVertexCount(n int64) Option {
	return func(c *Config) { c.N = n }
}

// WithEdgeCount sets the target global edge count M (GNM).
func WithEdgeCount(m int64) Option {
	return func(c *Config) { c.M = m }
}

// WithChunksPerDim sets K, the number of chunks along each axis.
func WithChunksPerDim(k uint64) Option {
	return func(c *Config) { c.K = k }
}

// WithRadius sets R, the RGG radius or RHG hyperbolic threshold.
func WithRadius(r float64) Option {
	return func(c *Config) { c.R = r }
}

// WithEdgeProbability sets P, the GNP per-pair edge probability.
func WithEdgeProbability(p float64) Option {
	return func(c *Config) { c.P = p }
}

// WithAvgDegree sets the target average degree (RHG R_max derivation).
func WithAvgDegree(d float64) Option {
	return func(c *Config) { c.AvgDegree = d }
}

// WithSelfLoops enables self-loop edges.
func WithSelfLoops() Option {
	return func(c *Config) { c.SelfLoops = true }
}

// WithDirected marks the generated graph directed.
func WithDirected() Option {
	return func(c *Config) { c.Directed = true }
}

// WithPeriodic enables periodic (wraparound) boundary conditions.
func WithPeriodic() Option {
	return func(c *Config) { c.Periodic = true }
}

// WithCoordinates requests that Generate populate Result.Coordinates.
func WithCoordinates() Option {
	return func(c *Config) { c.Coordinates = true }
}

// WithHashSample selects hashrand's exact hash-based sampler instead of
// the gonum approximation.
func WithHashSample() Option {
	return func(c *Config) { c.HashSample = true }
}

// WithBaseSize sets the grid generators' base chunk size.
func WithBaseSize(n uint64) Option {
	return func(c *Config) { c.BaseSize = n }
}

// WithRank sets this process's (Rank, Size) position in the simulated
// communicator.
func WithRank(rank, size int) Option {
	return func(c *Config) { c.Rank, c.Size = rank, size }
}

// WithStatisticsLevel sets what Generate logs (see StatisticsLevel).
func WithStatisticsLevel(level StatisticsLevel) Option {
	return func(c *Config) { c.StatisticsLevel = level }
}

// WithGenerator selects the generator family.
func WithGenerator(g GeneratorType) Option {
	return func(c *Config) { c.Generator = g }
}

// New builds a validated Config from DefaultConfig plus opts.
func New(opts ...Option) (Config, error) {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
