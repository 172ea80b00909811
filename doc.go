// Package dkagen generates distributed graphs without inter-rank
// communication: given a seed and a global configuration, each rank
// independently derives its own slice of a shared deterministic graph.
//
// A generator is chosen via Config.Generator (random geometric, random
// hyperbolic, a periodic grid, or Erdos-Renyi) and driven through a single
// contract: Requirements reports what (rank, communicator size) pairs the
// generator can run under, and Generate computes this rank's EdgeList,
// VertexRange, and, if requested, Coordinates, VertexWeights, and
// EdgeWeights.
//
// Generation is built from three lower packages: hashrand (the
// deterministic hash-seeded sampler), morton (chunk-id spatial encoding),
// and chunkgraph (the recursive chunk/cell decomposition that assigns
// points to chunks without any rank talking to another). geometric builds
// edges on top of a chunkgraph.Engine; validator independently checks a
// generated edge list's structural properties, optionally across
// simulated ranks via a Transport.
//
// Under the hood:
//
//	hashrand/   — deterministic hash(seed,key) -> binomial/uniform variates
//	morton/     — chunk-id <-> coordinate bijection
//	chunkgraph/ — recursive chunk/cell decomposition and memoization
//	geometric/  — RGG/RHG edge emission over a chunkgraph.Engine
//	gridmodel/  — periodic grid edge emission
//	validator/  — post-generation structural checks, single-process or
//	              simulated multi-rank
//
// Errors:
//
//	ConfigurationError     - invalid or inconsistent Config.
//	RequirementError       - a generator's declared requirement is unmet.
//	IoError                - output I/O failure (writers are out of scope).
//	InternalInvariantError - a sampler or recursion invariant was violated.
package dkagen
