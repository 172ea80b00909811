// Package gridmodel generates a grid graph partitioned across ranks exactly
// like the geometric families: each rank owns a contiguous block of grid
// cells and emits edges to its orthogonal neighbors (4 in 2D, 6 in 3D),
// wrapping at the domain boundary when Config.Periodic is set and dropping
// out-of-domain neighbors otherwise.
//
// Unlike chunkgraph's point decomposition, a grid's vertex count per block
// is deterministic (no sampling): BaseSize^Dim cells per block, arranged in
// a K^Dim array of blocks. This package is adapted from the same
// neighbor-offset idiom chunkgraph's geometric emitters use, specialized
// to a fixed lattice instead of a sampled point set.
package gridmodel
