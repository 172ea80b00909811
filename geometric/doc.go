// Package geometric emits edges over a chunkgraph decomposition for the
// Euclidean (RGG) and hyperbolic (RHG) graph families.
//
// Both families share the same procedure: for each local chunk, cell, and
// vertex v, scan the vertex's neighbor cells (9 in 2D, 27 in 3D, wrapped
// under periodic boundary when configured) and emit (v.ID, w.ID) whenever
// the pair's distance predicate holds. Each endpoint's chunk runs the same
// symmetric scan, so an undirected edge is produced once in each direction:
// (v.ID, w.ID) from v's chunk and (w.ID, v.ID) from w's chunk.
//
// RGG uses Euclidean distance against a fixed radius. RHG uses the native
// hyperbolic disk model: each vertex carries a radial and angular
// coordinate, and adjacency is governed by a hyperbolic distance threshold
// instead. Both reuse chunkgraph's chunk/cell grid unchanged; only the
// coordinate assignment and the distance predicate differ.
package geometric
