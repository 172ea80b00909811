// Package morton implements Z-order (Morton) encoding between d-dimensional
// chunk coordinates and the linear chunk id dkagen's chunk table is keyed
// on.
//
// Encoding chunk coordinates in Morton order, rather than row-major order,
// keeps spatially adjacent chunks close together in id space, which is what
// lets the chunk/cell table (chunkgraph) use a compact open-addressing
// layout without paying a locality penalty for neighbor lookups.
//
// Both Encode2D/Decode2D and Encode3D/Decode3D are exact bijections between
// [0, K)^d and [0, K^d) when K is a power of two with K ≤ 2^21 (3D) or
// K ≤ 2^32 (2D). For any other K the codes of [0, K)^d do not fill
// [0, K^d): some codes fall outside it and some ids in it decode to
// coordinates outside [0, K)^d.
package morton
