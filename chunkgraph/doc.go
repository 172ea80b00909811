// Package chunkgraph implements the recursive divide-and-conquer chunk/cell
// decomposition shared by dkagen's geometric graph families.
//
// Given (seed, N, chunks_per_dim, dimension), Engine assigns N points to
// chunks_per_dim^dimension chunks such that the chunk counts form a
// multinomial distribution with equal probabilities — and it does so
// locally: resolving one chunk never requires materializing any other.
//
// Algorithm:
//
//   - The unit domain is a d-dimensional box of chunks_per_dim^d chunks.
//     Resolving chunk C descends a binary-split tree: at each level, the
//     current box is cut in half along each axis in turn using the
//     splitter (k+1)/2, and a chain of binomial draws (one per axis,
//     conditioned on the previous axis's outcome) partitions the box's
//     point count across the resulting 2^d sub-boxes while conserving it
//     exactly.
//   - All draws at one recursion level share a single hash digest, keyed on
//     (seed, the level's box's encoded start id, level·total_chunks) — see
//     hashrand.ChunkKey — so a chunk's (n, offset) is a pure function of
//     (seed, chunk id), independent of how many ranks are running or which
//     other chunks have been resolved.
//   - Each resolved chunk can then be split into cells (a sequential
//     multinomial over the chunk's sub-grid), and each cell's vertices
//     materialized by a uniform stream seeded from hashrand.VertexStreamKey.
//
// Memoization: resolved chunks and cells are cached in open-addressing
// tables (table.go) keyed on their ids, whether resolved because the rank
// owns them or because a neighbor chunk needed them as a ghost.
//
// State machine: a resolved chunk is Counted and stays Counted; the engine
// never moves a chunk to CellsDistributed or Complete. A cell moves
// Counted → Complete monotonically when its vertices are materialized,
// driven by lazy access — see types.go's State.
package chunkgraph
