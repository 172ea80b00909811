// Package validator checks a generated edge list's structural properties
// without mutating anything: that vertex ranges partition [0, N)
// contiguously, that every edge's endpoints are in range, that weight
// arrays (if present) match the vertex/edge count, that the graph is
// simple (no self-loops, no duplicate edges), and that it is symmetric
// (every (u, v) has a matching (v, u)).
//
// Checks run in order; the first failure stops the run and is reported in
// a Report, rather than panicking or aborting the process — validation is
// diagnostic, never fatal to the generator that produced the graph.
//
// The symmetry check's cross-rank half goes through a Transport, an
// abstraction over the all-gather/all-to-all primitives a real MPI
// communicator would provide. LocalTransport implements it in-process,
// for single-rank runs and for simulated multi-rank test harnesses that
// run every rank's generator locally and hand this package every rank's
// output directly.
package validator
