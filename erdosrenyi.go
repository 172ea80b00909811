package dkagen

import (
	"context"
	"log/slog"

	"github.com/dkagen/dkagen/chunkgraph"
	"github.com/dkagen/dkagen/hashrand"
)

// generateErdosRenyi implements GeneratorGNM/GeneratorGNP: vertices are
// partitioned into Size contiguous ranges of roughly N/Size each (no
// chunk/cell grid involved, since there is no spatial structure to
// exploit). For every owned vertex u and every other candidate v, the rank
// decides independently whether (u,v) is an edge and, if so, emits it with
// u as tail — the owner-emits rule, not a min/max ordering: an undirected
// pair (lo,hi) is decided once, as a pure function of the pair itself, so
// both the rank owning lo and the rank owning hi reach the same decision
// and each emits its own direction, giving the union across ranks both
// (lo,hi) and (hi,lo) exactly as the façade's post-condition requires.
func generateErdosRenyi(ctx context.Context, cfg Config, logger *slog.Logger) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	start, size := vertexRangeFor(cfg.N, cfg.Rank, cfg.Size)
	n := uint64(cfg.N)
	sampler := hashrand.Config{HashSample: cfg.HashSample}

	var totalPairs uint64
	if cfg.Generator == GeneratorGNM && n > 0 {
		if cfg.Directed {
			totalPairs = n * (n - 1)
		} else {
			totalPairs = n * (n - 1) / 2
		}
	}

	var edges [][2]uint64
	for u := start; u < start+size; u++ {
		for v := uint64(0); v < n; v++ {
			if v == u {
				if !cfg.SelfLoops || cfg.Directed {
					continue
				}
			}

			var keep bool
			var err error
			if cfg.Generator == GeneratorGNM {
				keep, err = gnmPairSelected(cfg.Seed, u, v, n, totalPairs, cfg.M, cfg.Directed, sampler)
				if err != nil {
					return Result{}, err
				}
			} else {
				keep = pairKeeps(cfg.Seed, u, v, cfg.P)
			}
			if keep {
				edges = append(edges, [2]uint64{u, v})
			}
		}
	}

	result := Result{
		VertexRange: VertexRange{Start: start, NumNodes: size},
		EdgeList:    edges,
		Stats:       Stats{EdgesEmitted: uint64(len(edges))},
	}
	logAdvanced(ctx, logger, cfg.StatisticsLevel, uint64(cfg.Rank), int64(size), len(edges))
	return result, nil
}

// vertexRangeFor splits N vertices into size contiguous ranges as evenly
// as possible, the first (N mod size) ranges getting one extra vertex.
func vertexRangeFor(n int64, rank, size int) (start, count uint64) {
	base := n / int64(size)
	remainder := n % int64(size)
	extra := int64(0)
	if int64(rank) < remainder {
		extra = 1
	}
	for r := 0; r < rank; r++ {
		c := base
		if int64(r) < remainder {
			c++
		}
		start += uint64(c)
	}
	return start, uint64(base + extra)
}

// pairKeeps reports whether the unordered pair (u, v) is an edge under
// probability p, via a hash keyed symmetrically on the pair so both
// endpoints' ranks agree on the decision without exchanging anything.
func pairKeeps(seed, u, v uint64, p float64) bool {
	lo, hi := u, v
	if lo > hi {
		lo, hi = hi, lo
	}
	key := hashrand.Hash64(lo, hi)
	digest := hashrand.Hash64(seed, key)
	uniform := float64(digest>>11) / float64(uint64(1)<<53)
	return uniform < p
}

// gnmPairSelected reports whether (u, v) is one of exactly M edges, via
// chunkgraph.SplitExact over the full pair pool: undirected pairs are
// canonicalized to (lo, hi) before indexing, so the rank owning lo and the
// rank owning hi both compute the same global index and reach the same
// decision independently, with no cross-rank exchange and no approximation
// — the sum over the whole pool is exactly M by SplitExact's own
// conservation invariant, not M in expectation. Self-loop pairs (u == v)
// are never part of this pool; GNM with SelfLoops still emits no self-loop
// edges, consistent with the documented limitation in DESIGN.md.
func gnmPairSelected(seed, u, v, n, totalPairs uint64, m int64, directed bool, sampler hashrand.Config) (bool, error) {
	if u == v {
		return false, nil
	}
	var idx uint64
	if directed {
		idx = directedPairIndex(u, v, n)
	} else {
		lo, hi := u, v
		if lo > hi {
			lo, hi = hi, lo
		}
		idx = undirectedPairIndex(lo, hi, n)
	}
	return chunkgraph.SplitExact(seed, totalPairs, m, idx, sampler)
}

// undirectedPairIndex flattens the canonical pair (lo, hi), lo < hi < n,
// into [0, n*(n-1)/2): row lo starts right after every row before it, each
// row k holding n-1-k entries (hi ranges over (k, n)), then hi is offset
// within its row.
func undirectedPairIndex(lo, hi, n uint64) uint64 {
	rowOffset := lo*(n-1) - lo*(lo-1)/2
	return rowOffset + (hi - lo - 1)
}

// directedPairIndex flattens the ordered pair (u, v), u != v, into
// [0, n*(n-1)): row u holds n-1 entries (every v != u), with a gap at v==u.
func directedPairIndex(u, v, n uint64) uint64 {
	rowOffset := u * (n - 1)
	if v < u {
		return rowOffset + v
	}
	return rowOffset + v - 1
}
