package validator

import (
	"fmt"
	"sort"
)

// ValidateAll runs every check, in order, against every rank's Input,
// using transport for the collective vertex-range gather and the
// cross-rank symmetry exchange. Each rank's checks run independently
// except for the batched collectives: local checks (1-4) for rank i never
// look at rank j's data, and the remote-symmetry check (5) asks the
// transport to run one batched all-to-all across every rank's outbox,
// then each rank checks its own inbox — exactly the shape a real MPI
// Alltoallv-based validator has, just without a process group.
func ValidateAll(inputs []Input, transport Transport) []Report {
	size := len(inputs)
	reports := make([]Report, size)

	var anyRange VertexRange
	if size > 0 {
		anyRange = inputs[0].VertexRange
	}
	ranges, err := transport.AllGatherRanges(TransportContext{Rank: 0, Size: size}, anyRange)
	if err != nil {
		for i := range reports {
			reports[i] = fail(i, "vertex-ranges", err.Error())
		}
		return reports
	}
	if len(ranges) != size {
		for i := range reports {
			reports[i] = fail(i, "vertex-ranges", ErrRankCountMismatch.Error())
		}
		return reports
	}

	sortedPerRank := make([][]Edge, size)
	failed := make([]bool, size)

	for i, in := range inputs {
		if report := checkVertexRanges(in, ranges); !report.OK {
			reports[i] = report
			failed[i] = true
			continue
		}
		if report := checkEdgeRanges(in, ranges); !report.OK {
			reports[i] = report
			failed[i] = true
			continue
		}
		if report := checkWeights(in); !report.OK {
			reports[i] = report
			failed[i] = true
			continue
		}
		sorted := sortedEdges(in.EdgeList)
		if report := checkSimple(in.Rank, sorted); !report.OK {
			reports[i] = report
			failed[i] = true
			continue
		}
		if report := checkLocalSymmetry(in, sorted); !report.OK {
			reports[i] = report
			failed[i] = true
			continue
		}
		sortedPerRank[i] = sorted
	}

	outboxes := make([][]ReverseLookup, size)
	for i, in := range inputs {
		if failed[i] {
			continue
		}
		from, to := in.VertexRange.From, in.VertexRange.To
		var outbox []ReverseLookup
		for _, e := range sortedPerRank[i] {
			if e.To >= from && e.To < to {
				continue
			}
			outbox = append(outbox, ReverseLookup{From: e.From, To: e.To})
		}
		outboxes[i] = outbox
	}

	inboxes, err := transport.AllToAll(TransportContext{Size: size}, outboxes)
	if err != nil {
		for i := range inputs {
			if !failed[i] {
				reports[i] = fail(i, "symmetry", err.Error())
				failed[i] = true
			}
		}
		return reports
	}

	for i, in := range inputs {
		if failed[i] {
			continue
		}
		from, to := in.VertexRange.From, in.VertexRange.To
		offsets := nodeOffsets(sortedPerRank[i], from, to)
		ok := true
		for _, req := range inboxes[i] {
			bucket := req.To - from
			if !hasEdge(sortedPerRank[i], offsets[bucket], offsets[bucket+1], req.To, req.From) {
				reports[i] = fail(i, "symmetry", fmt.Sprintf("missing reverse edge %d -> %d (cross-rank)", req.To, req.From))
				ok = false
				break
			}
		}
		if ok {
			reports[i] = Report{OK: true, Rank: in.Rank}
		}
	}

	return reports
}

func fail(rank int, check, message string) Report {
	return Report{OK: false, Rank: rank, Check: check, Message: message}
}

// checkVertexRanges checks rule 1: every rank's range is well-formed, and
// ranges form a contiguous partition of [0, N) starting at 0.
func checkVertexRanges(in Input, ranges []VertexRange) Report {
	for i, r := range ranges {
		if r.From > r.To {
			return fail(in.Rank, "vertex-ranges", fmt.Sprintf("invalid range on rank %d: %d..%d", i, r.From, r.To))
		}
	}
	if len(ranges) == 0 {
		return Report{OK: true, Rank: in.Rank}
	}
	if ranges[0].From != 0 {
		return fail(in.Rank, "vertex-ranges", fmt.Sprintf("rank 0 does not start at 0, starts at %d", ranges[0].From))
	}
	for i := 1; i < len(ranges); i++ {
		if ranges[i].From != ranges[i-1].To {
			return fail(in.Rank, "vertex-ranges", fmt.Sprintf(
				"rank %d ends at %d but rank %d starts at %d", i-1, ranges[i-1].To, i, ranges[i].From))
		}
	}
	return Report{OK: true, Rank: in.Rank}
}

// checkEdgeRanges checks rule 2: every tail is local, every head is within
// [0, N).
func checkEdgeRanges(in Input, ranges []VertexRange) Report {
	globalN := ranges[len(ranges)-1].To
	for _, e := range in.EdgeList {
		if e.From < in.VertexRange.From || e.From >= in.VertexRange.To {
			return fail(in.Rank, "edge-ranges", fmt.Sprintf(
				"tail of edge (%d -> %d) is out of local range [%d, %d)", e.From, e.To, in.VertexRange.From, in.VertexRange.To))
		}
		if e.To >= globalN {
			return fail(in.Rank, "edge-ranges", fmt.Sprintf(
				"head of edge (%d -> %d) is outside the global vertex range [0, %d)", e.From, e.To, globalN))
		}
	}
	return Report{OK: true, Rank: in.Rank}
}

// checkWeights checks rule 3: weight arrays, if present, match the local
// vertex/edge counts.
func checkWeights(in Input) Report {
	localVertices := in.VertexRange.To - in.VertexRange.From
	if len(in.VertexWeights) != 0 && uint64(len(in.VertexWeights)) != localVertices {
		return fail(in.Rank, "weights", fmt.Sprintf(
			"%d vertex weights for %d vertices", len(in.VertexWeights), localVertices))
	}
	if len(in.EdgeWeights) != 0 && len(in.EdgeWeights) != len(in.EdgeList) {
		return fail(in.Rank, "weights", fmt.Sprintf(
			"%d edge weights for %d edges", len(in.EdgeWeights), len(in.EdgeList)))
	}
	return Report{OK: true, Rank: in.Rank}
}

func sortedEdges(edges []Edge) []Edge {
	sorted := make([]Edge, len(edges))
	copy(sorted, edges)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].From != sorted[j].From {
			return sorted[i].From < sorted[j].From
		}
		return sorted[i].To < sorted[j].To
	})
	return sorted
}

// checkSimple checks rule 4: no self-loops, no duplicate edges.
func checkSimple(rank int, sorted []Edge) Report {
	for i, e := range sorted {
		if e.From == e.To {
			return fail(rank, "simple-graph", fmt.Sprintf("self-loop at %d", e.From))
		}
		if i > 0 && sorted[i-1] == e {
			return fail(rank, "simple-graph", fmt.Sprintf("duplicate edge (%d -> %d)", e.From, e.To))
		}
	}
	return Report{OK: true, Rank: rank}
}

// nodeOffsets builds the CSR-like offset array keyed on u - from, over a
// slice of edges already sorted by (From, To): offsets[u-from] is the
// first index of u's bucket, offsets[u-from+1] its end.
func nodeOffsets(sorted []Edge, from, to uint64) []int {
	offsets := make([]int, to-from+1)
	for _, e := range sorted {
		offsets[e.From-from+1]++
	}
	for i := 1; i < len(offsets); i++ {
		offsets[i] += offsets[i-1]
	}
	return offsets
}

// hasEdge reports whether sorted[lo:hi) contains (from, to), via a bounded
// binary search over that bucket.
func hasEdge(sorted []Edge, lo, hi int, from, to uint64) bool {
	target := Edge{From: from, To: to}
	n := sort.Search(hi-lo, func(i int) bool {
		return !edgeLess(sorted[lo+i], target)
	})
	idx := lo + n
	return idx < hi && sorted[idx] == target
}

func edgeLess(a, b Edge) bool {
	if a.From != b.From {
		return a.From < b.From
	}
	return a.To < b.To
}

// checkLocalSymmetry checks rule 5's local half: for every edge (u, v)
// where v is locally owned, (v, u) must also be present.
func checkLocalSymmetry(in Input, sorted []Edge) Report {
	from, to := in.VertexRange.From, in.VertexRange.To
	offsets := nodeOffsets(sorted, from, to)
	for _, e := range sorted {
		if e.To < from || e.To >= to {
			continue
		}
		bucket := e.To - from
		if !hasEdge(sorted, offsets[bucket], offsets[bucket+1], e.To, e.From) {
			return fail(in.Rank, "symmetry", fmt.Sprintf("missing reverse edge %d -> %d", e.To, e.From))
		}
	}
	return Report{OK: true, Rank: in.Rank}
}
