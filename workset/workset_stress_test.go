package workset_test

import (
	"testing"

	"github.com/obim-sssp/obim-sssp/engine"
	"github.com/obim-sssp/obim-sssp/graphio"
)

// hubGraph is a high-degree hub topology: one source vertex fans out to
// n leaves at ascending weights, and every leaf also reaches a single
// shared sink at the same constant weight. The leaves all converge on
// the sink, so the sink's distance is improved repeatedly as leaves are
// visited — exactly the pattern a work-set's duplicate-enqueue
// suppression is meant to collapse into a single queue entry.
//
// n is kept at or below sched.ChunkSize so every leaf lands in a single
// unflushed chunk: with one worker thread, that chunk drains in exact
// reverse of its fill order, so the leaves are visited n, n-1, ..., 1.
// Since leaf i offers the sink a candidate distance of i+c, that visitation
// order offers the sink a strictly decreasing (hence always-improving)
// sequence of candidate distances — guaranteeing all n relaxations of
// the sink actually fire, deterministically, regardless of thread
// scheduling.
type hubGraph struct {
	n int
	c uint32
}

func (g hubGraph) NumVertices() uint32 { return uint32(g.n) + 2 }

func (g hubGraph) sink() uint32 { return uint32(g.n) + 1 }

func (g hubGraph) OutEdges(v uint32) []graphio.Edge {
	switch {
	case v == 0:
		edges := make([]graphio.Edge, g.n)
		for i := 0; i < g.n; i++ {
			edges[i] = graphio.Edge{Dst: uint32(i + 1), Weight: uint32(i + 1)}
		}
		return edges
	case v >= 1 && v <= uint32(g.n):
		return []graphio.Edge{{Dst: g.sink(), Weight: g.c}}
	default:
		return nil
	}
}

func runHubStress(t *testing.T, algoName string, g hubGraph) *engine.Result {
	t.Helper()
	algo, err := engine.ParseAlgo(algoName)
	if err != nil {
		t.Fatalf("ParseAlgo(%s): %v", algoName, err)
	}
	cfg := engine.Config{
		Algo:       algo,
		StartNode:  0,
		ReportNode: g.sink(),
		Delta:      10,
		NumThreads: 1,
	}
	r, err := engine.Run(g, cfg)
	if err != nil {
		t.Fatalf("Run(%s): %v", algoName, err)
	}
	return r
}

// TestWorkSetStressHubDedupesReenqueue is the high-degree hub stress
// scenario: a plain run re-enqueues the sink once per improving relax,
// while workset.Marking collapses every improvement after the first
// into an update of an already-queued entry, so the sink is only ever
// popped once.
func TestWorkSetStressHubDedupesReenqueue(t *testing.T) {
	const n = 32
	g := hubGraph{n: n, c: 1}

	plain := runHubStress(t, "async", g)
	marking := runHubStress(t, "asyncWithCasObimMSet", g)

	wantSinkDist := uint32(2) // best path: leaf 1 (dist 1) + constant edge weight 1
	if plain.Dist.Load(g.sink()) != wantSinkDist {
		t.Fatalf("plain: dist[sink] = %d, want %d", plain.Dist.Load(g.sink()), wantSinkDist)
	}
	if marking.Dist.Load(g.sink()) != wantSinkDist {
		t.Fatalf("marking: dist[sink] = %d, want %d", marking.Dist.Load(g.sink()), wantSinkDist)
	}

	wantPlainIterations := uint64(2 * n) // n leaf pops + n redundant sink pops
	if plain.Stats.Iterations != wantPlainIterations {
		t.Fatalf("plain: Iterations = %d, want %d", plain.Stats.Iterations, wantPlainIterations)
	}

	wantMarkingIterations := uint64(n + 1) // n leaf pops + one deduped sink pop
	if marking.Stats.Iterations != wantMarkingIterations {
		t.Fatalf("marking: Iterations = %d, want %d", marking.Stats.Iterations, wantMarkingIterations)
	}

	if marking.Stats.Iterations >= plain.Stats.Iterations {
		t.Fatalf("work-set dedup should strictly reduce pops under hub contention: plain=%d marking=%d",
			plain.Stats.Iterations, marking.Stats.Iterations)
	}

	// Every leaf-to-sink relax after the first improves a previously
	// finite distance, in both variants (bad-work accounting happens
	// inside the atomic CAS itself, independent of whether the
	// resulting push is deduped).
	wantBadWork := uint64(n - 1)
	if plain.Stats.BadWork() != wantBadWork {
		t.Fatalf("plain: BadWork = %d, want %d", plain.Stats.BadWork(), wantBadWork)
	}
	if marking.Stats.BadWork() != wantBadWork {
		t.Fatalf("marking: BadWork = %d, want %d", marking.Stats.BadWork(), wantBadWork)
	}

	// The plain variant re-pops the sink n times carrying stale
	// candidate distances (dist[sink] has already converged to its
	// final value by the time any of them are popped); only the one
	// carrying the converged value clears the staleness gate. The
	// work-set variant never carries a candidate distance at all, so it
	// never charges empty work.
	wantPlainEmptyWork := uint64(n - 1)
	if plain.Stats.EmptyWork() != wantPlainEmptyWork {
		t.Fatalf("plain: EmptyWork = %d, want %d", plain.Stats.EmptyWork(), wantPlainEmptyWork)
	}
	if marking.Stats.EmptyWork() != 0 {
		t.Fatalf("marking: EmptyWork = %d, want 0", marking.Stats.EmptyWork())
	}
}
