package graphio

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/graphs/gen"
	"gonum.org/v1/gonum/graph/simple"
)

// RandomOptions configures GenerateRandom.
type RandomOptions struct {
	NumNodes  int
	NumEdges  int
	MaxWeight uint32
	Directed  bool
	Seed      int64
}

// GenerateRandom builds a random topology with gonum's Gnp (Erdos-Renyi)
// generator, then assigns weights and flattens to CSR adjacency lists.
// gonum owns node/edge bookkeeping and duplicate-edge avoidance; this
// package only contributes the target edge density, the weight
// distribution, and the final flatten-to-CSR step.
func GenerateRandom(opt RandomOptions) [][]Edge {
	rng := rand.New(rand.NewSource(uint64(opt.Seed)))

	possible := float64(opt.NumNodes) * float64(opt.NumNodes-1)
	p := 0.0
	if possible > 0 {
		p = float64(opt.NumEdges) / possible
		if p > 1 {
			p = 1
		}
	}

	g := simple.NewDirectedGraph()
	if err := gen.Gnp(g, opt.NumNodes, p, rng); err != nil {
		// p is capped at 1 above; on any error from Gnp the result is
		// NumNodes empty adjacency lists.
		return make([][]Edge, opt.NumNodes)
	}

	edges := make([][]Edge, opt.NumNodes)
	it := g.Edges()
	for it.Next() {
		e := it.Edge()
		u, v := e.From().ID(), e.To().ID()
		w := uint32(1 + rng.Intn(int(opt.MaxWeight)))
		edges[u] = append(edges[u], Edge{Dst: uint32(v), Weight: w})
		if !opt.Directed && !hasEdge(g, v, u) {
			edges[v] = append(edges[v], Edge{Dst: uint32(u), Weight: w})
		}
	}
	return edges
}

func hasEdge(g graph.Directed, u, v int64) bool {
	return g.HasEdgeFromTo(u, v)
}
