package engine

import (
	"github.com/obim-sssp/obim-sssp/graphio"
	"github.com/obim-sssp/obim-sssp/relax"
)

// Graph is the capability set the driver needs from a graph
// implementation. *graphio.Graph is the one concrete implementation
// shipped with this module.
type Graph interface {
	NumVertices() uint32
	OutEdges(v uint32) []graphio.Edge
}

// relaxSource adapts a Graph into relax.EdgeSource, converting
// graphio's edge type into relax's. The two are structurally
// identical; kept as distinct named types so relax has no dependency
// on the graph-loading package.
type relaxSource struct {
	g Graph
}

func (r relaxSource) OutEdges(v uint32) []relax.Edge {
	ge := r.g.OutEdges(v)
	out := make([]relax.Edge, len(ge))
	for i, e := range ge {
		out[i] = relax.Edge{Dst: e.Dst, Weight: e.Weight}
	}
	return out
}
