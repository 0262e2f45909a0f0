package engine

import (
	"fmt"

	"github.com/obim-sssp/obim-sssp/mathutils"
	"github.com/obim-sssp/obim-sssp/relax"
)

// Verify checks a completed run: dist[source] == 0, no edge is
// relaxable, and reports the maximum finite distance observed. Returns
// an error describing the first violation found; a non-nil error
// means the engine produced an incorrect result, not a recoverable
// condition.
func Verify(g Graph, dist *relax.DistanceTable, source uint32) (maxFinite uint32, err error) {
	if dist.Load(source) != 0 {
		return 0, fmt.Errorf("engine: verify: dist[source=%d] = %d, want 0", source, dist.Load(source))
	}

	n := g.NumVertices()
	for u := uint32(0); u < n; u++ {
		du := dist.Load(u)
		if du == relax.INF {
			continue
		}
		maxFinite = mathutils.Max(maxFinite, du)
		for _, e := range g.OutEdges(u) {
			dv := dist.Load(e.Dst)
			if dv > relax.SatAdd32(du, e.Weight) {
				return 0, fmt.Errorf("engine: verify: edge %d->%d (w=%d): dist[%d]=%d > dist[%d]+w=%d",
					u, e.Dst, e.Weight, e.Dst, dv, u, relax.SatAdd32(du, e.Weight))
			}
		}
	}
	return maxFinite, nil
}
