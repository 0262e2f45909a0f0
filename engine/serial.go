package engine

import (
	"github.com/obim-sssp/obim-sssp/relax"
	"github.com/obim-sssp/obim-sssp/utils"
)

// pqItem is one entry in the serial baseline's heap: satisfies
// utils.PQI so the generic utils.PQ binary heap can be reused directly
// instead of hand-rolling one.
type pqItem struct {
	v    uint32
	dist uint32
}

func (a pqItem) Less(b pqItem) bool { return a.dist < b.dist }

// runSerial is the `--algo serial` baseline: textbook Dijkstra with a
// binary heap, used as the ground truth every concurrent algorithm
// variant must agree with.
func runSerial(g Graph, cfg Config) (*Result, error) {
	n := g.NumVertices()
	dist := relax.NewDistanceTable(int(n))
	dist.Store(cfg.StartNode, 0)

	stats := &Stats{}
	stats.Watch.Start()

	pq := utils.PQ[pqItem]{{v: cfg.StartNode, dist: 0}}
	pq.Init()
	for len(pq) > 0 {
		top := pq.Pop()
		if top.dist != dist.Load(top.v) {
			stats.relaxCounters.EmptyWork++
			continue
		}
		stats.addIteration()
		for _, e := range g.OutEdges(top.v) {
			newDist := relax.SatAdd32(top.dist, e.Weight)
			if old, improved := dist.AtomicMin(e.Dst, newDist); improved {
				if old != relax.INF {
					stats.relaxCounters.BadWork++
				}
				pq.Push(pqItem{v: e.Dst, dist: newDist})
			}
		}
	}

	stats.Watch.Pause()
	maxFinite, err := Verify(g, dist, cfg.StartNode)
	return &Result{Dist: dist, Stats: stats, MaxFinite: maxFinite}, err
}
