package relax

import "sync/atomic"

// Edge is a single out-edge: destination vertex and non-negative weight.
type Edge struct {
	Dst    uint32
	Weight uint32
}

// EdgeSource is the minimal capability the relaxation operator needs
// from a graph: its out-edges for a vertex.
type EdgeSource interface {
	OutEdges(v uint32) []Edge
}

// Counters accumulates the EmptyWork/BadWork statistics. Iterations is
// tracked by the driver, which pops requests; these two are intrinsic
// to the operator itself.
type Counters struct {
	EmptyWork uint64
	BadWork   uint64
}

func (c *Counters) addEmptyWork() { atomic.AddUint64(&c.EmptyWork, 1) }
func (c *Counters) addBadWork()   { atomic.AddUint64(&c.BadWork, 1) }

// Push is how the operator hands a newly-improved neighbour back to the
// caller (the driver's scheduler of choice). Kept as a plain function
// value rather than an interface so that the CAS/non-CAS inner loops
// stay branch-free and inlinable for a given instantiation.
type Push func(v uint32, newDist uint32)

// RelaxCAS is the per-work-item relaxation operator for non-set
// schedules: an empty-work gate, an edge scan, then an atomic CAS
// relax with bad-work accounting on each improved neighbour.
//
// The empty-work gate is advisory and is charged exactly once per
// request, not once per edge: a request whose proposed distance is
// already stale by the time it's popped skips the entire edge scan
// rather than re-checking staleness per edge.
func RelaxCAS(dist *DistanceTable, edges EdgeSource, req Request, push Push, c *Counters) {
	if req.W != dist.Load(req.V) {
		c.addEmptyWork()
		return
	}
	for _, e := range edges.OutEdges(req.V) {
		relaxEdgeCAS(dist, req.V, e, push, c)
	}
}

func relaxEdgeCAS(dist *DistanceTable, src uint32, e Edge, push Push, c *Counters) {
	newDist := SatAdd32(dist.Load(src), e.Weight)
	old, improved := dist.AtomicMin(e.Dst, newDist)
	if !improved {
		return
	}
	if old != INF {
		c.addBadWork()
	}
	push(e.Dst, newDist)
}

// RelaxCASSet is the set-relaxation counterpart to RelaxCAS: used when
// a work-set dedupes a vertex's own queue membership (so a popped
// SetRequest has no carried distance to gate against — dist[v] is
// re-read fresh), but distinct source vertices can still race to relax
// the same destination concurrently. It scans req.V's out-edges and
// relaxes each one with the same atomic CAS retry loop as RelaxCAS,
// so two concurrent writers targeting the same destination can never
// regress dist[dst] to a larger value.
func RelaxCASSet(dist *DistanceTable, edges EdgeSource, req SetRequest, push Push, c *Counters) {
	for _, e := range edges.OutEdges(req.V) {
		relaxEdgeCAS(dist, req.V, e, push, c)
	}
}

// RelaxBlind is the non-CAS set-relaxation variant for when the caller
// can additionally guarantee at most one visitor per destination
// vertex at a time, not just per source — i.e. no two in-flight
// sources ever relax the same destination concurrently. It writes
// dist[u] unconditionally inside a read-check-write sequence instead
// of looping on CompareAndSwap. This guarantee is not statically
// enforced; callers must only select this path from a scheduler/
// work-set combination that actually provides it.
func RelaxBlind(dist *DistanceTable, edges EdgeSource, req SetRequest, push Push, c *Counters) {
	srcDist := dist.Load(req.V)
	for _, e := range edges.OutEdges(req.V) {
		newDist := SatAdd32(srcDist, e.Weight)
		old := dist.Load(e.Dst)
		if newDist >= old {
			continue
		}
		dist.Store(e.Dst, newDist)
		if old != INF {
			c.addBadWork()
		}
		push(e.Dst, newDist)
	}
}

// RelaxPushPull extends RelaxCAS with an opportunistic pull: while
// scanning src's edges, it folds in any improvement a neighbour offers
// back to src (via the edge's reverse weight) into a local copy of the
// source distance, then CAS-writes that back to dist[src] once at the
// end of the scan. This captures concurrent improvements to src without
// a second pop. The pull folds iteratively into the local sdist copy
// rather than recursing into a second relax, with a single guarded
// write-back to dist[src] at the end of the scan.
//
// reverseWeight maps a destination back to the weight of the edge it
// would use to improve src, or (0, false) if no such reverse edge is
// known; callers without reverse-edge information should pass a
// function that always returns (0, false), degrading to plain RelaxCAS.
func RelaxPushPull(dist *DistanceTable, edges EdgeSource, req Request, reverseWeight func(dst uint32) (uint32, bool), push Push, c *Counters) {
	if req.W != dist.Load(req.V) {
		c.addEmptyWork()
		return
	}
	sdist := dist.Load(req.V)
	for _, e := range edges.OutEdges(req.V) {
		newDist := SatAdd32(sdist, e.Weight)
		old, improved := dist.AtomicMin(e.Dst, newDist)
		if improved {
			if old != INF {
				c.addBadWork()
			}
			push(e.Dst, newDist)
		}
		if rw, ok := reverseWeight(e.Dst); ok {
			neighbourDist := dist.Load(e.Dst)
			if pulled := SatAdd32(neighbourDist, rw); pulled < sdist {
				sdist = pulled
			}
		}
	}
	if sdist < req.W {
		if _, improved := dist.AtomicMin(req.V, sdist); improved {
			push(req.V, sdist)
		}
	}
}
