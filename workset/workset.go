// Package workset implements the optional duplicate-suppression layer
// (component D): a membership filter that keeps a vertex from being
// enqueued more than once at a time, wrapping the scheduler in
// sched. Three implementations are offered, selected per run by the
// `--algo ...{H,M,O}Set` suffix (see engine.Algo): Marking, HSet, OSet.
package workset

// Set is the duplicate-suppression contract. A push that finds the
// vertex already in the set is dropped silently (TryEnter returns
// false); a vertex may re-enter the set any time after Leave. The
// relaxation operator must call Leave before reading dist[v], so a
// concurrent improvement observed during the edge scan can re-enqueue.
type Set interface {
	// TryEnter attempts to mark v as enqueued. Returns true if v was not
	// already present (the caller should push it); false if a push for v
	// is already outstanding (the caller must drop this push).
	TryEnter(v uint32) bool
	// Leave removes v from the set, allowed to be called even if v is
	// not currently present.
	Leave(v uint32)
}
