package relax

// Request is an update request (v, w): v is the vertex to relax
// against, w is the proposed distance at the moment the request was
// enqueued. Immutable once queued.
type Request struct {
	V uint32
	W uint32
}

// SetRequest carries only the vertex; used by the work-set variants,
// where the proposed distance is implicitly dist[v] at pop time.
type SetRequest struct {
	V uint32
}
