package sched

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Indexer computes the integer priority bucket for an item. For SSSP
// this is w>>Δ (request-carrying variant) or dist[v]>>Δ (set variant);
// Δ is baked into the closure the caller supplies.
type Indexer[T any] func(item T) uint32

type bucketState[T any] struct {
	queue ChunkedLIFO[T]
}

// OBIM approximates a priority queue with bounded staleness: an integer
// bucket directory (lock-free reads via a copy-on-write sorted id list,
// plus a sync.Map of bucket id -> chunked deque for O(1) lookups of a
// bucket that is already known to exist) over per-bucket chunked
// deques. New buckets are created under a short-held mutex, since a
// new bucket's id must be spliced into the sorted directory before it
// is visible to other workers; all reads and all item push/pop traffic
// remain lock-free CAS operations on the per-bucket chunk stacks.
type OBIM[T any] struct {
	indexer Indexer[T]

	buckets sync.Map // uint32 -> *bucketState[T]

	idsMu sync.Mutex
	ids   atomic.Pointer[[]uint32] // sorted, copy-on-write
}

// NewOBIM constructs a scheduler keyed by the given indexer function.
func NewOBIM[T any](indexer Indexer[T]) *OBIM[T] {
	o := &OBIM[T]{indexer: indexer}
	empty := []uint32{}
	o.ids.Store(&empty)
	return o
}

func (o *OBIM[T]) bucketFor(b uint32) *bucketState[T] {
	if v, ok := o.buckets.Load(b); ok {
		return v.(*bucketState[T])
	}
	o.idsMu.Lock()
	defer o.idsMu.Unlock()
	if v, ok := o.buckets.Load(b); ok {
		return v.(*bucketState[T])
	}
	bs := &bucketState[T]{}
	o.buckets.Store(b, bs)
	old := *o.ids.Load()
	next := make([]uint32, len(old)+1)
	copy(next, old)
	next[len(old)] = b
	sort.Slice(next, func(i, j int) bool { return next[i] < next[j] })
	o.ids.Store(&next)
	return bs
}

// ActiveBuckets returns an approximate count of buckets that currently
// exist in the directory (not necessarily non-empty). Diagnostic only.
func (o *OBIM[T]) ActiveBuckets() int { return len(*o.ids.Load()) }

// Worker is a per-thread handle onto the scheduler: a small cache of
// per-bucket Local chunk handles (so a worker revisiting a bucket keeps
// amortizing against the same partially-filled chunk) plus a cached
// "current bucket" hint for Pop to try first.
type Worker[T any] struct {
	owner   *OBIM[T]
	bucket  uint32
	haveCur bool
	locals  map[uint32]*Local[T]
}

// NewWorker creates a fresh per-thread handle. Create exactly one per
// goroutine that will call Push/Pop on this scheduler.
func (o *OBIM[T]) NewWorker() *Worker[T] {
	return &Worker[T]{owner: o, locals: make(map[uint32]*Local[T])}
}

func (w *Worker[T]) localFor(b uint32) *Local[T] {
	if l, ok := w.locals[b]; ok {
		return l
	}
	l := w.owner.bucketFor(b).queue.Worker()
	w.locals[b] = l
	return l
}

// Prewarm stages n empty chunks onto bucket 0's free list for this
// worker. Bucket 0 is the one nearly every run touches first (a
// zero-distance source always lands there), so pre-warming it ahead of
// the seeding phase absorbs the allocations an unprimed pool would
// otherwise pay while draining the initial frontier.
func (w *Worker[T]) Prewarm(n int) { w.localFor(0).Prewarm(n) }

// Push computes the item's bucket and appends to the calling worker's
// local chunk for that bucket; if the computed bucket is lower than the
// worker's cached current bucket, the cache is updated so Pop will
// prefer draining the newly-discovered higher-priority bucket next.
func (w *Worker[T]) Push(item T) {
	b := w.owner.indexer(item)
	w.localFor(b).Push(item)
	if !w.haveCur || b < w.bucket {
		w.bucket, w.haveCur = b, true
	}
}

// Pop drains the worker's cached current bucket's local chunk if
// non-empty; otherwise it consults the sorted bucket-id list for the
// globally lowest non-empty bucket, steals a chunk from it, and caches
// that as the new current bucket. Returns ok=false only when every
// bucket this worker can see is exhausted — an approximation, since a
// concurrent push can always resurrect a bucket immediately after.
func (w *Worker[T]) Pop() (item T, ok bool) {
	if w.haveCur {
		if item, ok = w.localFor(w.bucket).Pop(); ok {
			return item, true
		}
	}
	ids := *w.owner.ids.Load()
	for _, b := range ids {
		if item, ok = w.localFor(b).Pop(); ok {
			w.bucket, w.haveCur = b, true
			return item, true
		}
	}
	w.haveCur = false
	return item, false
}
