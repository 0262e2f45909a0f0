package sched

// discipline selects which end chunk items are drained from.
type discipline bool

const (
	lifo discipline = false
	fifo discipline = true
)

// Local is one thread's private handle onto a shared chunked queue: a
// local chunk being filled (push target), a local chunk being drained
// (pop source), and a pointer to the queue's shared steal stack. Only
// the owning goroutine ever touches pushing/popping/pool; the shared
// stack is the only cross-thread contended state, and every
// interaction with it is a single CAS (chunk.go's chunkStack).
//
// This is the generic machinery behind ChunkedFIFO/ChunkedLIFO below,
// and is also what each OBIM bucket hands out per worker.
type Local[T any] struct {
	disc    discipline
	pool    pool[T]
	pushing *chunk[T]
	popping *chunk[T]
	shared  *chunkStack[T]
}

func newLocal[T any](disc discipline, shared *chunkStack[T]) *Local[T] {
	return &Local[T]{disc: disc, shared: shared}
}

// Push appends an item, publishing the local fill-chunk to the shared
// steal stack once it is full and starting a fresh one from the pool.
func (d *Local[T]) Push(item T) {
	if d.pushing == nil {
		d.pushing = d.pool.get()
	}
	if !d.tryPush(d.pushing, item) {
		d.shared.push(d.pushing)
		d.pushing = d.pool.get()
		d.tryPush(d.pushing, item)
	}
}

func (d *Local[T]) tryPush(c *chunk[T], item T) bool {
	if d.disc == fifo {
		return c.fifoPush(item)
	}
	return c.lifoPush(item)
}

func (d *Local[T]) tryPop(c *chunk[T]) (T, bool) {
	if d.disc == fifo {
		return c.fifoPop()
	}
	return c.lifoPop()
}

// Pop drains the local chunk first; if that is empty, it steals a full
// chunk from the shared stack; failing that, it adopts its own
// partially-filled fill-chunk as the drain chunk. Returns ok=false only
// once all three are dry.
func (d *Local[T]) Pop() (item T, ok bool) {
	if d.popping != nil {
		if item, ok = d.tryPop(d.popping); ok {
			return item, true
		}
		d.pool.put(d.popping)
		d.popping = nil
	}
	if stolen := d.shared.pop(); stolen != nil {
		d.popping = stolen
		return d.tryPop(d.popping)
	}
	if d.pushing != nil && d.pushing.n > 0 {
		d.popping, d.pushing = d.pushing, nil
		return d.tryPop(d.popping)
	}
	return item, false
}

// Prewarm stages n empty chunks onto this handle's free list, so the
// first n chunks a subsequent Push needs come from the pool instead of
// a fresh allocation.
func (d *Local[T]) Prewarm(n int) {
	for i := 0; i < n; i++ {
		d.pool.put(new(chunk[T]))
	}
}

// Flush publishes any partially-filled local fill-chunk to the shared
// stack, making its contents visible for stealing by other workers.
// The driver calls it on the seeding bag's producer handle so that a
// separate Drain handle can see the last, partially-filled chunk.
func (d *Local[T]) Flush() {
	if d.pushing != nil && d.pushing.n > 0 {
		d.shared.push(d.pushing)
		d.pushing = nil
	}
}

// Empty reports whether this worker's view has nothing left: no local
// chunks and nothing available to steal. An approximate check — a
// concurrent Push from another worker can invalidate it immediately.
func (d *Local[T]) Empty() bool {
	if d.popping != nil && !d.popping.empty() {
		return false
	}
	if d.pushing != nil && d.pushing.n > 0 {
		return false
	}
	return d.shared.head.Load() == nil
}

// ChunkedFIFO is the shared, multi-worker FIFO chunked deque: push to
// tail, pop from head (once drained per-worker). Used by the
// `asyncFifo` degenerate, bucket-free scheduling variant.
type ChunkedFIFO[T any] struct {
	shared chunkStack[T]
}

func NewChunkedFIFO[T any]() *ChunkedFIFO[T] { return &ChunkedFIFO[T]{} }

// Worker returns a new thread-private handle onto the shared queue.
func (q *ChunkedFIFO[T]) Worker() *Local[T] { return newLocal[T](fifo, &q.shared) }

// ChunkedLIFO is the shared, multi-worker LIFO chunked deque: push/pop
// from the tail. Used implicitly inside each OBIM bucket when no FIFO
// is requested.
type ChunkedLIFO[T any] struct {
	shared chunkStack[T]
}

func NewChunkedLIFO[T any]() *ChunkedLIFO[T] { return &ChunkedLIFO[T]{} }

func (q *ChunkedLIFO[T]) Worker() *Local[T] { return newLocal[T](lifo, &q.shared) }
