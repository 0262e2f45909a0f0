package engine

import "github.com/obim-sssp/obim-sssp/sched"

// Bag is the driver's initial-frontier container: a multi-producer,
// append-only, segmented list. It is realized directly on top of
// sched.ChunkedFIFO — the same chunked, thread-local-fill/shared-steal
// structure used by the FIFO scheduler — rather than a bespoke type,
// since a bag is exactly a chunked deque that is only ever written
// during seeding and drained once at phase start.
type Bag[T any] struct {
	q sched.ChunkedFIFO[T]
}

// NewBag constructs an empty bag.
func NewBag[T any]() *Bag[T] { return &Bag[T]{} }

// Producer returns a handle for one goroutine to append items with.
// Safe to call from multiple goroutines concurrently (each gets its
// own handle); items from different handles interleave arbitrarily.
func (b *Bag[T]) Producer() *sched.Local[T] { return b.q.Worker() }

// Drain hands every item in the bag to fn, single-consumer, then
// leaves the bag empty. Call only after all producers have finished
// appending and called Flush on their handles; items still in a
// producer's unflushed fill-chunk are not seen by Drain.
func (b *Bag[T]) Drain(fn func(T)) {
	w := b.q.Worker()
	for {
		item, ok := w.Pop()
		if !ok {
			break
		}
		fn(item)
	}
}
