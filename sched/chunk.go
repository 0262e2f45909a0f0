// Package sched implements the chunked deque and the OBIM
// (ordered-by-integer-metric) scheduler. A worker amortizes
// synchronization by filling or draining a whole chunk between atomic
// interactions with the shared structure, rather than contending on
// every single push or pop.
package sched

import "sync/atomic"

// ChunkSize is the default number of items per chunk (Δ-stepping /
// Galois-style chunked work lists typically use 64).
const ChunkSize = 64

// chunk is a fixed-size block of work items, linked for chunk-list and
// steal-stack membership via next. Items [0:n) are valid for a LIFO
// chunk; FIFO chunks additionally track a head read-cursor.
type chunk[T any] struct {
	items [ChunkSize]T
	n     int32 // number of valid items (tail index for LIFO push/pop)
	head  int32 // next read position for FIFO pop
	next  atomic.Pointer[chunk[T]]
}

func (c *chunk[T]) full() bool  { return int(c.n) == ChunkSize }
func (c *chunk[T]) empty() bool { return c.head >= c.n }

// lifoPush/lifoPop operate on the tail; used by ChunkedLIFO and as the
// implicit discipline inside OBIM buckets when no FIFO is requested.
func (c *chunk[T]) lifoPush(item T) bool {
	if c.full() {
		return false
	}
	c.items[c.n] = item
	c.n++
	return true
}

func (c *chunk[T]) lifoPop() (item T, ok bool) {
	if c.n == 0 {
		return item, false
	}
	c.n--
	return c.items[c.n], true
}

// fifoPush/fifoPop operate tail-push, head-pop.
func (c *chunk[T]) fifoPush(item T) bool {
	if c.full() {
		return false
	}
	c.items[c.n] = item
	c.n++
	return true
}

func (c *chunk[T]) fifoPop() (item T, ok bool) {
	if c.empty() {
		return item, false
	}
	item = c.items[c.head]
	c.head++
	return item, true
}

// chunkStack is a lock-free (Treiber) stack of chunks, used as the
// shared per-queue (per-bucket, for OBIM) pool that full or flushed
// chunks are published to for stealing; the thread-local free list is
// the separate pool type below. The CAS retry loop
// is the same load-compute-CAS-retry idiom as utils.AtomicMinUint32.
type chunkStack[T any] struct {
	head atomic.Pointer[chunk[T]]
}

func (s *chunkStack[T]) push(c *chunk[T]) {
	for {
		old := s.head.Load()
		c.next.Store(old)
		if s.head.CompareAndSwap(old, c) {
			return
		}
	}
}

func (s *chunkStack[T]) pop() *chunk[T] {
	for {
		old := s.head.Load()
		if old == nil {
			return nil
		}
		next := old.next.Load()
		if s.head.CompareAndSwap(old, next) {
			return old
		}
	}
}

// pool is a thread-local free-list of empty chunks, avoiding an
// allocation every time a worker needs a fresh chunk to fill. Kept as
// plain per-goroutine state rather than a shared sync.Pool, since
// chunks never cross into another thread's free list except via the
// steal stack.
type pool[T any] struct {
	free *chunk[T]
}

func (p *pool[T]) get() *chunk[T] {
	if p.free != nil {
		c := p.free
		p.free = c.next.Load()
		*c = chunk[T]{}
		return c
	}
	return new(chunk[T])
}

func (p *pool[T]) put(c *chunk[T]) {
	c.next.Store(p.free)
	p.free = c
}
