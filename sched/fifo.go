package sched

// Queue is the common worker-side interface the driver programs
// against, satisfied by both *Worker[T] (OBIM) and *FIFOWorker[T]
// (the degenerate single-bucket scheduler). Letting the driver hold a
// Queue[T] means the choice of `--algo ...Obim` vs `...Fifo` is a
// construction-time decision, not a runtime branch inside the hot loop.
type Queue[T any] interface {
	Push(item T)
	Pop() (item T, ok bool)

	// Prewarm stages n empty chunks onto this worker's free list ahead
	// of time, so the first n chunk's worth of pushes don't pay a pool
	// allocation on the hot path.
	Prewarm(n int)
}

// FIFO is the degenerate scheduling variant with no priority buckets:
// every item lands in a single logical bucket, so the scheduler is
// just a work-stealing FIFO chunked deque. Used as a baseline and for
// graphs with nearly-uniform edge weights.
type FIFO[T any] struct {
	q ChunkedFIFO[T]
}

func NewFIFO[T any]() *FIFO[T] { return &FIFO[T]{} }

// FIFOWorker is a per-thread handle onto a FIFO scheduler.
type FIFOWorker[T any] struct {
	local *Local[T]
}

func (f *FIFO[T]) NewWorker() *FIFOWorker[T] { return &FIFOWorker[T]{local: f.q.Worker()} }

func (w *FIFOWorker[T]) Push(item T)    { w.local.Push(item) }
func (w *FIFOWorker[T]) Pop() (T, bool) { return w.local.Pop() }
func (w *FIFOWorker[T]) Prewarm(n int)  { w.local.Prewarm(n) }

var (
	_ Queue[int] = (*Worker[int])(nil)
	_ Queue[int] = (*FIFOWorker[int])(nil)
)
