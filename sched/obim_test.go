package sched

import "testing"

func TestOBIMDrainsLowestBucketFirst(t *testing.T) {
	const delta = 4 // bucket width 16
	o := NewOBIM(func(item int) uint32 { return uint32(item) >> delta })
	w := o.NewWorker()

	w.Push(100) // bucket 6
	w.Push(1)   // bucket 0
	w.Push(50)  // bucket 3

	first, ok := w.Pop()
	if !ok || first != 1 {
		t.Fatalf("first pop = (%d, %v), want (1, true)", first, ok)
	}
	second, ok := w.Pop()
	if !ok || second != 50 {
		t.Fatalf("second pop = (%d, %v), want (50, true)", second, ok)
	}
	third, ok := w.Pop()
	if !ok || third != 100 {
		t.Fatalf("third pop = (%d, %v), want (100, true)", third, ok)
	}
	if _, ok := w.Pop(); ok {
		t.Fatal("expected empty after draining all buckets")
	}
}

func TestOBIMActiveBuckets(t *testing.T) {
	o := NewOBIM(func(item int) uint32 { return uint32(item) })
	w := o.NewWorker()
	w.Push(0)
	w.Push(1)
	w.Push(0)
	if got := o.ActiveBuckets(); got != 2 {
		t.Fatalf("ActiveBuckets = %d, want 2", got)
	}
}

func TestOBIMWorkerPrewarmThenPop(t *testing.T) {
	o := NewOBIM(func(item int) uint32 { return 0 })
	w := o.NewWorker()
	w.Prewarm(2)
	w.Push(7)
	item, ok := w.Pop()
	if !ok || item != 7 {
		t.Fatalf("pop = (%d, %v), want (7, true)", item, ok)
	}
}

func TestFIFOWorkerSatisfiesQueue(t *testing.T) {
	f := NewFIFO[int]()
	w := f.NewWorker()
	w.Push(1)
	w.Push(2)
	if item, ok := w.Pop(); !ok || item != 1 {
		t.Fatalf("pop = (%d, %v), want (1, true)", item, ok)
	}
}

func TestFIFOWorkerPrewarmThenPush(t *testing.T) {
	f := NewFIFO[int]()
	w := f.NewWorker()
	w.Prewarm(2)
	w.Push(5)
	if item, ok := w.Pop(); !ok || item != 5 {
		t.Fatalf("pop = (%d, %v), want (5, true)", item, ok)
	}
}
