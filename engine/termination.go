package engine

import "sync/atomic"

// termination is the distributed-termination vote protocol (see check):
// each worker reports vertices pushed and popped; once every worker's
// view of the total action count (pushed + popped, summed over all
// workers) agrees and stays unchanged across two re-checks, the run is
// quiescent. This tolerates a worker observing a
// transient imbalance mid-push without ever declaring termination
// early — a three-phase handshake (not-ready / tentative / confirmed).
type termination struct {
	numWorkers int

	pushed []uint64 // per worker, atomic
	popped []uint64 // per worker, atomic

	view  []int64 // per worker's last-seen total action count
	votes []int   // per worker's vote state: 0, 1, 2, 3(=ready)
}

func newTermination(numWorkers int) *termination {
	return &termination{
		numWorkers: numWorkers,
		pushed:     make([]uint64, numWorkers),
		popped:     make([]uint64, numWorkers),
		view:       make([]int64, numWorkers),
		votes:      make([]int, numWorkers),
	}
}

func (t *termination) recordPush(worker int) { atomic.AddUint64(&t.pushed[worker], 1) }
func (t *termination) recordPop(worker int)  { atomic.AddUint64(&t.popped[worker], 1) }

// check runs one round of the vote for the calling worker. Returns
// true only once every worker has independently reached the same
// conclusion in the same round.
func (t *termination) check(self int) bool {
	allActions := int64(0)
	for w := 0; w < t.numWorkers; w++ {
		allActions += int64(atomic.LoadUint64(&t.pushed[w])) + int64(atomic.LoadUint64(&t.popped[w]))
	}

	if t.view[self] != allActions {
		t.view[self] = allActions
		t.votes[self] = 0
		return false
	}
	for w := 0; w < t.numWorkers; w++ {
		if t.view[w] != allActions {
			t.votes[self] = 0
			return false
		}
	}

	if t.votes[self] == 0 {
		t.votes[self] = 1
	}
	for w := 0; w < t.numWorkers; w++ {
		if t.votes[w] == 0 {
			t.votes[self] = 1
			return false
		}
	}

	if t.votes[self] == 1 {
		t.votes[self] = 2
		return false
	}
	for w := 0; w < t.numWorkers; w++ {
		if t.votes[w] < 2 {
			return false
		}
	}

	t.votes[self] = 3
	for w := 0; w < t.numWorkers; w++ {
		if t.votes[w] != 3 {
			return false
		}
	}
	return true
}
