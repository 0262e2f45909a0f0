package workset

import "sync/atomic"

// Marking is the cheapest Set: one atomic flag per vertex, addressed
// directly by index. TryEnter is a single CAS false->true; Leave is a
// plain store back to false: the relaxation operator has exclusive
// enough access at that point that a racing Leave/TryEnter pair only
// costs an extra, harmless re-push.
type Marking struct {
	flags []atomic.Bool
}

// NewMarking allocates a marking set over vertex ids [0, n).
func NewMarking(n int) *Marking {
	return &Marking{flags: make([]atomic.Bool, n)}
}

func (m *Marking) TryEnter(v uint32) bool {
	return m.flags[v].CompareAndSwap(false, true)
}

func (m *Marking) Leave(v uint32) {
	m.flags[v].Store(false)
}

var _ Set = (*Marking)(nil)
