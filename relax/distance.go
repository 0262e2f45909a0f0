// Package relax implements the per-vertex distance cell and the
// relaxation operator (components A and E of the engine).
package relax

import (
	"sync/atomic"

	"github.com/obim-sssp/obim-sssp/utils"
)

// INF is the sentinel distance meaning "unreached": the uint32 maximum,
// which is also the value SatAdd32 saturates to.
const INF uint32 = 1<<32 - 1

// SatAdd32 adds a and b, clamping to INF instead of wrapping on
// overflow. Per the error-handling design, an edge whose relaxed sum
// would overflow is treated as infinite rather than silently wrapping,
// so it never improves any distance.
func SatAdd32(a, b uint32) uint32 {
	sum := a + b
	if sum < a || sum >= INF { // overflow, or landed on the sentinel
		return INF
	}
	return sum
}

// DistanceTable is a flat array of atomically-accessed vertex distances.
// Racy reads never tear: every element is loaded/stored/CAS'd through
// sync/atomic, never through a plain slice access.
type DistanceTable struct {
	d []uint32
}

// NewDistanceTable allocates a table for n vertices, all initialized to INF.
func NewDistanceTable(n int) *DistanceTable {
	d := make([]uint32, n)
	for i := range d {
		d[i] = INF
	}
	return &DistanceTable{d: d}
}

func (t *DistanceTable) Len() int { return len(t.d) }

// Load reads dist[v] with acquire semantics.
func (t *DistanceTable) Load(v uint32) uint32 {
	return atomic.LoadUint32(&t.d[v])
}

// Store writes dist[v] with release semantics. Used only for
// initialization and by the non-CAS ("blind") relaxation path.
func (t *DistanceTable) Store(v uint32, val uint32) {
	atomic.StoreUint32(&t.d[v], val)
}

// CompareAndSwap attempts dist[v]: old -> new, acquire-release.
func (t *DistanceTable) CompareAndSwap(v uint32, old, new uint32) bool {
	return atomic.CompareAndSwapUint32(&t.d[v], old, new)
}

// AtomicMin sets dist[v] = min(dist[v], candidate), delegating to the
// teacher's utils.AtomicMinUint32 CAS retry loop. Returns the previous
// value and whether the candidate strictly improved it (true whenever
// the returned old value is itself greater than candidate, since
// AtomicMinUint32 only ever returns a pre-swap old when it swapped).
func (t *DistanceTable) AtomicMin(v uint32, candidate uint32) (old uint32, improved bool) {
	old = utils.AtomicMinUint32(&t.d[v], candidate)
	return old, candidate < old
}

// Snapshot copies the table into a fresh slice for inspection after the
// run has terminated (no more concurrent writers at that point).
func (t *DistanceTable) Snapshot() []uint32 {
	out := make([]uint32, len(t.d))
	copy(out, t.d)
	return out
}
