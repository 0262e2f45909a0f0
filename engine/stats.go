package engine

import (
	"sync/atomic"

	"github.com/obim-sssp/obim-sssp/mathutils"
	"github.com/obim-sssp/obim-sssp/relax"
)

// Stats is the named-counter reporting interface: Iterations, BadWork,
// EmptyWork, plus a single wall-clock timer over the operator phase.
type Stats struct {
	Iterations uint64

	relaxCounters relax.Counters

	Watch mathutils.Watch
}

func (s *Stats) addIteration() { atomic.AddUint64(&s.Iterations, 1) }

// BadWork and EmptyWork read through to the relaxation operator's own
// counters, so the operator never needs a back-reference to Stats.
func (s *Stats) BadWork() uint64   { return atomic.LoadUint64(&s.relaxCounters.BadWork) }
func (s *Stats) EmptyWork() uint64 { return atomic.LoadUint64(&s.relaxCounters.EmptyWork) }
