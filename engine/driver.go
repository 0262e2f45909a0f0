package engine

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/obim-sssp/obim-sssp/relax"
	"github.com/obim-sssp/obim-sssp/sched"
	"github.com/obim-sssp/obim-sssp/utils"
	"github.com/obim-sssp/obim-sssp/workset"
)

// Result is what Run hands back: the distance table (already
// finalized, safe for concurrent-free reading) and the run's
// statistics.
type Result struct {
	Dist      *relax.DistanceTable
	Stats     *Stats
	MaxFinite uint32
}

// Run is the driver (component F): allocate/initialize distances, seed
// the frontier from the source's out-edges, drain the chosen
// scheduler/work-set combination until quiescence, then verify.
func Run(g Graph, cfg Config) (*Result, error) {
	n := g.NumVertices()
	if cfg.StartNode >= n {
		return nil, fmt.Errorf("engine: startNode %d out of range for %d vertices", cfg.StartNode, n)
	}
	if cfg.ReportNode >= n {
		return nil, fmt.Errorf("engine: reportNode %d out of range for %d vertices", cfg.ReportNode, n)
	}
	if cfg.NumThreads < 1 {
		return nil, fmt.Errorf("engine: numThreads must be >= 1, got %d", cfg.NumThreads)
	}

	if cfg.Algo.Serial {
		return runSerial(g, cfg)
	}

	dist := relax.NewDistanceTable(int(n))
	dist.Store(cfg.StartNode, 0)

	stats := &Stats{}
	stats.Watch.Start()

	src := relaxSource{g: g}

	var ws workset.Set
	switch cfg.Algo.WorkSet {
	case WorkSetMarking:
		ws = workset.NewMarking(int(n))
	case WorkSetHash:
		ws = workset.NewHSet(int(n))
	case WorkSetOrdered:
		ws = workset.NewOSet(int(n))
	}

	indexer := func(item workItem) uint32 { return item.W >> cfg.Delta }

	var obim *sched.OBIM[workItem]
	var fifo *sched.FIFO[workItem]
	if cfg.Algo.Sched == SchedObim {
		obim = sched.NewOBIM(indexer)
	} else {
		fifo = sched.NewFIFO[workItem]()
	}
	newQueueWorker := func() sched.Queue[workItem] {
		if obim != nil {
			return obim.NewWorker()
		}
		return fifo.NewWorker()
	}

	queues := make([]sched.Queue[workItem], cfg.NumThreads)
	for i := range queues {
		queues[i] = newQueueWorker()
		if cfg.QueueMultiplier > 0 {
			queues[i].Prewarm(cfg.QueueMultiplier)
		}
	}

	// tryEnter applies the work-set filter (if any); a worker only ever
	// pushes onto its own queue handle (queues[id]) — cross-thread
	// visibility of a push happens exclusively through the scheduler's
	// steal stack, never by one goroutine calling Push on another's
	// Local (sched.Local is not safe for that).
	tryEnter := func(v uint32) bool {
		if ws == nil {
			return true
		}
		return ws.TryEnter(v)
	}

	// Seed the initial bag directly from the source's out-edges, then
	// drain it round-robin across the workers' queues. This happens
	// before any worker goroutine starts, so handing out queue ownership
	// here is still single-threaded and safe.
	bag := NewBag[workItem]()
	producer := bag.Producer()
	seedCounters := &relax.Counters{}
	relax.RelaxCAS(dist, src, relax.Request{V: cfg.StartNode, W: 0}, func(v, w uint32) {
		producer.Push(workItem{V: v, W: w})
	}, seedCounters)
	producer.Flush()
	next := 0
	bag.Drain(func(item workItem) {
		if !tryEnter(item.V) {
			return
		}
		queues[next%len(queues)].Push(item)
		next++
	})
	stats.relaxCounters.BadWork += seedCounters.BadWork
	stats.relaxCounters.EmptyWork += seedCounters.EmptyWork

	term := newTermination(cfg.NumThreads)
	var wg sync.WaitGroup
	wg.Add(cfg.NumThreads)
	for t := 0; t < cfg.NumThreads; t++ {
		go runWorker(t, queues[t], dist, src, cfg, ws, tryEnter, stats, term, &wg)
	}
	wg.Wait()

	stats.Watch.Pause()
	log.Info().Msg("engine: done in " + utils.V(stats.Watch.Elapsed()) +
		", iterations=" + utils.V(stats.Iterations) +
		", badWork=" + utils.V(stats.BadWork()) +
		", emptyWork=" + utils.V(stats.EmptyWork()))

	maxFinite, err := Verify(g, dist, cfg.StartNode)
	return &Result{Dist: dist, Stats: stats, MaxFinite: maxFinite}, err
}

func runWorker(
	id int,
	q sched.Queue[workItem],
	dist *relax.DistanceTable,
	src relaxSource,
	cfg Config,
	ws workset.Set,
	tryEnter func(v uint32) bool,
	stats *Stats,
	term *termination,
	wg *sync.WaitGroup,
) {
	defer wg.Done()
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	push := func(v, w uint32) {
		if !tryEnter(v) {
			return
		}
		term.recordPush(id)
		q.Push(workItem{V: v, W: w})
	}

	idleRounds := 0
	for {
		item, ok := q.Pop()
		if !ok {
			if term.check(id) {
				return
			}
			utils.BackOff(idleRounds)
			idleRounds++
			continue
		}
		idleRounds = 0
		term.recordPop(id)
		stats.addIteration()

		if ws != nil {
			ws.Leave(item.V)
			if cfg.Algo.Blind {
				relax.RelaxBlind(dist, src, relax.SetRequest{V: item.V}, push, &stats.relaxCounters)
			} else {
				relax.RelaxCASSet(dist, src, relax.SetRequest{V: item.V}, push, &stats.relaxCounters)
			}
			continue
		}

		if cfg.Algo.PushPull {
			relax.RelaxPushPull(dist, src, relax.Request{V: item.V, W: item.W}, noReverseWeight, push, &stats.relaxCounters)
			continue
		}

		relax.RelaxCAS(dist, src, relax.Request{V: item.V, W: item.W}, push, &stats.relaxCounters)
	}
}

// noReverseWeight is used when the graph implementation exposes no
// reverse-edge lookup; RelaxPushPull degrades to plain CAS relaxation.
func noReverseWeight(uint32) (uint32, bool) { return 0, false }
