package engine

// Config is the explicit context object threaded through the driver —
// no hidden singletons for the statistics counters or the Δ parameter.
type Config struct {
	Algo Algo

	StartNode  uint32
	ReportNode uint32

	// Delta is the stepShift; bucket width is 1<<Delta.
	Delta uint32

	NumThreads int

	// QueueMultiplier is the number of chunks pre-warmed onto each
	// worker's starting-bucket free list before seeding begins; purely a
	// tuning knob, never affects correctness. Zero disables pre-warming.
	QueueMultiplier int
}

// DefaultConfig mirrors the CLI defaults: startNode 0, reportNode 1,
// delta 10 (bucket width 1024).
func DefaultConfig() Config {
	algo, _ := ParseAlgo("async")
	return Config{
		Algo:            algo,
		StartNode:       0,
		ReportNode:      1,
		Delta:           10,
		NumThreads:      1,
		QueueMultiplier: 4,
	}
}
