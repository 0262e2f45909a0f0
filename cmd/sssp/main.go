package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog/log"

	"github.com/obim-sssp/obim-sssp/enforce"
	"github.com/obim-sssp/obim-sssp/engine"
	"github.com/obim-sssp/obim-sssp/graphio"
	"github.com/obim-sssp/obim-sssp/utils"
)

func main() {
	startNodePtr := flag.Uint("startNode", 0, "Source vertex.")
	reportNodePtr := flag.Uint("reportNode", 1, "Vertex whose distance is printed on completion.")
	deltaPtr := flag.Int("delta", 10, "Stepshift; OBIM bucket width is 1<<delta.")
	algoPtr := flag.String("algo", "async", "serial | async | asyncFifo | asyncWithCas[Blind]{Obim|Fifo}[{H,M,O}Set] | asyncPP")
	memLimitPtr := flag.Uint("memoryLimit", 0, "MB. Accepted for CLI parity with out-of-core front-ends; unused here.")
	threadsPtr := flag.Int("threads", runtime.NumCPU(), "Worker thread count.")
	debugPtr := flag.Int("debug", 0, "0 info, 1 debug, 2 or more trace.")
	noColourPtr := flag.Bool("nc", false, "Disable coloured log output.")
	checkPtr := flag.Bool("check", true, "Exit nonzero when the post-run verifier fails (the verifier always runs).")
	queueMultPtr := flag.Int("queueMultiplier", 4, "Pre-warms this many chunks for each worker's starting bucket.")
	flag.Parse()

	_ = *memLimitPtr // accepted, unused: out-of-core execution is a non-goal

	if *noColourPtr {
		utils.SetLoggerConsole(true)
	}
	utils.SetLevel(*debugPtr)

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: sssp [flags] <graph-file>")
		os.Exit(1)
	}
	graphPath := flag.Arg(0)

	algo, err := engine.ParseAlgo(*algoPtr)
	enforce.ENFORCE(err)

	if *deltaPtr < 0 {
		log.Error().Msg("delta must be >= 0")
		os.Exit(1)
	}

	g, err := graphio.ReadFile(graphPath)
	enforce.ENFORCE(err)

	cfg := engine.Config{
		Algo:            algo,
		StartNode:       uint32(*startNodePtr),
		ReportNode:      uint32(*reportNodePtr),
		Delta:           uint32(*deltaPtr),
		NumThreads:      *threadsPtr,
		QueueMultiplier: *queueMultPtr,
	}

	result, err := engine.Run(g, cfg)
	if err != nil {
		if result == nil {
			log.Error().Msg("run failed: " + err.Error())
			os.Exit(1)
		}
		if *checkPtr {
			log.Error().Msg("verification failed: " + err.Error())
			os.Exit(1)
		}
		log.Warn().Msg("verification failed (continuing, --check=false): " + err.Error())
	}

	log.Info().Msg("dist[report=" + utils.V(cfg.ReportNode) + "] = " + utils.V(result.Dist.Load(cfg.ReportNode)) +
		", maxFinite=" + utils.V(result.MaxFinite))
}
