package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/obim-sssp/obim-sssp/enforce"
	"github.com/obim-sssp/obim-sssp/graphio"
)

func main() {
	nodesPtr := flag.Int("nodes", 1000, "Number of vertices.")
	edgesPtr := flag.Int("edges", 5000, "Number of edges.")
	maxWeightPtr := flag.Uint("maxWeight", 100, "Maximum edge weight (inclusive).")
	directedPtr := flag.Bool("directed", true, "Generate a directed graph.")
	seedPtr := flag.Int64("seed", 1, "Random seed.")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Error().Msg("usage: ssspgen [flags] <output-file>")
		os.Exit(1)
	}

	edges := graphio.GenerateRandom(graphio.RandomOptions{
		NumNodes:  *nodesPtr,
		NumEdges:  *edgesPtr,
		MaxWeight: uint32(*maxWeightPtr),
		Directed:  *directedPtr,
		Seed:      *seedPtr,
	})

	err := graphio.WriteFile(flag.Arg(0), edges)
	enforce.ENFORCE(err)
	log.Info().Msg("wrote " + flag.Arg(0))
}
