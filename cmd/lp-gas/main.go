package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/lollipop-gas/cmd/common"
	"github.com/ScottSallinen/lollipop-gas/graph"
)

func run(options graph.GraphOptions) error {
	name, launch, err := resolveAlgorithm(options.Algorithm)
	if err != nil {
		return err
	}
	options.Algorithm = name
	return launch(options)
}

// Launch point. Parses command line arguments (or a config file), and runs the selected algorithm.
// Usage: lp-gas [flags] [graph [directed [algorithm]]]
func main() {
	options, err := graph.FlagsToOptions(os.Args[0], os.Args[1:], os.Stderr)
	if err == nil {
		err = run(options)
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed (" + common.ErrorKind(err) + ")")
		os.Exit(1)
	}
}
