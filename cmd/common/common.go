package common

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/lollipop-gas/graph"
	"github.com/ScottSallinen/lollipop-gas/utils"
)

// The base name of a graph file, without directories or extension.
func ExtractGraphName(graphFilename string) (graphName string) {
	gNameMainT := strings.Split(graphFilename, "/")
	gNameMain := gNameMainT[len(gNameMainT)-1]
	gNameMainTD := strings.Split(gNameMain, ".")
	if len(gNameMainTD) > 1 {
		return strings.Join(gNameMainTD[:len(gNameMainTD)-1], ".")
	}
	return gNameMainTD[0]
}

// Short name of the failure class of an error, for the final log line.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, graph.ErrConfiguration):
		return "configuration"
	case errors.Is(err, graph.ErrLoad):
		return "load"
	case errors.Is(err, graph.ErrEngine):
		return "engine"
	case errors.Is(err, graph.ErrOutput):
		return "output"
	}
	return "unknown"
}

// Loads the graph, runs the algorithm, and writes results. Logs a one line summary.
func Launch[V any, G any, M any, A graph.Algorithm[V, G, M]](alg A, options graph.GraphOptions) error {
	log.Info().Msg("Graph: " + ExtractGraphName(options.Name) + " Algorithm: " + options.Algorithm +
		" Directed: " + utils.V(options.Directed) + " Threads: " + utils.V(options.NumThreads))
	g, stats, err := graph.LaunchGraphExecution[V, G, M](alg, options)
	if err != nil {
		return err
	}
	log.Info().Msg("Done: " + ExtractGraphName(options.Name) + " vertices " + utils.V(g.NodeVertexCount()) +
		" supersteps " + utils.V(stats.Supersteps) + " total(ms) " + utils.V(g.Watch.Elapsed().Milliseconds()))
	return nil
}
