package graph

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/lollipop-gas/utils"
)

type OutputSink uint8

const (
	OUTPUT_NONE OutputSink = iota
	OUTPUT_CONSOLE
	OUTPUT_FILE
)

func (o *GraphOptions) Sink() OutputSink {
	if o.OutputConsole {
		return OUTPUT_CONSOLE
	} else if o.OutputFile != "" {
		return OUTPUT_FILE
	}
	return OUTPUT_NONE
}

// Shortest representation that round-trips; non-finite values print as NaN, +Inf, -Inf.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Writes per-vertex results to the sink chosen in the options.
func WriteResults[V any, M any](alg any, g *Graph[V, M]) error {
	switch g.Options.Sink() {
	case OUTPUT_CONSOLE:
		return WriteResultsTo(alg, g, os.Stdout)
	case OUTPUT_FILE:
		file, err := utils.CreateFile(g.Options.OutputFile)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrOutput, err)
		}
		if err = WriteResultsTo(alg, g, file); err != nil {
			file.Close()
			return err
		}
		if err = file.Close(); err != nil {
			return fmt.Errorf("%w: %w", ErrOutput, err)
		}
		log.Info().Msg("Wrote results to " + g.Options.OutputFile)
	}
	return nil
}

// Writes "<raw-id> <result>" lines, one per vertex, thread by thread. Order across threads is not meaningful.
func WriteResultsTo[V any, M any](alg any, g *Graph[V, M], w io.Writer) error {
	format := func(prop *V) string { return fmt.Sprintf("%v", *prop) }
	if a, ok := alg.(AlgorithmResult[V]); ok {
		format = a.Result
	}
	buf := bufio.NewWriter(w)
	var err error
	g.NodeForEachVertex(func(_, internalId uint32, _ *Vertex, prop *V) {
		if err != nil {
			return
		}
		_, err = buf.WriteString(g.NodeVertexRawID(internalId).String() + " " + format(prop) + "\n")
	})
	if err == nil {
		err = buf.Flush()
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}
	return nil
}
