package graph

import (
	"fmt"
	"runtime/pprof"

	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/lollipop-gas/utils"
)

// A gather-apply-scatter vertex program. See alg/ for examples.
// V is the vertex payload, G the gather accumulator, M the message payload.
// Merges (GatherMerge, MessageMerge) must be commutative and associative.
type Algorithm[V any, G any, M any] interface {
	// Which edges to gather over, for a vertex this superstep.
	GatherEdges(rc RunContext, v VertexRef[V]) EdgeDir
	// Contribution of one edge. Reads the state committed at the end of the previous superstep.
	Gather(rc RunContext, v VertexRef[V], e EdgeRef[V]) G
	GatherMerge(incoming G, existing *G)
	// Called once per active vertex, with the merged contributions (zero value if none) and the merged mail.
	// The only place a vertex payload may be written.
	Apply(c *Context[V, M], v VertexRef[V], acc G, mail Mail[M])
	// Which edges to scatter over. Scatter sees post-apply state.
	ScatterEdges(rc RunContext, v VertexRef[V]) EdgeDir
	Scatter(c *Context[V, M], v VertexRef[V], e EdgeRef[V])
	// Merges two messages sent to the same vertex in the same superstep.
	MessageMerge(incoming M, existing *M)
}

// Initializes a vertex payload after loading, before superstep 0. Otherwise payloads start as the zero value.
type AlgorithmInitVertex[V any] interface {
	InitVertex(rc RunContext, v VertexRef[V])
}

// Decides which vertices start active, and with what mail. Default: every vertex active, with no mail.
type AlgorithmInitMail[V any, M any] interface {
	InitMail(rc RunContext, v VertexRef[V]) (mail Mail[M], active bool)
}

// Global reductions, computed between supersteps.
type AlgorithmAggregators[V any] interface {
	Aggregators(rc RunContext) []Aggregator[V]
}

// For algorithms that run a fixed number of supersteps rather than to quiescence (a cap of zero runs none).
// A negative cap means none.
type AlgorithmIterationCap interface {
	IterationCap(rc RunContext) int
}

// Formats a vertex result for output. Otherwise the payload is printed with %v.
type AlgorithmResult[V any] interface {
	Result(prop *V) string
}

type AlgorithmOnFinish[V any, M any] interface {
	OnFinish(g *Graph[V, M])
}

type AlgorithmOnCheckCorrectness[V any, M any] interface {
	OnCheckCorrectness(g *Graph[V, M]) error
}

// Read-only view of a run, handed to every callback. Rebuilt by the engine each superstep; never shared mutably.
type RunContext struct {
	Superstep     int
	NumVertices   uint32
	Directed      bool
	Damping       float64
	MaxIterations int
	SourceVertex  RawType
	aggregates    map[string]float64 // Committed aggregator results. Replaced, never mutated, on commit.
}

// Committed aggregator result. Zero if it was never computed.
func (rc RunContext) Aggregate(name string) float64 {
	return rc.aggregates[name]
}

// Committed aggregator result, and whether it was computed yet.
func (rc RunContext) LookupAggregate(name string) (value float64, ok bool) {
	value, ok = rc.aggregates[name]
	return value, ok
}

func (g *Graph[V, M]) NewRunContext() RunContext {
	return RunContext{
		NumVertices:   uint32(g.NodeVertexCount()),
		Directed:      g.Options.Directed,
		Damping:       g.Options.DampingFactor,
		MaxIterations: g.Options.MaxIterations,
		SourceVertex:  RawType(g.Options.SourceVertex),
		aggregates:    map[string]float64{},
	}
}

// Apply and scatter side handle for a graph thread. Signals are buffered per destination thread and delivered at the barrier.
type Context[V any, M any] struct {
	RunContext
	gt *GraphThread[V, M]
}

type RunStats struct {
	Supersteps int
	Updates    uint64 // Number of apply calls.
	Messages   uint64 // Number of signals delivered.
}

// Runs the algorithm on a finalized graph, to completion.
func Run[V any, G any, M any, A Algorithm[V, G, M]](alg A, g *Graph[V, M]) (stats RunStats, err error) {
	if !g.finalized {
		return stats, fmt.Errorf("%w: graph was not finalized", ErrEngine)
	}
	if g.Options.DebugLevel >= 3 || g.Options.Profile {
		utils.MemoryStats()
	}
	if g.Options.Profile {
		file, err := utils.CreateFile("algorithm.pprof")
		if err != nil {
			return stats, fmt.Errorf("%w: %w", ErrOutput, err)
		}
		defer file.Close()
		if err = pprof.StartCPUProfile(file); err != nil {
			log.Warn().Err(err).Msg("Could not start the CPU profile.")
		} else {
			defer pprof.StopCPUProfile()
		}
	}

	g.AlgTimer.Start()
	stats, err = ConvergeSync[V, G, M](alg, g, g.NewRunContext())
	if err != nil {
		return stats, err
	}
	if err = g.EnsureCompleteness(); err != nil {
		return stats, err
	}

	algElapsed := g.AlgTimer.Elapsed()
	log.Info().Msg("Termination(ms): " + utils.V(algElapsed.Milliseconds()) + " Total including loading: " + utils.V(g.Watch.Elapsed().Milliseconds()) +
		" Messages: " + utils.V(stats.Messages))
	log.Trace().Msg(", termination, " + utils.F("%.3f", algElapsed.Seconds()*1000))

	// Reporting and checking are not algorithm time.
	g.AlgTimer.Pause()
	defer g.AlgTimer.UnPause()

	if a, ok := any(alg).(AlgorithmOnFinish[V, M]); ok {
		a.OnFinish(g)
	}

	if g.Options.CheckCorrectness {
		if a, ok := any(alg).(AlgorithmOnCheckCorrectness[V, M]); ok {
			log.Info().Msg("Checking correctness...")
			if err = a.OnCheckCorrectness(g); err != nil {
				return stats, fmt.Errorf("%w: correctness check failed: %w", ErrEngine, err)
			}
			log.Info().Msg("Correctness check passed. Check(ms): " + utils.V((g.AlgTimer.AbsoluteElapsed() - g.AlgTimer.Elapsed()).Milliseconds()))
		} else {
			log.Warn().Msg("WARNING: Algorithm does not implement OnCheckCorrectness, but asked to.")
		}
	}

	if g.Options.DebugLevel >= 3 || g.Options.Profile {
		utils.MemoryStats()
	}
	return stats, nil
}

// Builds a graph from the given edges (and isolated vertices), for use by tests and tools.
func BuildGraph[V any, M any](options GraphOptions, edges [][2]RawType, vertices ...RawType) (*Graph[V, M], error) {
	g := new(Graph[V, M])
	g.Options = options
	g.Init()
	for _, v := range vertices {
		if _, err := g.AddVertex(v); err != nil {
			return nil, err
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			return nil, err
		}
	}
	if err := g.Finalize(); err != nil {
		return nil, err
	}
	return g, nil
}

// Helper function to launch a graph execution: load the graph named in the options, run the algorithm, then write results.
func LaunchGraphExecution[V any, G any, M any, A Algorithm[V, G, M]](alg A, options GraphOptions) (g *Graph[V, M], stats RunStats, err error) {
	g = new(Graph[V, M])
	g.Options = options
	g.Init()

	if err = LoadGraph(g); err != nil {
		return g, stats, err
	}
	if g.Options.DebugLevel >= 1 {
		g.ComputeGraphStats()
	}
	if stats, err = Run[V, G, M](alg, g); err != nil {
		return g, stats, err
	}
	if err = WriteResults(alg, g); err != nil {
		return g, stats, err
	}
	return g, stats, nil
}
