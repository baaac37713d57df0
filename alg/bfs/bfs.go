package bfs

import (
	"fmt"
	"math"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/lollipop-gas/graph"
	"github.com/ScottSallinen/lollipop-gas/utils"
)

// Hop distances from the source vertex. Unreachable vertices keep UNREACHABLE.
type BFS struct{}

const UNREACHABLE = math.MaxInt64

type VertexProperty struct {
	Distance int64
	Changed  bool
}

// A candidate distance; merged by minimum.
type Mail int64

func (*BFS) InitVertex(_ graph.RunContext, v graph.VertexRef[VertexProperty]) {
	v.Prop.Distance = UNREACHABLE
}

// Only the source starts, with distance zero.
func (*BFS) InitMail(rc graph.RunContext, v graph.VertexRef[VertexProperty]) (graph.Mail[Mail], bool) {
	if v.Raw == rc.SourceVertex {
		return graph.Deliver[Mail](0), true
	}
	return graph.Mail[Mail]{}, false
}

func (*BFS) GatherEdges(graph.RunContext, graph.VertexRef[VertexProperty]) graph.EdgeDir {
	return graph.NO_EDGES
}

func (*BFS) Gather(graph.RunContext, graph.VertexRef[VertexProperty], graph.EdgeRef[VertexProperty]) struct{} {
	return struct{}{}
}

func (*BFS) GatherMerge(struct{}, *struct{}) {}

func (*BFS) Apply(_ *graph.Context[VertexProperty, Mail], v graph.VertexRef[VertexProperty], _ struct{}, mail graph.Mail[Mail]) {
	v.Prop.Changed = mail.Delivered && int64(mail.Value) < v.Prop.Distance
	if v.Prop.Changed {
		v.Prop.Distance = int64(mail.Value)
	}
}

func (*BFS) ScatterEdges(rc graph.RunContext, v graph.VertexRef[VertexProperty]) graph.EdgeDir {
	if !v.Prop.Changed {
		return graph.NO_EDGES
	} else if rc.Directed {
		return graph.OUT_EDGES
	}
	return graph.ALL_EDGES
}

func (*BFS) Scatter(c *graph.Context[VertexProperty, Mail], v graph.VertexRef[VertexProperty], e graph.EdgeRef[VertexProperty]) {
	next := v.Prop.Distance + 1
	if other := e.Other(v.Id); next < other.Prop.Distance {
		c.Signal(other.Id, Mail(next))
	}
}

func (*BFS) MessageMerge(incoming Mail, existing *Mail) {
	graph.Min[Mail]{}.Merge(incoming, existing)
}

func (*BFS) Result(prop *VertexProperty) string {
	return strconv.FormatInt(prop.Distance, 10)
}

func (*BFS) OnFinish(g *graph.Graph[VertexProperty, Mail]) {
	if _, source := g.NodeVertexFromRaw(graph.RawType(g.Options.SourceVertex)); source == nil {
		log.Warn().Msg("WARNING: source vertex " + utils.V(g.Options.SourceVertex) + " is not in the graph")
	}
	reached, depth := 0, int64(0)
	g.NodeForEachVertex(func(_, _ uint32, _ *graph.Vertex, prop *VertexProperty) {
		if prop.Distance != UNREACHABLE {
			reached++
			depth = utils.Max(depth, prop.Distance)
		}
	})
	log.Info().Msg("Reached: " + utils.V(reached) + " Depth: " + utils.V(depth))
}

// Every edge u -> v (either way when undirected) must satisfy dist(v) <= dist(u) + 1, and every reached vertex
// other than the source must have a neighbour one hop closer.
func (*BFS) OnCheckCorrectness(g *graph.Graph[VertexProperty, Mail]) error {
	source := graph.RawType(g.Options.SourceVertex)
	var err error
	relax := func(from, to *VertexProperty, fromRaw, toRaw graph.RawType) {
		if err == nil && from.Distance != UNREACHABLE && to.Distance > from.Distance+1 {
			err = fmt.Errorf("edge %d -> %d is not relaxed: %d then %d", fromRaw, toRaw, from.Distance, to.Distance)
		}
	}
	g.NodeForEachVertex(func(_, internalId uint32, vertex *graph.Vertex, prop *VertexProperty) {
		raw := g.NodeVertexRawID(internalId)
		hasParent := raw == source && prop.Distance == 0
		for _, e := range vertex.OutEdges {
			other := g.NodeVertexProperty(e.Didx)
			relax(prop, other, raw, g.NodeVertexRawID(e.Didx))
			if !g.Options.Directed {
				relax(other, prop, g.NodeVertexRawID(e.Didx), raw)
				hasParent = hasParent || other.Distance+1 == prop.Distance
			}
		}
		for _, e := range vertex.InEdges {
			if other := g.NodeVertexProperty(e.Sidx); other.Distance+1 == prop.Distance {
				hasParent = true
			}
		}
		if err == nil && prop.Distance != UNREACHABLE && !hasParent {
			err = fmt.Errorf("vertex %d at distance %d has no parent", raw, prop.Distance)
		}
	})
	return err
}
