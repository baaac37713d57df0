package pagerank

import (
	"github.com/ScottSallinen/lollipop-gas/graph"
)

// Synchronous PageRank with a fixed number of iterations. Ranks sum to one; dangling mass is spread uniformly.
type PageRank struct{}

type VertexProperty struct {
	Rank float64
}

// PageRank only activates; signals carry no payload.
type Mail struct{}

const DANGLING = "residual"

func (*PageRank) InitVertex(rc graph.RunContext, v graph.VertexRef[VertexProperty]) {
	v.Prop.Rank = 1.0 / float64(rc.NumVertices)
}

// Total rank of vertices with no out-edges, redistributed to every vertex by apply.
// Only meaningful when directed: an undirected vertex with no edges keeps no one's rank either way.
func (*PageRank) Aggregators(rc graph.RunContext) []graph.Aggregator[VertexProperty] {
	if !rc.Directed {
		return nil
	}
	return []graph.Aggregator[VertexProperty]{{
		Name: DANGLING,
		Map: func(_ graph.RunContext, v graph.VertexRef[VertexProperty]) float64 {
			if v.NumOut == 0 {
				return v.Prop.Rank
			}
			return 0
		},
		Now:   true,
		Every: 1,
	}}
}

func (*PageRank) IterationCap(rc graph.RunContext) int {
	return rc.MaxIterations
}

func (*PageRank) GatherEdges(rc graph.RunContext, v graph.VertexRef[VertexProperty]) graph.EdgeDir {
	if rc.Directed {
		return graph.IN_EDGES
	}
	return graph.ALL_EDGES
}

// Share of the neighbour's rank along this edge. Undirected, the neighbour divides over all its edges.
func (*PageRank) Gather(rc graph.RunContext, v graph.VertexRef[VertexProperty], e graph.EdgeRef[VertexProperty]) float64 {
	other := e.Other(v.Id)
	degree := other.NumOut
	if !rc.Directed {
		degree += other.NumIn
	}
	return other.Prop.Rank / float64(degree)
}

func (*PageRank) GatherMerge(incoming float64, existing *float64) {
	*existing += incoming
}

func (*PageRank) Apply(c *graph.Context[VertexProperty, Mail], v graph.VertexRef[VertexProperty], sum float64, _ graph.Mail[Mail]) {
	n := float64(c.NumVertices)
	dangling := 0.0
	if c.Directed {
		var ok bool
		if dangling, ok = c.LookupAggregate(DANGLING); !ok {
			panic("pagerank: dangling mass was not aggregated before apply")
		}
	}
	v.Prop.Rank = (1.0-c.Damping)/n + c.Damping*(sum+dangling/n)
	c.Activate(v.Id)
}

func (*PageRank) ScatterEdges(graph.RunContext, graph.VertexRef[VertexProperty]) graph.EdgeDir {
	return graph.NO_EDGES
}

func (*PageRank) Scatter(*graph.Context[VertexProperty, Mail], graph.VertexRef[VertexProperty], graph.EdgeRef[VertexProperty]) {
}

func (*PageRank) MessageMerge(Mail, *Mail) {}

func (*PageRank) Result(prop *VertexProperty) string {
	return graph.FormatFloat(prop.Rank)
}
