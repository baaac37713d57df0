package cdlp

import (
	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/lollipop-gas/graph"
	"github.com/ScottSallinen/lollipop-gas/utils"
)

// Community detection by synchronous label propagation, for a fixed number of iterations.
// Each vertex adopts the most frequent label among its neighbours (over edges in both directions), the smallest on ties.
type CDLP struct{}

type Labels = utils.Multiset[graph.RawType]

type VertexProperty struct {
	Label graph.RawType
}

type Mail struct{}

func (*CDLP) InitVertex(_ graph.RunContext, v graph.VertexRef[VertexProperty]) {
	v.Prop.Label = v.Raw
}

func (*CDLP) IterationCap(rc graph.RunContext) int {
	return rc.MaxIterations
}

func (*CDLP) GatherEdges(graph.RunContext, graph.VertexRef[VertexProperty]) graph.EdgeDir {
	return graph.ALL_EDGES
}

func (*CDLP) Gather(_ graph.RunContext, v graph.VertexRef[VertexProperty], e graph.EdgeRef[VertexProperty]) Labels {
	return utils.NewSingleton(e.Other(v.Id).Prop.Label)
}

func (*CDLP) GatherMerge(incoming Labels, existing *Labels) {
	graph.Union[graph.RawType]{}.Merge(incoming, existing)
}

func (*CDLP) Apply(c *graph.Context[VertexProperty, Mail], v graph.VertexRef[VertexProperty], labels Labels, _ graph.Mail[Mail]) {
	if label, ok := MostFrequent(&labels); ok {
		v.Prop.Label = label
	}
	c.Activate(v.Id)
}

// The label with the highest multiplicity, smallest on ties. False if there are none.
func MostFrequent(labels *Labels) (best graph.RawType, ok bool) {
	bestCount := uint32(0)
	labels.Range(func(label graph.RawType, count uint32) {
		if count > bestCount || (count == bestCount && label < best) {
			best, bestCount = label, count
		}
	})
	return best, bestCount > 0
}

func (*CDLP) ScatterEdges(graph.RunContext, graph.VertexRef[VertexProperty]) graph.EdgeDir {
	return graph.NO_EDGES
}

func (*CDLP) Scatter(*graph.Context[VertexProperty, Mail], graph.VertexRef[VertexProperty], graph.EdgeRef[VertexProperty]) {
}

func (*CDLP) MessageMerge(Mail, *Mail) {}

func (*CDLP) Result(prop *VertexProperty) string {
	return prop.Label.String()
}

func (*CDLP) OnFinish(g *graph.Graph[VertexProperty, Mail]) {
	communities := make(map[graph.RawType]int)
	g.NodeForEachVertex(func(_, _ uint32, _ *graph.Vertex, prop *VertexProperty) {
		communities[prop.Label]++
	})
	log.Info().Msg("Communities: " + utils.V(len(communities)))
}
