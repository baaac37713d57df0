package wcc

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/ScottSallinen/lollipop-gas/graph"
	"github.com/ScottSallinen/lollipop-gas/utils"
)

// Smallest raw id of every component, keyed by raw id, from the gonum oracle.
func OracleLabels(g *graph.Graph[VertexProperty, Mail]) map[graph.RawType]graph.RawType {
	labels := make(map[graph.RawType]graph.RawType, g.NodeVertexCount())
	for _, component := range topo.ConnectedComponents(g.ToGonumUndirected()) {
		smallest := component[0].ID()
		for _, node := range component {
			smallest = utils.Min(smallest, node.ID())
		}
		for _, node := range component {
			labels[graph.RawType(node.ID())] = graph.RawType(smallest)
		}
	}
	return labels
}

// Component labels and sizes, largest first. Equal sizes are ordered by label.
func ComponentSizes(g *graph.Graph[VertexProperty, Mail]) (labels []graph.RawType, sizes []int) {
	components := make(map[graph.RawType]int)
	g.NodeForEachVertex(func(_, _ uint32, _ *graph.Vertex, prop *VertexProperty) {
		components[prop.Label]++
	})
	byLabel := make([]graph.RawType, 0, len(components))
	for label := range components {
		byLabel = append(byLabel, label)
	}
	sort.Slice(byLabel, func(i, j int) bool { return byLabel[i] < byLabel[j] })
	counts := make([]int, len(byLabel))
	for i, label := range byLabel {
		counts[i] = components[label]
	}

	order := utils.SortGiveIndexesLargestFirst(counts)
	labels = make([]graph.RawType, len(order))
	sizes = make([]int, len(order))
	for pos, i := range order {
		labels[pos], sizes[pos] = byLabel[i], counts[i]
	}
	return labels, sizes
}

func (*WCC) OnFinish(g *graph.Graph[VertexProperty, Mail]) {
	labels, sizes := ComponentSizes(g)
	if len(sizes) == 0 {
		return
	}
	log.Info().Msg("Components: " + utils.V(len(sizes)) + " Largest: " + utils.V(sizes[0]))
	for pos := 0; pos < utils.Min(10, len(sizes)); pos++ {
		log.Debug().Msg(utils.V(pos) + "," + utils.F("%10s", labels[pos].String()) + "," + utils.F("%10d", sizes[pos]))
	}
}

// Labels must agree across every edge, and match the smallest id of the component found by the oracle.
func (*WCC) OnCheckCorrectness(g *graph.Graph[VertexProperty, Mail]) error {
	var err error
	g.NodeForEachVertex(func(_, internalId uint32, vertex *graph.Vertex, prop *VertexProperty) {
		for _, e := range vertex.OutEdges {
			if other := g.NodeVertexProperty(e.Didx); err == nil && other.Label != prop.Label {
				err = fmt.Errorf("edge %d -> %d crosses labels %d and %d",
					g.NodeVertexRawID(internalId), g.NodeVertexRawID(e.Didx), prop.Label, other.Label)
			}
		}
	})
	if err != nil {
		return err
	}

	oracle := OracleLabels(g)
	g.NodeForEachVertex(func(_, internalId uint32, _ *graph.Vertex, prop *VertexProperty) {
		raw := g.NodeVertexRawID(internalId)
		if expect, ok := oracle[raw]; err == nil && (!ok || expect != prop.Label) {
			err = fmt.Errorf("vertex %d has label %d, expected %d", raw, prop.Label, expect)
		}
	})
	return err
}
