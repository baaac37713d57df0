package graph

import (
	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/lollipop-gas/utils"
)

// Builds a gonum copy of the topology, for oracle solutions. Node ids are raw ids.
// gonum simple graphs hold no self loops or parallel edges; those are dropped.
func (g *Graph[V, M]) ToGonumDirected() *simple.DirectedGraph {
	dg := simple.NewDirectedGraph()
	g.forEachRawEdge(func(src, dst RawType) {
		if src != dst {
			dg.SetEdge(dg.NewEdge(simple.Node(src), simple.Node(dst)))
		}
	})
	g.NodeForEachVertex(func(_, internalId uint32, _ *Vertex, _ *V) {
		if dg.Node(int64(g.NodeVertexRawID(internalId))) == nil {
			dg.AddNode(simple.Node(g.NodeVertexRawID(internalId)))
		}
	})
	return dg
}

// As ToGonumDirected, with every edge added in both directions: an undirected graph, for directed-only oracles.
func (g *Graph[V, M]) ToGonumSymmetric() *simple.DirectedGraph {
	dg := g.ToGonumDirected()
	g.forEachRawEdge(func(src, dst RawType) {
		if src != dst {
			dg.SetEdge(dg.NewEdge(simple.Node(dst), simple.Node(src)))
		}
	})
	return dg
}

// As ToGonumDirected, with edge direction ignored.
func (g *Graph[V, M]) ToGonumUndirected() *simple.UndirectedGraph {
	ug := simple.NewUndirectedGraph()
	g.forEachRawEdge(func(src, dst RawType) {
		if src != dst {
			ug.SetEdge(ug.NewEdge(simple.Node(src), simple.Node(dst)))
		}
	})
	g.NodeForEachVertex(func(_, internalId uint32, _ *Vertex, _ *V) {
		if ug.Node(int64(g.NodeVertexRawID(internalId))) == nil {
			ug.AddNode(simple.Node(g.NodeVertexRawID(internalId)))
		}
	})
	return ug
}

func (g *Graph[V, M]) forEachRawEdge(fn func(src, dst RawType)) {
	g.NodeForEachVertex(func(_, internalId uint32, vertex *Vertex, _ *V) {
		src := g.NodeVertexRawID(internalId)
		for _, e := range vertex.OutEdges {
			fn(src, g.NodeVertexRawID(e.Didx))
		}
	})
}

// Compares per-vertex values to an oracle solution keyed by raw id, and logs the differences.
// Returns the largest L1 difference, and how many vertices the oracle had no value for.
func OracleCompareValues[V any, M any, T constraints.Float | constraints.Integer](g *Graph[V, M], oracle map[RawType]T, value func(prop *V) T) (largest float64, missing int) {
	numVertices := g.NodeVertexCount()
	ours := make([]T, 0, numVertices)
	theirs := make([]T, 0, numVertices)
	g.NodeForEachVertex(func(_, internalId uint32, _ *Vertex, prop *V) {
		expect, ok := oracle[g.NodeVertexRawID(internalId)]
		if !ok {
			missing++
			return
		}
		ours = append(ours, value(prop))
		theirs = append(theirs, expect)
	})
	avgL1Diff, medianL1Diff, percentile95L1, largest := utils.ResultCompare(ours, theirs)
	log.Info().Msg("Oracle compare: AvgL1Diff " + utils.F("%.3e", avgL1Diff) + " MedianL1Diff " + utils.F("%.3e", medianL1Diff) +
		" 95pL1Diff " + utils.F("%.3e", percentile95L1) + " LargestL1Diff " + utils.F("%.3e", largest))
	if missing > 0 {
		log.Warn().Msg("WARNING: oracle had no value for " + utils.V(missing) + " vertices")
	}
	return largest, missing
}
