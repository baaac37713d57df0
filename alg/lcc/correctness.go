package lcc

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	gonum "gonum.org/v1/gonum/graph"

	"github.com/ScottSallinen/lollipop-gas/graph"
	"github.com/ScottSallinen/lollipop-gas/utils"
)

const EPSILON = 1e-9

// Brute force coefficients: links among the distinct neighbours of each vertex, over d * (d - 1).
// Undirected, each link counts twice.
func OracleCoefficients(g *graph.Graph[VertexProperty, Mail]) map[graph.RawType]float64 {
	coefs := make(map[graph.RawType]float64, g.NodeVertexCount())
	if g.Options.Directed {
		dg := g.ToGonumDirected()
		for _, n := range gonum.NodesOf(dg.Nodes()) {
			seen := make(map[int64]bool)
			var neighbours []int64
			for _, nb := range append(gonum.NodesOf(dg.From(n.ID())), gonum.NodesOf(dg.To(n.ID()))...) {
				if !seen[nb.ID()] {
					seen[nb.ID()] = true
					neighbours = append(neighbours, nb.ID())
				}
			}
			links := 0
			for _, x := range neighbours {
				for _, y := range neighbours {
					if x != y && dg.HasEdgeFromTo(x, y) {
						links++
					}
				}
			}
			coefs[graph.RawType(n.ID())] = coefficient(links, len(neighbours))
		}
		return coefs
	}
	ug := g.ToGonumUndirected()
	for _, n := range gonum.NodesOf(ug.Nodes()) {
		neighbours := gonum.NodesOf(ug.From(n.ID()))
		links := 0
		for i := range neighbours {
			for j := i + 1; j < len(neighbours); j++ {
				if ug.HasEdgeBetween(neighbours[i].ID(), neighbours[j].ID()) {
					links += 2
				}
			}
		}
		coefs[graph.RawType(n.ID())] = coefficient(links, len(neighbours))
	}
	return coefs
}

func coefficient(links int, degree int) float64 {
	d := float64(degree)
	return float64(links) / (d * (d - 1.0))
}

// Whether every edge links two distinct vertices that no other edge links, in either direction.
// Otherwise multiplicities make the counts incomparable to the brute force ones.
func isSimple(g *graph.Graph[VertexProperty, Mail]) bool {
	return uint64(g.ToGonumUndirected().Edges().Len()) == g.NumEdges
}

func (*LCC) OnFinish(g *graph.Graph[VertexProperty, Mail]) {
	sum, counted := 0.0, 0
	g.NodeForEachVertex(func(_, _ uint32, _ *graph.Vertex, prop *VertexProperty) {
		if !math.IsNaN(prop.Coef) {
			sum += prop.Coef
			counted++
		}
	})
	if counted > 0 {
		log.Info().Msg("Average clustering coefficient: " + utils.F("%.6f", sum/float64(counted)) + " over " + utils.V(counted) + " vertices")
	}
}

// For simple graphs, coefficients must lie within [0, 1] (or be NaN), and match the brute force count.
func (*LCC) OnCheckCorrectness(g *graph.Graph[VertexProperty, Mail]) error {
	if !isSimple(g) {
		log.Info().Msg("Graph has self loops, parallel or reciprocal edges; skipping the oracle comparison.")
		return nil
	}
	var err error
	g.NodeForEachVertex(func(_, internalId uint32, _ *graph.Vertex, prop *VertexProperty) {
		if err == nil && (prop.Coef < 0 || prop.Coef > 1) {
			err = fmt.Errorf("vertex %d has coefficient %v", g.NodeVertexRawID(internalId), prop.Coef)
		}
	})
	if err != nil {
		return err
	}
	largest, missing := graph.OracleCompareValues(g, OracleCoefficients(g), func(prop *VertexProperty) float64 { return prop.Coef })
	if largest > EPSILON || missing > 0 {
		return fmt.Errorf("coefficients differ from the oracle by up to %v (%d missing)", largest, missing)
	}
	return nil
}
