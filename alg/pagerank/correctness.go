package pagerank

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/graph/network"

	"github.com/ScottSallinen/lollipop-gas/graph"
	"github.com/ScottSallinen/lollipop-gas/utils"
)

const EPSILON = 1e-6
const oracleTolerance = 1e-10

// Logs the top N vertices and their scores.
func PrintTopN(g *graph.Graph[VertexProperty, Mail], size int) {
	ranks := make([]float64, g.NodeVertexCount())
	ids := make([]uint32, g.NodeVertexCount())
	g.NodeForEachVertex(func(i, internalId uint32, _ *graph.Vertex, prop *VertexProperty) {
		ranks[i] = prop.Rank
		ids[i] = internalId
	})
	top := utils.TopN(ranks, size)
	log.Info().Msg("Top N:")
	log.Info().Msg("pos,   rawId,           score")
	for pos, i := range top {
		log.Info().Msg(utils.V(pos) + "," + utils.F("%10s", g.NodeVertexRawID(ids[i]).String()) + "," + utils.F("%16.6f", ranks[i]))
	}
}

func (*PageRank) OnFinish(g *graph.Graph[VertexProperty, Mail]) {
	if g.Options.DebugLevel >= 1 {
		PrintTopN(g, 10)
	}
}

// Directed, the dangling mass keeps the total at one. Undirected, mass held by vertices without edges is lost, so only
// the oracle comparison applies.
func (*PageRank) OnCheckCorrectness(g *graph.Graph[VertexProperty, Mail]) error {
	sum := 0.0
	g.NodeForEachVertex(func(_, _ uint32, _ *graph.Vertex, prop *VertexProperty) {
		sum += prop.Rank
	})
	log.Info().Msg("Total sum score: " + utils.V(sum))
	if g.Options.Directed && !utils.FloatEquals(sum, 1.0, EPSILON) {
		return fmt.Errorf("total rank %v is not one", sum)
	}

	var oracle map[int64]float64
	if g.Options.Directed {
		oracle = network.PageRank(g.ToGonumDirected(), g.Options.DampingFactor, oracleTolerance)
	} else {
		oracle = network.PageRank(g.ToGonumSymmetric(), g.Options.DampingFactor, oracleTolerance)
	}
	OracleCompare(g, oracle)
	return nil
}

// Compares ranks to the converged ranks of the gonum oracle. Differences are expected when few iterations ran,
// or when the graph has parallel edges or self loops (which the oracle collapses).
func OracleCompare(g *graph.Graph[VertexProperty, Mail], oracle map[int64]float64) (largest float64) {
	byRaw := make(map[graph.RawType]float64, len(oracle))
	for id, rank := range oracle {
		byRaw[graph.RawType(id)] = rank
	}
	largest, _ = graph.OracleCompareValues(g, byRaw, func(prop *VertexProperty) float64 { return prop.Rank })
	return largest
}
