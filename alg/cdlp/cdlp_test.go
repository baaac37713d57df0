package cdlp

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ScottSallinen/lollipop-gas/graph"
)

func run(t *testing.T, iterations int, edges [][2]graph.RawType, vertices ...graph.RawType) (*graph.Graph[VertexProperty, Mail], graph.RunStats) {
	t.Helper()
	options := graph.GraphOptions{NumThreads: uint32(rand.Intn(8-1) + 1), MaxIterations: iterations}
	g, err := graph.BuildGraph[VertexProperty, Mail](options, edges, vertices...)
	require.NoError(t, err)
	stats, err := graph.Run[VertexProperty, Labels, Mail](new(CDLP), g)
	require.NoError(t, err)
	return g, stats
}

func label(g *graph.Graph[VertexProperty, Mail], raw graph.RawType) graph.RawType {
	return g.NodeVertexPropertyFromRaw(raw).Label
}

func TestMostFrequent(t *testing.T) {
	var labels Labels
	_, ok := MostFrequent(&labels)
	require.False(t, ok)

	labels.Add(7, 1)
	best, ok := MostFrequent(&labels)
	require.True(t, ok)
	require.Equal(t, graph.RawType(7), best)

	labels.Add(3, 2)
	labels.Add(9, 2)
	best, _ = MostFrequent(&labels)
	require.Equal(t, graph.RawType(3), best)
}

func TestTwoCliques(t *testing.T) {
	// Two triangles joined by a single edge 3 - 4. The second triangle ends up with the label 3 carried over the bridge.
	edges := [][2]graph.RawType{{1, 2}, {2, 3}, {1, 3}, {4, 5}, {5, 6}, {4, 6}, {3, 4}}
	for tCount := 0; tCount < 10; tCount++ {
		g, stats := run(t, 10, edges, 20)
		require.Equal(t, 10, stats.Supersteps)
		for raw := graph.RawType(1); raw <= 3; raw++ {
			require.Equal(t, graph.RawType(1), label(g, raw))
		}
		for raw := graph.RawType(4); raw <= 6; raw++ {
			require.Equal(t, graph.RawType(3), label(g, raw))
		}
		require.Equal(t, graph.RawType(20), label(g, 20))
	}
}

func TestFirstIterationTakesSmallestNeighbour(t *testing.T) {
	// Every neighbour label appears once, so the smallest wins.
	g, stats := run(t, 1, [][2]graph.RawType{{5, 2}, {5, 8}, {9, 5}})
	require.Equal(t, 1, stats.Supersteps)
	require.Equal(t, graph.RawType(2), label(g, 5))
	require.Equal(t, graph.RawType(5), label(g, 2))
	require.Equal(t, graph.RawType(5), label(g, 9))
}

func TestZeroIterations(t *testing.T) {
	g, stats := run(t, 0, [][2]graph.RawType{{5, 2}})
	require.Equal(t, 0, stats.Supersteps)
	require.Equal(t, graph.RawType(5), label(g, 5))
}
