package bfs

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ScottSallinen/lollipop-gas/graph"
)

func run(t *testing.T, directed bool, source graph.RawType, edges [][2]graph.RawType, vertices ...graph.RawType) (*graph.Graph[VertexProperty, Mail], graph.RunStats) {
	t.Helper()
	options := graph.GraphOptions{
		NumThreads:       uint32(rand.Intn(8-1) + 1),
		Directed:         directed,
		SourceVertex:     uint64(source),
		CheckCorrectness: true,
	}
	g, err := graph.BuildGraph[VertexProperty, Mail](options, edges, vertices...)
	require.NoError(t, err)
	stats, err := graph.Run[VertexProperty, struct{}, Mail](new(BFS), g)
	require.NoError(t, err)
	return g, stats
}

func distance(g *graph.Graph[VertexProperty, Mail], raw graph.RawType) int64 {
	return g.NodeVertexPropertyFromRaw(raw).Distance
}

func TestDirected(t *testing.T) {
	for tCount := 0; tCount < 10; tCount++ {
		// 1 -> 2 -> 3 -> 4, 1 -> 3, 5 -> 1, 6 isolated.
		g, stats := run(t, true, 1, [][2]graph.RawType{{1, 2}, {2, 3}, {3, 4}, {1, 3}, {5, 1}}, 6)
		require.Equal(t, int64(0), distance(g, 1))
		require.Equal(t, int64(1), distance(g, 2))
		require.Equal(t, int64(1), distance(g, 3))
		require.Equal(t, int64(2), distance(g, 4))
		require.Equal(t, int64(UNREACHABLE), distance(g, 5))
		require.Equal(t, int64(UNREACHABLE), distance(g, 6))
		require.Equal(t, 3, stats.Supersteps)
	}
}

func TestUndirected(t *testing.T) {
	g, _ := run(t, false, 1, [][2]graph.RawType{{1, 2}, {2, 3}, {3, 4}, {1, 3}, {5, 1}}, 6)
	require.Equal(t, int64(1), distance(g, 5))
	require.Equal(t, int64(2), distance(g, 4))
	require.Equal(t, int64(UNREACHABLE), distance(g, 6))
}

func TestMissingSource(t *testing.T) {
	g, stats := run(t, true, 99, [][2]graph.RawType{{1, 2}})
	require.Equal(t, 0, stats.Supersteps)
	require.Equal(t, int64(UNREACHABLE), distance(g, 1))
	require.Equal(t, "9223372036854775807", new(BFS).Result(g.NodeVertexPropertyFromRaw(2)))
}

func TestRandomGraphs(t *testing.T) {
	for tCount := 0; tCount < 10; tCount++ {
		edges := make([][2]graph.RawType, 0, 100)
		for i := 0; i < 100; i++ {
			edges = append(edges, [2]graph.RawType{graph.AsRawType(rand.Intn(50)), graph.AsRawType(rand.Intn(50))})
		}
		// Correctness is checked after the run; a failed check fails it.
		run(t, tCount%2 == 0, edges[0][0], edges)
	}
}
