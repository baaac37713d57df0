package wcc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ScottSallinen/lollipop-gas/graph"
)

func run(t *testing.T, edges [][2]graph.RawType, vertices ...graph.RawType) (*graph.Graph[VertexProperty, Mail], graph.RunStats) {
	t.Helper()
	options := graph.GraphOptions{NumThreads: uint32(rand.Intn(8-1) + 1), CheckCorrectness: true}
	g, err := graph.BuildGraph[VertexProperty, Mail](options, edges, vertices...)
	require.NoError(t, err)
	stats, err := graph.Run[VertexProperty, struct{}, Mail](new(WCC), g)
	require.NoError(t, err)
	return g, stats
}

func label(g *graph.Graph[VertexProperty, Mail], raw graph.RawType) graph.RawType {
	return g.NodeVertexPropertyFromRaw(raw).Label
}

// Expect two connected components.
func TestMultipleComponentsFromFile(t *testing.T) {
	expectations := []graph.RawType{0, 1, 1, 0, 1, 1, 1, 0, 0, 0}
	for tCount := 0; tCount < 10; tCount++ {
		options := graph.GraphOptions{
			Name:             "../../data/test_multiple_components.txt",
			NumThreads:       uint32(rand.Intn(8-1) + 1),
			CheckCorrectness: true,
		}
		g, _, err := graph.LaunchGraphExecution[VertexProperty, struct{}, Mail](new(WCC), options)
		require.NoError(t, err)
		for raw, expect := range expectations {
			require.Equal(t, expect, label(g, graph.AsRawType(raw)), "vertex %d", raw)
		}
	}
}

func TestIsolatedVertexSingleSuperstep(t *testing.T) {
	g, stats := run(t, nil, 42)
	require.Equal(t, 1, stats.Supersteps)
	require.Equal(t, uint64(0), stats.Messages)
	require.Equal(t, graph.RawType(42), label(g, 42))
}

func TestDirectionIgnored(t *testing.T) {
	// 5 -> 9 <- 2: the minimum travels against edge direction too.
	g, _ := run(t, [][2]graph.RawType{{5, 9}, {2, 9}, {7, 7}}, 100)
	require.Equal(t, graph.RawType(2), label(g, 5))
	require.Equal(t, graph.RawType(2), label(g, 9))
	require.Equal(t, graph.RawType(2), label(g, 2))
	require.Equal(t, graph.RawType(7), label(g, 7))
	require.Equal(t, graph.RawType(100), label(g, 100))
}

func TestPathConvergesInDiameterSupersteps(t *testing.T) {
	// 0 - 1 - 2 - 3 - 4: after the first superstep, the label of 0 needs four more to reach 4.
	g, stats := run(t, [][2]graph.RawType{{3, 4}, {2, 3}, {1, 2}, {0, 1}})
	require.Equal(t, 5, stats.Supersteps)
	for raw := graph.RawType(0); raw < 5; raw++ {
		require.Equal(t, graph.RawType(0), label(g, raw))
	}
}

func TestRandomGraphsMatchOracle(t *testing.T) {
	for tCount := 0; tCount < 10; tCount++ {
		edges := make([][2]graph.RawType, 0, 60)
		for i := 0; i < 60; i++ {
			edges = append(edges, [2]graph.RawType{graph.AsRawType(rand.Intn(100)), graph.AsRawType(rand.Intn(100))})
		}
		g, _ := run(t, edges)
		oracle := OracleLabels(g)
		require.Len(t, oracle, g.NodeVertexCount())
		for raw, expect := range oracle {
			require.Equal(t, expect, label(g, raw))
		}
	}
}

func TestMailMergeIsMinimum(t *testing.T) {
	existing := Mail(9)
	new(WCC).MessageMerge(4, &existing)
	new(WCC).MessageMerge(6, &existing)
	require.Equal(t, Mail(4), existing)
}

func TestComponentSizesLargestFirst(t *testing.T) {
	g, _ := run(t, [][2]graph.RawType{{7, 8}, {8, 9}, {1, 2}}, 5, 3)
	labels, sizes := ComponentSizes(g)
	require.Equal(t, []graph.RawType{7, 1, 3, 5}, labels)
	require.Equal(t, []int{3, 2, 1, 1}, sizes)
}
