package lcc

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ScottSallinen/lollipop-gas/graph"
	"github.com/ScottSallinen/lollipop-gas/utils"
)

func run(t *testing.T, directed bool, edges [][2]graph.RawType, vertices ...graph.RawType) (*graph.Graph[VertexProperty, Mail], graph.RunStats) {
	t.Helper()
	options := graph.GraphOptions{NumThreads: uint32(rand.Intn(8-1) + 1), Directed: directed, CheckCorrectness: true}
	g, err := graph.BuildGraph[VertexProperty, Mail](options, edges, vertices...)
	require.NoError(t, err)
	stats, err := graph.Run[VertexProperty, Neighbours, Mail](new(LCC), g)
	require.NoError(t, err)
	return g, stats
}

func coef(g *graph.Graph[VertexProperty, Mail], raw graph.RawType) float64 {
	return g.NodeVertexPropertyFromRaw(raw).Coef
}

func neighbours(pairs ...uint32) Neighbours {
	var n Neighbours
	for i := 0; i+1 < len(pairs); i += 2 {
		n.Add(graph.RawType(pairs[i]), pairs[i+1])
	}
	return n
}

func ref(raw graph.RawType, n Neighbours) *graph.VertexRef[VertexProperty] {
	return &graph.VertexRef[VertexProperty]{Raw: raw, Prop: &VertexProperty{Neighbours: n}}
}

func TestUndirectedTriangle(t *testing.T) {
	for tCount := 0; tCount < 10; tCount++ {
		g, stats := run(t, false, [][2]graph.RawType{{1, 2}, {2, 3}, {1, 3}})
		require.Equal(t, 2, stats.Supersteps)
		for raw := graph.RawType(1); raw <= 3; raw++ {
			require.Equal(t, 1.0, coef(g, raw))
		}
	}
}

func TestPathHasNoTriangles(t *testing.T) {
	g, stats := run(t, false, [][2]graph.RawType{{1, 2}, {2, 3}}, 4)
	require.Equal(t, 2, stats.Supersteps)
	require.Equal(t, 0.0, coef(g, 2))
	require.True(t, math.IsNaN(coef(g, 1)))
	require.True(t, math.IsNaN(coef(g, 3)))
	require.True(t, math.IsNaN(coef(g, 4)))
}

func TestDirectedCycle(t *testing.T) {
	g, _ := run(t, true, [][2]graph.RawType{{1, 2}, {2, 3}, {3, 1}})
	for raw := graph.RawType(1); raw <= 3; raw++ {
		require.Equal(t, 0.5, coef(g, raw))
	}
}

func TestReciprocalEdgesCountOnce(t *testing.T) {
	// 1 <-> 2, 1 -> 3, 2 -> 3.
	g, _ := run(t, true, [][2]graph.RawType{{1, 2}, {2, 1}, {1, 3}, {2, 3}})
	require.Equal(t, 0.5, coef(g, 1))
	require.Equal(t, 0.5, coef(g, 2))
	require.Equal(t, 1.0, coef(g, 3))
}

func TestSquareWithDiagonal(t *testing.T) {
	// 0 - 1 - 2 - 3 - 0, plus 0 - 2: two triangles sharing the diagonal.
	g, _ := run(t, false, [][2]graph.RawType{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {0, 2}})
	require.InDelta(t, 2.0/3.0, coef(g, 0), 1e-12)
	require.InDelta(t, 2.0/3.0, coef(g, 2), 1e-12)
	require.Equal(t, 1.0, coef(g, 1))
	require.Equal(t, 1.0, coef(g, 3))
}

func TestRandomGraphsMatchOracle(t *testing.T) {
	for _, directed := range []bool{false, true} {
		for tCount := 0; tCount < 5; tCount++ {
			seen := make(map[[2]graph.RawType]bool)
			edges := [][2]graph.RawType{}
			for len(edges) < 80 {
				a, b := graph.AsRawType(rand.Intn(25)), graph.AsRawType(rand.Intn(25))
				if a == b || seen[[2]graph.RawType{a, b}] || seen[[2]graph.RawType{b, a}] {
					continue
				}
				seen[[2]graph.RawType{a, b}] = true
				edges = append(edges, [2]graph.RawType{a, b})
			}
			// The check compares against the brute force oracle, and fails the run on a mismatch.
			g, _ := run(t, directed, edges)
			require.True(t, isSimple(g))
		}
	}
}

func TestCountTriangles(t *testing.T) {
	// Undirected triangle 1, 2, 3, on the edge 1 -> 2.
	a := ref(1, neighbours(2, 1, 3, 1))
	b := ref(2, neighbours(1, 1, 3, 1))
	aCount, bCount := countTriangles(a, b, false)
	require.Equal(t, uint64(2), aCount)
	require.Equal(t, uint64(2), bCount)

	// Directed counts use the multiplicity of the common neighbour.
	a = ref(1, neighbours(2, 1, 3, 2))
	b = ref(2, neighbours(1, 1, 3, 3))
	aCount, bCount = countTriangles(a, b, true)
	require.Equal(t, uint64(3), aCount)
	require.Equal(t, uint64(2), bCount)

	// Common neighbour smaller than both: no credit.
	a = ref(5, neighbours(6, 1, 1, 1))
	b = ref(6, neighbours(5, 1, 1, 1))
	aCount, bCount = countTriangles(a, b, false)
	require.Zero(t, aCount)
	require.Zero(t, bCount)

	// Linked twice, from the smaller id: skipped.
	a = ref(1, neighbours(2, 2, 3, 1))
	b = ref(2, neighbours(1, 2, 3, 1))
	aCount, bCount = countTriangles(a, b, true)
	require.Zero(t, aCount)
	require.Zero(t, bCount)
	// The same pair from the larger id counts.
	bCount, aCount = countTriangles(b, a, true)
	require.Equal(t, uint64(1), aCount)
	require.Equal(t, uint64(1), bCount)
}

func TestCountTrianglesSymmetricUnderSwap(t *testing.T) {
	// The larger set is swapped to the inside, and the result is reversed back.
	a := ref(1, neighbours(2, 1, 3, 1, 4, 1, 5, 1))
	b := ref(2, neighbours(1, 1, 3, 1))
	aCount, bCount := countTriangles(a, b, false)
	require.Equal(t, uint64(2), aCount)
	require.Equal(t, uint64(2), bCount)
}

func TestNeighbourMultiset(t *testing.T) {
	g, _ := run(t, false, [][2]graph.RawType{{1, 2}, {2, 1}, {1, 1}, {1, 3}})
	n := g.NodeVertexPropertyFromRaw(1).Neighbours
	require.Equal(t, uint32(2), n.Count(2))
	require.Equal(t, uint32(2), n.Count(1)) // A self loop is seen from both ends.
	require.Equal(t, uint32(1), n.Count(3))
	require.Equal(t, 3, n.Len())
	require.Equal(t, utils.MultisetMany, n.Kind())
}
