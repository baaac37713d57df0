package graph

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func emptyGraph(threads uint32) *Graph[int, int] {
	g := new(Graph[int, int])
	g.Options = GraphOptions{NumThreads: threads}
	g.Init()
	return g
}

func requireEdge(t *testing.T, g *Graph[int, int], src, dst RawType) {
	t.Helper()
	_, vertex := g.NodeVertexFromRaw(src)
	require.NotNil(t, vertex)
	for _, e := range vertex.OutEdges {
		if g.NodeVertexRawID(e.Didx) == dst {
			return
		}
	}
	require.Fail(t, "missing edge", "%d -> %d", src, dst)
}

func TestLoadSnap(t *testing.T) {
	input := "# Directed graph\n% another comment\n\n1 2\n2\t3 0.5\r\n  3 1  \n4 4\n5 6"
	g := emptyGraph(randomThreads())
	require.NoError(t, LoadEdges(g, strings.NewReader(input), FORMAT_SNAP))
	require.NoError(t, g.Finalize())

	require.Equal(t, uint64(5), g.NumEdges)
	require.Equal(t, 6, g.NodeVertexCount())
	requireEdge(t, g, 1, 2)
	requireEdge(t, g, 2, 3)
	requireEdge(t, g, 3, 1)
	requireEdge(t, g, 4, 4)
	requireEdge(t, g, 5, 6)
}

func TestLoadSnapErrors(t *testing.T) {
	for _, input := range []string{"1 2\n3\n", "1 x\n", "-1 2\n", "1 2\n2 18446744073709551616\n"} {
		g := emptyGraph(1)
		require.ErrorIs(t, LoadEdges(g, strings.NewReader(input), FORMAT_SNAP), ErrLoad, input)
	}
	g := emptyGraph(1)
	require.ErrorIs(t, LoadEdges(g, strings.NewReader("1 2\n"), "xml"), ErrConfiguration)
}

func TestLoadCSV(t *testing.T) {
	input := "src,dst,weight\n1,2,0.5\n# comment\n2, 3\n3,1\n"
	g := emptyGraph(randomThreads())
	require.NoError(t, LoadEdges(g, strings.NewReader(input), FORMAT_CSV))
	require.Equal(t, uint64(3), g.NumEdges)
	require.Equal(t, 3, g.NodeVertexCount())
	requireEdge(t, g, 2, 3)

	// Without a header.
	g = emptyGraph(1)
	require.NoError(t, LoadEdges(g, strings.NewReader("7,8\n"), FORMAT_CSV))
	require.Equal(t, uint64(1), g.NumEdges)

	// A bad row past the first is an error.
	g = emptyGraph(1)
	require.ErrorIs(t, LoadEdges(g, strings.NewReader("1,2\na,b\n"), FORMAT_CSV), ErrLoad)
	g = emptyGraph(1)
	require.ErrorIs(t, LoadEdges(g, strings.NewReader("1,2\n3\n"), FORMAT_CSV), ErrLoad)
}

func TestLoadGraphWithVertexFile(t *testing.T) {
	dir := t.TempDir()
	edges := filepath.Join(dir, "edges.txt")
	vertices := filepath.Join(dir, "vertices.txt")
	require.NoError(t, os.WriteFile(edges, []byte("1 2\n2 3\n"), 0o644))
	require.NoError(t, os.WriteFile(vertices, []byte("1\n9\n10 extra\n"), 0o644))

	g := new(Graph[int, int])
	g.Options = GraphOptions{Name: edges, VertexFile: vertices, NumThreads: randomThreads()}
	g.Init()
	require.NoError(t, LoadGraph(g))
	require.True(t, g.Finalized())
	require.Equal(t, 5, g.NodeVertexCount())
	_, isolated := g.NodeVertexFromRaw(9)
	require.NotNil(t, isolated)
	require.Empty(t, isolated.OutEdges)
	require.Empty(t, isolated.InEdges)
}

func TestLoadGraphErrors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("# nothing here\n"), 0o644))

	for _, name := range []string{empty, filepath.Join(dir, "missing.txt")} {
		g := new(Graph[int, int])
		g.Options = GraphOptions{Name: name, NumThreads: 1}
		g.Init()
		require.ErrorIs(t, LoadGraph(g), ErrLoad, name)
	}

	badVertices := filepath.Join(dir, "vertices.txt")
	require.NoError(t, os.WriteFile(badVertices, []byte("1\nv2\n"), 0o644))
	g := new(Graph[int, int])
	g.Options = GraphOptions{Name: empty, VertexFile: badVertices, NumThreads: 1}
	g.Init()
	require.ErrorIs(t, LoadGraph(g), ErrLoad)
}
