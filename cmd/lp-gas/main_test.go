package main

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ScottSallinen/lollipop-gas/graph"
)

var baseOptions = graph.GraphOptions{
	Name:             "../../data/test.txt",
	DampingFactor:    0.85,
	MaxIterations:    10,
	SourceVertex:     1,
	CheckCorrectness: true,
}

func TestResolveAlgorithm(t *testing.T) {
	expect := map[string]string{
		"bfs":                          "bfs",
		"conn":                         "connected-components",
		"WCC":                          "connected-components",
		"connected-components":         "connected-components",
		"pr":                           "pagerank",
		" pagerank ":                   "pagerank",
		"cd":                           "community-detection",
		"cdlp":                         "community-detection",
		"lcc":                          "local-clustering-coefficient",
		"local-clustering-coefficient": "local-clustering-coefficient",
	}
	for given, canonical := range expect {
		name, launch, err := resolveAlgorithm(given)
		require.NoError(t, err, given)
		require.Equal(t, canonical, name)
		require.NotNil(t, launch)
	}
	for _, bad := range []string{"", "sssp", "page-rank"} {
		_, _, err := resolveAlgorithm(bad)
		require.ErrorIs(t, err, graph.ErrConfiguration, bad)
	}
}

func TestRunEveryAlgorithm(t *testing.T) {
	for name := range algorithms {
		for _, directed := range []bool{true, false} {
			options := baseOptions
			options.Algorithm = name
			options.Directed = directed
			options.NumThreads = uint32(rand.Intn(8-1) + 1)
			options.OutputFile = filepath.Join(t.TempDir(), "out", name+".txt")
			require.NoError(t, run(options), name)

			data, err := os.ReadFile(options.OutputFile)
			require.NoError(t, err)
			lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
			require.Len(t, lines, 7, name) // Vertices 0 to 6.
			for _, line := range lines {
				require.Len(t, strings.Fields(line), 2, line)
			}
		}
	}
}

func TestRunCSV(t *testing.T) {
	options := baseOptions
	options.Name = "../../data/test.csv"
	options.Algorithm = "lcc"
	options.NumThreads = 2
	options.OutputFile = filepath.Join(t.TempDir(), "lcc.txt")
	require.NoError(t, run(options))

	data, err := os.ReadFile(options.OutputFile)
	require.NoError(t, err)
	require.Contains(t, strings.Split(string(data), "\n"), "1 1")
}

func TestRunErrors(t *testing.T) {
	options := baseOptions
	options.NumThreads = 1
	options.Algorithm = "nope"
	require.ErrorIs(t, run(options), graph.ErrConfiguration)

	options.Algorithm = "pr"
	options.Name = "../../data/does-not-exist.txt"
	require.ErrorIs(t, run(options), graph.ErrLoad)
}
