package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ScottSallinen/lollipop-gas/alg/bfs"
	"github.com/ScottSallinen/lollipop-gas/alg/cdlp"
	"github.com/ScottSallinen/lollipop-gas/alg/lcc"
	"github.com/ScottSallinen/lollipop-gas/alg/pagerank"
	"github.com/ScottSallinen/lollipop-gas/alg/wcc"
	"github.com/ScottSallinen/lollipop-gas/cmd/common"
	"github.com/ScottSallinen/lollipop-gas/graph"
)

// Runs one algorithm end to end with the given options.
type launcher func(options graph.GraphOptions) error

var algorithms = map[string]launcher{
	"bfs": func(o graph.GraphOptions) error {
		return common.Launch[bfs.VertexProperty, struct{}, bfs.Mail](new(bfs.BFS), o)
	},
	"connected-components": func(o graph.GraphOptions) error {
		return common.Launch[wcc.VertexProperty, struct{}, wcc.Mail](new(wcc.WCC), o)
	},
	"pagerank": func(o graph.GraphOptions) error {
		return common.Launch[pagerank.VertexProperty, float64, pagerank.Mail](new(pagerank.PageRank), o)
	},
	"community-detection": func(o graph.GraphOptions) error {
		return common.Launch[cdlp.VertexProperty, cdlp.Labels, cdlp.Mail](new(cdlp.CDLP), o)
	},
	"local-clustering-coefficient": func(o graph.GraphOptions) error {
		return common.Launch[lcc.VertexProperty, lcc.Neighbours, lcc.Mail](new(lcc.LCC), o)
	},
}

var aliases = map[string]string{
	"conn": "connected-components",
	"wcc":  "connected-components",
	"pr":   "pagerank",
	"cd":   "community-detection",
	"cdlp": "community-detection",
	"lcc":  "local-clustering-coefficient",
}

// Resolves an algorithm name or alias (case insensitive) to its canonical name and launcher.
func resolveAlgorithm(name string) (string, launcher, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	if launch, ok := algorithms[name]; ok {
		return name, launch, nil
	}
	if name == "" {
		return "", nil, fmt.Errorf("%w: no algorithm given, expected one of %s", graph.ErrConfiguration, algorithmNames())
	}
	return "", nil, fmt.Errorf("%w: unknown algorithm %q, expected one of %s", graph.ErrConfiguration, name, algorithmNames())
}

func algorithmNames() string {
	names := make([]string, 0, len(algorithms)+len(aliases))
	for name := range algorithms {
		names = append(names, name)
	}
	for alias := range aliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
