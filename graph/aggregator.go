package graph

import (
	"maps"

	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/lollipop-gas/utils"
)

// A named global reduction over all vertices. Map runs per vertex, Combine merges (defaults to a sum),
// and Finalize (optional) post-processes the total. The result is visible to apply from the following superstep.
type Aggregator[V any] struct {
	Name     string
	Map      func(rc RunContext, v VertexRef[V]) float64
	Combine  Reducer[float64]
	Finalize func(rc RunContext, total float64) float64
	Now      bool // Compute once before superstep 0.
	Every    int  // Compute after every k-th superstep. Zero disables.
}

func (a *Aggregator[V]) dueAfter(superstep int) bool {
	return a.Every > 0 && (superstep+1)%a.Every == 0
}

// Computes the aggregator over the graph. Each thread reduces its own vertices; partials are combined in thread order.
func computeAggregate[V any, M any](a *Aggregator[V], g *Graph[V, M], rc RunContext) (float64, error) {
	var combine Reducer[float64] = Sum[float64]{}
	if a.Combine != nil {
		combine = a.Combine
	}
	partials := make([]float64, g.NumThreads)
	present := make([]bool, g.NumThreads)
	_, err := g.NodeParallelFor(func(_, _ uint32, gt *GraphThread[V, M]) int {
		for i := uint32(0); i < uint32(len(gt.Vertices)); i++ {
			val := a.Map(rc, gt.ownedRef(i))
			if present[gt.Tidx] {
				combine.Merge(val, &partials[gt.Tidx])
			} else {
				partials[gt.Tidx] = val
				present[gt.Tidx] = true
			}
		}
		return 0
	})
	if err != nil {
		return 0, err
	}
	total, _ := Reduce(combine, compactPartials(partials, present))
	if a.Finalize != nil {
		total = a.Finalize(rc, total)
	}
	return total, nil
}

func compactPartials(partials []float64, present []bool) []float64 {
	out := partials[:0]
	for t := range partials {
		if present[t] {
			out = append(out, partials[t])
		}
	}
	return out
}

// Runs the selected aggregators and commits their results into a new snapshot.
func runAggregators[V any, M any](g *Graph[V, M], aggs []Aggregator[V], rc RunContext, selected func(a *Aggregator[V]) bool) (RunContext, error) {
	var committed map[string]float64
	for i := range aggs {
		if !selected(&aggs[i]) {
			continue
		}
		val, err := computeAggregate(&aggs[i], g, rc)
		if err != nil {
			return rc, err
		}
		if committed == nil {
			committed = maps.Clone(rc.aggregates)
			if committed == nil {
				committed = map[string]float64{}
			}
		}
		committed[aggs[i].Name] = val
		log.Trace().Msg("Aggregator " + aggs[i].Name + " after superstep " + utils.V(rc.Superstep) + ": " + utils.V(val))
	}
	if committed != nil {
		rc.aggregates = committed
	}
	return rc, nil
}
