package lcc

import (
	"github.com/ScottSallinen/lollipop-gas/graph"
	"github.com/ScottSallinen/lollipop-gas/utils"
)

// Local clustering coefficient, in two supersteps.
// Superstep 0 collects each vertex's neighbour multiset, then counts triangles per out-edge and credits the endpoints.
// Superstep 1 computes coef = t / (d * (d - 1)), for t triangle credits and d distinct neighbours.
// With fewer than two neighbours the ratio is undefined, and the result is NaN.
type LCC struct{}

type Neighbours = utils.Multiset[graph.RawType]

type VertexProperty struct {
	Neighbours Neighbours
	Coef       float64
}

// Triangle credits; merged by sum.
type Mail uint64

func (*LCC) GatherEdges(rc graph.RunContext, _ graph.VertexRef[VertexProperty]) graph.EdgeDir {
	if rc.Superstep == 0 {
		return graph.ALL_EDGES
	}
	return graph.NO_EDGES
}

// A self loop is seen from both ends, so it counts twice.
func (*LCC) Gather(_ graph.RunContext, v graph.VertexRef[VertexProperty], e graph.EdgeRef[VertexProperty]) Neighbours {
	return utils.NewSingleton(e.Other(v.Id).Raw)
}

func (*LCC) GatherMerge(incoming Neighbours, existing *Neighbours) {
	graph.Union[graph.RawType]{}.Merge(incoming, existing)
}

func (*LCC) Apply(c *graph.Context[VertexProperty, Mail], v graph.VertexRef[VertexProperty], neighbours Neighbours, mail graph.Mail[Mail]) {
	if c.Superstep == 0 {
		v.Prop.Neighbours = neighbours
		// Every vertex must reach the second superstep, credited or not.
		c.Activate(v.Id)
		return
	}
	d := float64(v.Prop.Neighbours.Len())
	t := float64(0)
	if mail.Delivered {
		t = float64(mail.Value)
	}
	v.Prop.Coef = t / (d * (d - 1.0))
}

func (*LCC) ScatterEdges(rc graph.RunContext, _ graph.VertexRef[VertexProperty]) graph.EdgeDir {
	if rc.Superstep == 0 {
		return graph.OUT_EDGES
	}
	return graph.NO_EDGES
}

func (*LCC) Scatter(c *graph.Context[VertexProperty, Mail], _ graph.VertexRef[VertexProperty], e graph.EdgeRef[VertexProperty]) {
	if c.Superstep != 0 {
		return
	}
	toSource, toTarget := countTriangles(&e.Source, &e.Target, c.Directed)
	if toSource > 0 {
		c.Signal(e.Source.Id, Mail(toSource))
	}
	if toTarget > 0 {
		c.Signal(e.Target.Id, Mail(toTarget))
	}
}

func (*LCC) MessageMerge(incoming Mail, existing *Mail) {
	*existing += incoming
}

func (*LCC) Result(prop *VertexProperty) string {
	return graph.FormatFloat(prop.Coef)
}

// Triangle credits for the endpoints of the edge a -> b, from their common neighbours c.
// A common neighbour c credits a when c is larger than b, and credits b when c is larger than a.
// Undirected, a triangle is worth 2 to each vertex; directed, each common neighbour counts with its multiplicity.
// When a and b are linked more than once (reciprocal edges), only the edge from the larger id counts.
func countTriangles(a, b *graph.VertexRef[VertexProperty], directed bool) (aCount uint64, bCount uint64) {
	aAdj, bAdj := &a.Prop.Neighbours, &b.Prop.Neighbours
	if aAdj.Count(b.Raw) > 1 && a.Raw < b.Raw {
		return 0, 0
	}
	// Iterate over the smaller set.
	if aAdj.Len() > bAdj.Len() {
		bCount, aCount = countTriangles(b, a, directed)
		return aCount, bCount
	}
	aAdj.Range(func(c graph.RawType, aMult uint32) {
		bMult := bAdj.Count(c)
		if bMult == 0 {
			return
		}
		if b.Raw < c {
			if directed {
				aCount += uint64(bMult)
			} else {
				aCount += 2
			}
		}
		if a.Raw < c {
			if directed {
				bCount += uint64(aMult)
			} else {
				bCount += 2
			}
		}
	})
	return aCount, bCount
}
