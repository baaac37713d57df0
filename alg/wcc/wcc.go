package wcc

import (
	"github.com/ScottSallinen/lollipop-gas/graph"
)

// Weakly connected components by minimum label propagation. Edge direction is ignored.
// Every vertex ends labelled with the smallest raw id in its component.
type WCC struct{}

type VertexProperty struct {
	Label   graph.RawType
	Changed bool // Whether apply changed the label this superstep; decides if scatter runs.
}

// A candidate label; merged by minimum.
type Mail graph.RawType

// Every vertex starts active with no mail: the first apply takes its own id as its label.
func (*WCC) GatherEdges(graph.RunContext, graph.VertexRef[VertexProperty]) graph.EdgeDir {
	return graph.NO_EDGES
}

func (*WCC) Gather(graph.RunContext, graph.VertexRef[VertexProperty], graph.EdgeRef[VertexProperty]) struct{} {
	return struct{}{}
}

func (*WCC) GatherMerge(struct{}, *struct{}) {}

func (*WCC) Apply(c *graph.Context[VertexProperty, Mail], v graph.VertexRef[VertexProperty], _ struct{}, mail graph.Mail[Mail]) {
	switch {
	case !mail.Delivered:
		v.Prop.Label = v.Raw
		v.Prop.Changed = true
	case graph.RawType(mail.Value) < v.Prop.Label:
		v.Prop.Label = graph.RawType(mail.Value)
		v.Prop.Changed = true
	default:
		v.Prop.Changed = false
	}
}

func (*WCC) ScatterEdges(_ graph.RunContext, v graph.VertexRef[VertexProperty]) graph.EdgeDir {
	if v.Prop.Changed {
		return graph.ALL_EDGES
	}
	return graph.NO_EDGES
}

// Only a strictly smaller label is worth sending.
func (*WCC) Scatter(c *graph.Context[VertexProperty, Mail], v graph.VertexRef[VertexProperty], e graph.EdgeRef[VertexProperty]) {
	other := e.Other(v.Id)
	if v.Prop.Label < other.Prop.Label {
		c.Signal(other.Id, Mail(v.Prop.Label))
	}
}

func (*WCC) MessageMerge(incoming Mail, existing *Mail) {
	graph.Min[Mail]{}.Merge(incoming, existing)
}

func (*WCC) Result(prop *VertexProperty) string {
	return prop.Label.String()
}
