package graph

// Out-edge, stored on the source's graph thread.
type Edge struct {
	Didx uint32 // Internal id of the target.
}

// In-edge, stored on the target's graph thread.
type InEdge struct {
	Sidx uint32 // Internal id of the source.
}

// Which incident edges a gather or scatter visits.
type EdgeDir uint8

const (
	NO_EDGES  EdgeDir = iota
	IN_EDGES          // Edges where the vertex is the target.
	OUT_EDGES         // Edges where the vertex is the source.
	ALL_EDGES         // Both; a self loop is visited once as an in-edge and once as an out-edge.
)

func (d EdgeDir) String() string {
	switch d {
	case NO_EDGES:
		return "none"
	case IN_EDGES:
		return "in"
	case OUT_EDGES:
		return "out"
	case ALL_EDGES:
		return "all"
	}
	return "unknown"
}

// A view of a vertex handed to algorithm callbacks.
// Prop is only writable for the vertex being applied; neighbour references point at owner state or a mirror and are read-only.
type VertexRef[V any] struct {
	Id     uint32  // Internal id.
	Raw    RawType // Raw (external) id.
	Prop   *V
	NumOut uint32 // Out-degree.
	NumIn  uint32 // In-degree.
}

// A view of an edge, with both endpoints.
type EdgeRef[V any] struct {
	Source VertexRef[V]
	Target VertexRef[V]
}

// The endpoint that is not the given vertex. For a self loop this is the vertex itself.
func (e *EdgeRef[V]) Other(internalId uint32) *VertexRef[V] {
	if e.Source.Id == internalId {
		return &e.Target
	}
	return &e.Source
}

// Visits the edges of an owned vertex in the given direction: in-edges first, then out-edges.
func (gt *GraphThread[V, M]) forEachEdge(self VertexRef[V], dir EdgeDir, fn func(e *EdgeRef[V])) {
	if dir == NO_EDGES {
		return
	}
	vertex := gt.Vertex(self.Id)
	var e EdgeRef[V]
	if dir == IN_EDGES || dir == ALL_EDGES {
		for i := range vertex.InEdges {
			e.Source = gt.neighbourRef(vertex.InEdges[i].Sidx)
			e.Target = self
			fn(&e)
		}
	}
	if dir == OUT_EDGES || dir == ALL_EDGES {
		for i := range vertex.OutEdges {
			e.Source = self
			e.Target = gt.neighbourRef(vertex.OutEdges[i].Didx)
			fn(&e)
		}
	}
}
