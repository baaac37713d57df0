package graph

import "fmt"

// Most vertices a single graph thread can own: the thread-local offset of an internal id has THREAD_SHIFT bits.
var maxThreadVertices = THREAD_MASK + 1

// Chooses the graph thread that owns a raw id. Deterministic across executions for the same thread count.
func (g *Graph[V, M]) FindVertexPlacement(rawId RawType) (tidx uint32) {
	return rawId.Within(g.NumThreads)
}

func (g *Graph[V, M]) addMapping(tidx uint32, rawId RawType) (internalId uint32, err error) {
	gt := &g.GraphThreads[tidx]
	if len(gt.Vertices) >= maxThreadVertices {
		return 0, fmt.Errorf("%w: vertex %d: graph thread %d is full (%d vertices), use more threads",
			ErrLoad, rawId, tidx, maxThreadVertices)
	}
	internalId = InternalCompress(tidx, uint32(len(gt.Vertices)))
	gt.Vertices = append(gt.Vertices, Vertex{})
	gt.VertexStructures = append(gt.VertexStructures, VertexStructure{RawId: rawId})
	g.VertexMap[rawId] = internalId
	return internalId, nil
}
