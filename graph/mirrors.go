package graph

// A read-only replica of a vertex owned by another graph thread, held by a thread with an edge to it.
// Structure is copied once at finalize; Prop is refreshed from the owner after every apply phase.
// The refresh is a shallow copy: apply should replace reference-typed payload fields rather than mutate them in place.
type Mirror[V any] struct {
	Id     uint32
	RawId  RawType
	NumOut uint32
	NumIn  uint32
	Prop   V
}

// Creates mirrors for every remote endpoint of this thread's edges. Returns the number of mirrors.
func (gt *GraphThread[V, M]) buildMirrors(g *Graph[V, M]) int {
	gt.Mirrors = gt.Mirrors[:0]
	for k := range gt.MirrorIndex {
		delete(gt.MirrorIndex, k)
	}
	add := func(internalId uint32) {
		if SameTidx(internalId, gt.Tidx<<THREAD_SHIFT) {
			return
		}
		if _, ok := gt.MirrorIndex[internalId]; ok {
			return
		}
		idx, tidx := InternalExpand(internalId)
		owner := &g.GraphThreads[tidx]
		gt.MirrorIndex[internalId] = uint32(len(gt.Mirrors))
		gt.Mirrors = append(gt.Mirrors, Mirror[V]{
			Id:     internalId,
			RawId:  owner.VertexStructures[idx].RawId,
			NumOut: uint32(len(owner.Vertices[idx].OutEdges)),
			NumIn:  uint32(len(owner.Vertices[idx].InEdges)),
		})
	}
	for i := range gt.Vertices {
		for _, e := range gt.Vertices[i].OutEdges {
			add(e.Didx)
		}
		for _, e := range gt.Vertices[i].InEdges {
			add(e.Sidx)
		}
	}
	return len(gt.Mirrors)
}

// Refreshes mirror payloads from their owners. Must run after the apply barrier, when no owner is writing.
func (gt *GraphThread[V, M]) syncMirrors(g *Graph[V, M]) int {
	for i := range gt.Mirrors {
		gt.Mirrors[i].Prop = *g.NodeVertexProperty(gt.Mirrors[i].Id)
	}
	return len(gt.Mirrors)
}
