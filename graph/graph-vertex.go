package graph

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Defines a vertex in a graph: its topology. Owned by one graph thread and immutable once finalized.
type Vertex struct {
	OutEdges []Edge   // Edges where this vertex is the source.
	InEdges  []InEdge // Edges where this vertex is the target.
}

// Vertex structural properties. Handled and used by the construction process.
type VertexStructure struct {
	RawId RawType // Raw (external) ID of the vertex. Constant across executions; the internal ID a thread chooses is not.
}

// Mailbox for a vertex. Holds mail merged from all signals received in the previous superstep.
// Data here is ephemeral.
type VertexMailbox[M any] struct {
	Inbox Mail[M]
}

// An optional message slot. Delivered is false when no signal carried a payload (including pure activations).
type Mail[M any] struct {
	Value     M
	Delivered bool
}

// Helper to build delivered mail.
func Deliver[M any](value M) Mail[M] {
	return Mail[M]{Value: value, Delivered: true}
}

// Builds an internal id from a graph thread index and a thread-local offset.
func InternalCompress(tidx uint32, idx uint32) uint32 {
	return (tidx << THREAD_SHIFT) | idx
}

// Expands an internal index into the thread-local index, and the responsible thread id.
func InternalExpand(internalId uint32) (idx, tidx uint32) {
	idx = internalId & THREAD_MASK
	tidx = internalId >> THREAD_SHIFT
	return idx, tidx
}

// Checks if two internal IDs are on the same graph thread.
func SameTidx(internalId uint32, otherInternalId uint32) bool {
	return (internalId & THREAD_ID_MASK) == (otherInternalId & THREAD_ID_MASK)
}

// ------------------ Thread level functions ------------------ //

// Wrapper for getting a vertex; okay to provide a vidx or just the thread-local offset.
func (gt *GraphThread[V, M]) Vertex(internalOrOffset uint32) *Vertex {
	return &gt.Vertices[(internalOrOffset & THREAD_MASK)]
}

func (gt *GraphThread[V, M]) VertexProperty(internalOrOffset uint32) *V {
	return &gt.VertexProperties[(internalOrOffset & THREAD_MASK)]
}

// Wrapper for getting a vertex mailbox; okay to provide a vidx or just the thread-local offset.
func (gt *GraphThread[V, M]) VertexMailbox(internalOrOffset uint32) *VertexMailbox[M] {
	return &gt.VertexMailboxes[(internalOrOffset & THREAD_MASK)]
}

// Wrapper for getting a vertex raw ID; okay to provide a vidx or just the thread-local offset.
func (gt *GraphThread[V, M]) VertexRawID(internalOrOffset uint32) RawType {
	return gt.VertexStructures[(internalOrOffset & THREAD_MASK)].RawId
}

// A reference to a vertex this thread owns.
func (gt *GraphThread[V, M]) ownedRef(offset uint32) VertexRef[V] {
	v := &gt.Vertices[offset]
	return VertexRef[V]{
		Id:     InternalCompress(gt.Tidx, offset),
		Raw:    gt.VertexStructures[offset].RawId,
		Prop:   &gt.VertexProperties[offset],
		NumOut: uint32(len(v.OutEdges)),
		NumIn:  uint32(len(v.InEdges)),
	}
}

// A read-only reference to any neighbour: owned vertices directly, remote ones through their mirror.
func (gt *GraphThread[V, M]) neighbourRef(internalId uint32) VertexRef[V] {
	idx, tidx := InternalExpand(internalId)
	if tidx == gt.Tidx {
		return gt.ownedRef(idx)
	}
	m := &gt.Mirrors[gt.MirrorIndex[internalId]]
	return VertexRef[V]{Id: internalId, Raw: m.RawId, Prop: &m.Prop, NumOut: m.NumOut, NumIn: m.NumIn}
}

// ------------------ Node level functions ------------------ //

// Node level, vertex reference from Raw ID.
func (g *Graph[V, M]) NodeVertexFromRaw(rawId RawType) (uint32, *Vertex) {
	if internalId, ok := g.VertexMap[rawId]; ok {
		return internalId, g.NodeVertex(internalId)
	}
	return 0, nil
}

// Node level, vertex reference from internal index.
func (g *Graph[V, M]) NodeVertex(internalId uint32) *Vertex {
	idx, tidx := InternalExpand(internalId)
	return &g.GraphThreads[tidx].Vertices[idx]
}

func (g *Graph[V, M]) NodeVertexProperty(internalId uint32) *V {
	idx, tidx := InternalExpand(internalId)
	return &g.GraphThreads[tidx].VertexProperties[idx]
}

// Node level, vertex property from a raw id. Returns nil if the vertex does not exist.
func (g *Graph[V, M]) NodeVertexPropertyFromRaw(rawId RawType) *V {
	if internalId, ok := g.VertexMap[rawId]; ok {
		return g.NodeVertexProperty(internalId)
	}
	return nil
}

// Node level, retrieves the raw id for a vertex from a given internal index.
func (g *Graph[V, M]) NodeVertexRawID(internalId uint32) RawType {
	idx, tidx := InternalExpand(internalId)
	return g.GraphThreads[tidx].VertexRawID(idx)
}

// Node level, not thread safe. Should only be used outside of a superstep phase.
func (g *Graph[V, M]) NodeVertexCount() int {
	sum := 0
	for t := 0; t < int(g.NumThreads); t++ {
		sum += len(g.GraphThreads[t].Vertices)
	}
	return sum
}

// Node level, basic iteration over all vertices in the graph, thread by thread.
// Gives an applicator an ordinal index i [0, |V|), the internal index, the vertex, and its property.
func (g *Graph[V, M]) NodeForEachVertex(applicator func(ordinal uint32, internalId uint32, vertex *Vertex, prop *V)) {
	count := uint32(0)
	for tidx := uint32(0); tidx < g.NumThreads; tidx++ {
		gt := &g.GraphThreads[tidx]
		threadOffset := (tidx << THREAD_SHIFT)
		for i := uint32(0); i < uint32(len(gt.Vertices)); i++ {
			var prop *V
			if int(i) < len(gt.VertexProperties) {
				prop = &gt.VertexProperties[i]
			}
			applicator(count, (threadOffset | i), &gt.Vertices[i], prop)
			count++
		}
	}
}

// Node level, performs an applicator function on each graph thread. All threads run in parallel, and this returns
// once all have finished (the barrier).
// Consider i to be in range [0, len(gt.Vertices)) for the graph thread gt.
// The ordinalStart is a start ordinal offset for the graph thread, in range [0, g.NodeVertexCount).
// Use (ordinalStart + i) to index an external array of size NodeVertexCount, and (threadOffset | i) to get the internal index.
// Sums the return values of the applicator function. A panic in any applicator is recovered and returned as an ErrEngine.
func (g *Graph[V, M]) NodeParallelFor(applicator func(ordinalStart uint32, threadOffset uint32, gt *GraphThread[V, M]) (accumulated int)) (accumulator int, err error) {
	results := make([]int, g.NumThreads)
	var eg errgroup.Group
	ordinalStart := uint32(0)
	for t := uint32(0); t < g.NumThreads; t++ {
		tidx, start, gt := t, ordinalStart, &g.GraphThreads[t]
		eg.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: thread %d: %v", ErrEngine, tidx, r)
				}
			}()
			results[tidx] = applicator(start, (tidx << THREAD_SHIFT), gt)
			return nil
		})
		ordinalStart += uint32(len(gt.Vertices))
	}
	if err = eg.Wait(); err != nil {
		return 0, err
	}
	for t := range results {
		accumulator += results[t]
	}
	return accumulator, nil
}
