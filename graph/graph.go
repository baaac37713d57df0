package graph

import (
	"github.com/kelindar/bitmap"
	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/lollipop-gas/utils"
)

// Internal ids pack the owning graph thread into the high bits, and the thread-local offset into the rest.
const THREAD_BITS = 8
const THREAD_SHIFT = 32 - THREAD_BITS
const THREAD_MASK = (1 << THREAD_SHIFT) - 1
const THREAD_ID_MASK = ((1 << THREAD_BITS) - 1) << THREAD_SHIFT
const THREAD_MAX = 1 << THREAD_BITS

// The graph, partitioned into graph threads (workers). Each graph thread exclusively owns a shard of vertices.
// V is the algorithm's vertex payload, M its message type.
type Graph[V any, M any] struct {
	GraphThreads []GraphThread[V, M]
	VertexMap    map[RawType]uint32 // Raw to internal. Only used during construction and for lookups by raw id.
	NumThreads   uint32
	NumEdges     uint64
	Options      GraphOptions
	Watch        utils.Watch // Total time, including loading.
	AlgTimer     utils.Watch // Algorithm time.
	finalized    bool
}

// A graph thread: a disjoint shard of vertices, their edge lists, their ephemeral state, and read-only mirrors of remote neighbours.
type GraphThread[V any, M any] struct {
	Tidx             uint32
	Vertices         []Vertex
	VertexProperties []V
	VertexStructures []VertexStructure
	VertexMailboxes  []VertexMailbox[M]
	Active           bitmap.Bitmap     // Vertices to process in the current superstep, by thread-local offset.
	Next             bitmap.Bitmap     // Vertices activated for the next superstep. Only written by the owning thread (during exchange).
	Outboxes         [][]Envelope[M]   // Outgoing signals, indexed by the destination graph thread.
	MirrorIndex      map[uint32]uint32 // Internal id of a remote vertex to its position in Mirrors.
	Mirrors          []Mirror[V]
	MsgSend          uint64
	MsgRecv          uint64
}

// Allocates the graph threads. Thread count comes from the options; zero means one.
func (g *Graph[V, M]) Init() {
	if g.Options.NumThreads == 0 {
		g.Options.NumThreads = 1
	}
	if g.Options.NumThreads > THREAD_MAX {
		log.Warn().Msg("Thread count " + utils.V(g.Options.NumThreads) + " exceeds the maximum, using " + utils.V(THREAD_MAX))
		g.Options.NumThreads = THREAD_MAX
	}
	g.NumThreads = g.Options.NumThreads
	g.VertexMap = make(map[RawType]uint32)
	g.GraphThreads = make([]GraphThread[V, M], g.NumThreads)
	for t := uint32(0); t < g.NumThreads; t++ {
		gt := &g.GraphThreads[t]
		gt.Tidx = t
		gt.Outboxes = make([][]Envelope[M], g.NumThreads)
		gt.MirrorIndex = make(map[uint32]uint32)
	}
	g.finalized = false
	g.NumEdges = 0
	g.Watch.Start()
}

// Adds a vertex with the given raw id if it does not exist. Returns its internal id.
// Fails with ErrLoad when the owning graph thread has no internal ids left.
func (g *Graph[V, M]) AddVertex(rawId RawType) (uint32, error) {
	if internalId, ok := g.VertexMap[rawId]; ok {
		return internalId, nil
	}
	return g.addMapping(g.FindVertexPlacement(rawId), rawId)
}

// Adds a directed edge src -> dst, creating endpoints as needed.
// Stored once: as an out-edge of src and an in-edge of dst. Parallel edges and self loops are kept.
func (g *Graph[V, M]) AddEdge(srcRaw RawType, dstRaw RawType) error {
	srcId, err := g.AddVertex(srcRaw)
	if err != nil {
		return err
	}
	dstId, err := g.AddVertex(dstRaw)
	if err != nil {
		return err
	}
	src := g.NodeVertex(srcId)
	src.OutEdges = append(src.OutEdges, Edge{Didx: dstId})
	dst := g.NodeVertex(dstId)
	dst.InEdges = append(dst.InEdges, InEdge{Sidx: srcId})
	g.NumEdges++
	return nil
}

// Finishes construction: sizes the per-vertex state and builds the mirrors.
// The topology is immutable afterwards.
func (g *Graph[V, M]) Finalize() error {
	_, err := g.NodeParallelFor(func(_, _ uint32, gt *GraphThread[V, M]) int {
		n := len(gt.Vertices)
		gt.VertexProperties = make([]V, n)
		gt.VertexMailboxes = make([]VertexMailbox[M], n)
		gt.Active.Clear()
		gt.Next.Clear()
		if n > 0 {
			gt.Active.Grow(uint32(n - 1))
			gt.Next.Grow(uint32(n - 1))
		}
		return 0
	})
	if err != nil {
		return err
	}
	// Mirrors read remote vertex structure, so this waits for all threads to be sized.
	if _, err = g.NodeParallelFor(func(_, _ uint32, gt *GraphThread[V, M]) int {
		return gt.buildMirrors(g)
	}); err != nil {
		return err
	}
	g.finalized = true
	return nil
}

func (g *Graph[V, M]) Finalized() bool {
	return g.finalized
}

// Logs basic structural statistics.
func (g *Graph[V, M]) ComputeGraphStats() {
	numVertices := g.NodeVertexCount()
	if numVertices == 0 {
		log.Info().Msg("Empty graph.")
		return
	}
	listOutDegree := make([]uint32, 0, numVertices)
	listInDegree := make([]uint32, 0, numVertices)
	numSinks := 0
	numMirrors := 0
	g.NodeForEachVertex(func(_, _ uint32, v *Vertex, _ *V) {
		listOutDegree = append(listOutDegree, uint32(len(v.OutEdges)))
		listInDegree = append(listInDegree, uint32(len(v.InEdges)))
		if len(v.OutEdges) == 0 {
			numSinks++
		}
	})
	for t := range g.GraphThreads {
		numMirrors += len(g.GraphThreads[t].Mirrors)
	}

	log.Info().Msg("----GraphStats----")
	log.Info().Msg("Vertices " + utils.V(numVertices) + " Edges " + utils.V(g.NumEdges) + " Threads " + utils.V(g.NumThreads))
	log.Info().Msg("Sinks " + utils.V(numSinks) + " pct: " + utils.F("%.3f", float64(numSinks)*100.0/float64(numVertices)))
	log.Info().Msg("MaxOutDeg " + utils.V(utils.MaxSlice(listOutDegree)) + " MedianOutDeg " + utils.V(utils.Median(listOutDegree)))
	log.Info().Msg("MaxInDeg " + utils.V(utils.MaxSlice(listInDegree)) + " MedianInDeg " + utils.V(utils.Median(listInDegree)))
	log.Info().Msg("Mirrors " + utils.V(numMirrors))
	log.Info().Msg("----EndStats----")
}
