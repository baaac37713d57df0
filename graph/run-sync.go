package graph

import (
	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/lollipop-gas/utils"
)

// Synchronous gather-apply-scatter execution (BSP). Every phase runs on all graph threads in parallel, and each
// phase returns only when all threads are done, which is the barrier between phases:
//
//	gather (reads state committed by the previous superstep) -> apply -> mirror sync -> scatter -> exchange
//
// Signals sent in superstep s are only delivered in s+1. Aggregators run after the exchange and are visible in s+1.
// Halts when no vertex is active at the start of a superstep, or when the iteration cap is reached.
func ConvergeSync[V any, G any, M any, A Algorithm[V, G, M]](alg A, g *Graph[V, M], rc RunContext) (stats RunStats, err error) {
	numThreads := g.NumThreads
	accs := make([][]G, numThreads)
	mails := make([][]Mail[M], numThreads)
	vertexUpdates := make([]uint64, numThreads)
	for t := uint32(0); t < numThreads; t++ {
		accs[t] = make([]G, len(g.GraphThreads[t].Vertices))
		mails[t] = make([]Mail[M], len(g.GraphThreads[t].Vertices))
	}

	var aggs []Aggregator[V]
	if a, ok := any(alg).(AlgorithmAggregators[V]); ok {
		aggs = a.Aggregators(rc)
	}
	iterationCap := -1
	if a, ok := any(alg).(AlgorithmIterationCap); ok {
		iterationCap = a.IterationCap(rc)
	}

	if err = initialize[V, G, M](alg, g, rc); err != nil {
		return stats, err
	}
	if rc, err = runAggregators(g, aggs, rc, func(a *Aggregator[V]) bool { return a.Now }); err != nil {
		return stats, err
	}
	if err = sendInitialMail[V, G, M](alg, g, rc); err != nil {
		return stats, err
	}

	watch := utils.Watch{}
	watch.Start()
	superstep := 0
	for ; ; superstep++ {
		if iterationCap >= 0 && superstep >= iterationCap {
			log.Debug().Msg("Iteration cap reached: " + utils.V(iterationCap))
			break
		}
		active := g.activeCount()
		if active == 0 {
			break
		}
		rc.Superstep = superstep
		watch.Lap()

		// Gather. Takes the mail, and merges edge contributions into the accumulator.
		if _, err = g.NodeParallelFor(func(_, _ uint32, gt *GraphThread[V, M]) int {
			tAccs, tMails := accs[gt.Tidx], mails[gt.Tidx]
			for i := uint32(0); i < uint32(len(gt.Vertices)); i++ {
				if !gt.Active.Contains(i) {
					continue
				}
				inbox := &gt.VertexMailboxes[i].Inbox
				tMails[i] = *inbox
				*inbox = Mail[M]{}

				self := gt.ownedRef(i)
				var acc G
				seeded := false
				gt.forEachEdge(self, alg.GatherEdges(rc, self), func(e *EdgeRef[V]) {
					contribution := alg.Gather(rc, self, *e)
					if seeded {
						alg.GatherMerge(contribution, &acc)
					} else {
						acc = contribution
						seeded = true
					}
				})
				tAccs[i] = acc
			}
			return 0
		}); err != nil {
			return stats, err
		}

		// Apply.
		if _, err = g.NodeParallelFor(func(_, _ uint32, gt *GraphThread[V, M]) int {
			tAccs, tMails := accs[gt.Tidx], mails[gt.Tidx]
			c := &Context[V, M]{RunContext: rc, gt: gt}
			var zeroAcc G
			for i := uint32(0); i < uint32(len(gt.Vertices)); i++ {
				if !gt.Active.Contains(i) {
					continue
				}
				alg.Apply(c, gt.ownedRef(i), tAccs[i], tMails[i])
				tAccs[i] = zeroAcc
				tMails[i] = Mail[M]{}
				vertexUpdates[gt.Tidx]++
			}
			return 0
		}); err != nil {
			return stats, err
		}

		// Mirror sync, so scatter (and the next gather) views post-apply state of remote neighbours.
		if _, err = g.NodeParallelFor(func(_, _ uint32, gt *GraphThread[V, M]) int {
			return gt.syncMirrors(g)
		}); err != nil {
			return stats, err
		}

		// Scatter.
		if _, err = g.NodeParallelFor(func(_, _ uint32, gt *GraphThread[V, M]) int {
			c := &Context[V, M]{RunContext: rc, gt: gt}
			for i := uint32(0); i < uint32(len(gt.Vertices)); i++ {
				if !gt.Active.Contains(i) {
					continue
				}
				self := gt.ownedRef(i)
				gt.forEachEdge(self, alg.ScatterEdges(rc, self), func(e *EdgeRef[V]) {
					alg.Scatter(c, self, *e)
				})
			}
			return 0
		}); err != nil {
			return stats, err
		}

		// Exchange. Each thread drains the outboxes addressed to it, then swaps its frontiers.
		var received int
		if received, err = g.NodeParallelFor(func(_, _ uint32, gt *GraphThread[V, M]) int {
			tReceived := gt.receive(g, alg.MessageMerge)
			gt.Active.Clear()
			gt.Active, gt.Next = gt.Next, gt.Active
			return tReceived
		}); err != nil {
			return stats, err
		}
		stats.Messages += uint64(received)

		if rc, err = runAggregators(g, aggs, rc, func(a *Aggregator[V]) bool { return a.dueAfter(superstep) }); err != nil {
			return stats, err
		}

		log.Debug().Msg("Superstep " + utils.V(superstep) + " Active: " + utils.V(active) + " Signals: " + utils.V(received) +
			" Time(ms): " + utils.F("%.3f", watch.Lap().Seconds()*1000))
	}

	stats.Supersteps = superstep
	stats.Updates = utils.Sum(vertexUpdates)
	log.Info().Msg("Iterations: " + utils.V(stats.Supersteps) + " Updates: " + utils.V(stats.Updates))
	return stats, nil
}

// Resets the ephemeral state and initializes vertex payloads.
func initialize[V any, G any, M any, A Algorithm[V, G, M]](alg A, g *Graph[V, M], rc RunContext) error {
	aIV, hasInit := any(alg).(AlgorithmInitVertex[V])
	_, err := g.NodeParallelFor(func(_, _ uint32, gt *GraphThread[V, M]) int {
		var zero V
		for i := uint32(0); i < uint32(len(gt.Vertices)); i++ {
			gt.VertexProperties[i] = zero
			gt.VertexMailboxes[i] = VertexMailbox[M]{}
			if hasInit {
				aIV.InitVertex(rc, gt.ownedRef(i))
			}
		}
		gt.Active.Clear()
		gt.Next.Clear()
		for t := range gt.Outboxes {
			gt.Outboxes[t] = gt.Outboxes[t][:0]
		}
		gt.MsgSend, gt.MsgRecv = 0, 0
		return 0
	})
	if err != nil {
		return err
	}
	// Mirrors start out as a copy of the initialized payloads.
	_, err = g.NodeParallelFor(func(_, _ uint32, gt *GraphThread[V, M]) int {
		return gt.syncMirrors(g)
	})
	return err
}

// Places the initial mail and activates the starting vertices.
func sendInitialMail[V any, G any, M any, A Algorithm[V, G, M]](alg A, g *Graph[V, M], rc RunContext) error {
	aIM, hasInitMail := any(alg).(AlgorithmInitMail[V, M])
	_, err := g.NodeParallelFor(func(_, _ uint32, gt *GraphThread[V, M]) int {
		for i := uint32(0); i < uint32(len(gt.Vertices)); i++ {
			if !hasInitMail {
				gt.Active.Set(i)
				continue
			}
			mail, active := aIM.InitMail(rc, gt.ownedRef(i))
			if mail.Delivered {
				gt.VertexMailboxes[i].Inbox = mail
				active = true
			}
			if active {
				gt.Active.Set(i)
			}
		}
		return 0
	})
	return err
}

// Number of active vertices across all threads. Only valid between supersteps.
func (g *Graph[V, M]) activeCount() (active int) {
	for t := range g.GraphThreads {
		active += g.GraphThreads[t].Active.Count()
	}
	return active
}
