package graph

import (
	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/lollipop-gas/utils"
)

// A buffered signal, waiting in an outbox for the barrier.
type Envelope[M any] struct {
	Target   uint32 // Internal id.
	Value    M
	HasValue bool // False for a pure activation.
}

// Signals a vertex with a message. It is activated, and receives the message (merged with any others), in the next superstep.
func (c *Context[V, M]) Signal(target uint32, msg M) {
	tidx := target >> THREAD_SHIFT
	c.gt.Outboxes[tidx] = append(c.gt.Outboxes[tidx], Envelope[M]{Target: target, Value: msg, HasValue: true})
	c.gt.MsgSend++
}

// Activates a vertex for the next superstep without a message.
func (c *Context[V, M]) Activate(target uint32) {
	tidx := target >> THREAD_SHIFT
	c.gt.Outboxes[tidx] = append(c.gt.Outboxes[tidx], Envelope[M]{Target: target})
	c.gt.MsgSend++
}

// Drains every outbox addressed to this thread into mailboxes, and marks the targets active for the next superstep.
// Only this thread touches the outboxes addressed to it during the exchange, so no locking is needed.
func (gt *GraphThread[V, M]) receive(g *Graph[V, M], merge func(incoming M, existing *M)) (received int) {
	for s := range g.GraphThreads {
		src := &g.GraphThreads[s]
		box := src.Outboxes[gt.Tidx]
		for i := range box {
			idx := box[i].Target & THREAD_MASK
			if int(idx) >= len(gt.Vertices) {
				log.Panic().Msg("T[" + utils.V(gt.Tidx) + "] signal to unknown vertex: " + utils.V(box[i].Target))
			}
			if box[i].HasValue {
				inbox := &gt.VertexMailboxes[idx].Inbox
				if inbox.Delivered {
					merge(box[i].Value, &inbox.Value)
				} else {
					inbox.Value = box[i].Value
					inbox.Delivered = true
				}
			}
			gt.Next.Set(idx)
		}
		received += len(box)
		clear(box)
		src.Outboxes[gt.Tidx] = box[:0]
	}
	gt.MsgRecv += uint64(received)
	return received
}
