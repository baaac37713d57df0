package graph

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/lollipop-gas/utils"
)

// Logs the outstanding message count (sent but not yet received).
func (g *Graph[V, M]) printStatus(prefix string) {
	chkRes := int64(0)
	for t := 0; t < int(g.NumThreads); t++ {
		chkRes += int64(g.GraphThreads[t].MsgSend) - int64(g.GraphThreads[t].MsgRecv)
	}
	log.Debug().Msg(prefix + " Outstanding: " + utils.V(chkRes))
}

// Ensure outboxes and mailboxes are empty and no messages are inflight.
func (g *Graph[V, M]) EnsureCompleteness() error {
	msgSend := uint64(0)
	msgRecv := uint64(0)
	for t := 0; t < int(g.NumThreads); t++ {
		msgSend += g.GraphThreads[t].MsgSend
		msgRecv += g.GraphThreads[t].MsgRecv
	}
	g.printStatus("Finals: ")
	if inFlight := int64(msgSend) - int64(msgRecv); inFlight != 0 {
		return fmt.Errorf("%w: messages in flight: %d", ErrEngine, inFlight)
	}

	for t := 0; t < int(g.NumThreads); t++ {
		gt := &g.GraphThreads[t]
		for d := range gt.Outboxes {
			if len(gt.Outboxes[d]) != 0 {
				return fmt.Errorf("%w: incomplete: thread %d has %d undelivered signals for thread %d", ErrEngine, t, len(gt.Outboxes[d]), d)
			}
		}
	}
	return nil
}
