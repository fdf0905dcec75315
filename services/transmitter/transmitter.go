// Package transmitter sends a fixed heartbeat message every period.
package transmitter

import (
	"context"

	"tasktrace-go/queue"
	"tasktrace-go/x/tick"
)

type Sender interface {
	TrySend(ctx context.Context, m queue.Message, timeout tick.Ticks) queue.SendResult
}

type Transmitter struct {
	q       Sender
	timeout tick.Ticks
	msg     queue.Message
}

func New(q Sender, timeout tick.Ticks) *Transmitter {
	return &Transmitter{q: q, timeout: timeout, msg: queue.NewMessage(queue.TagPeriodic, queue.EventPeriodic)}
}

// Send enqueues the periodic message once.
func (t *Transmitter) Send(ctx context.Context) queue.SendResult {
	return t.q.TrySend(ctx, t.msg, t.timeout)
}

// Step sends best effort: a full queue loses this period's message.
func (t *Transmitter) Step(ctx context.Context) {
	_ = t.Send(ctx).Dropped()
}
