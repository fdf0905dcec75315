// Package receiver drains the message queue and writes each message to the
// serial console under a label chosen by its tag.
package receiver

import (
	"context"

	"tasktrace-go/hal"
	"tasktrace-go/queue"
	"tasktrace-go/x/tick"
)

// Source is the consumer side of the message queue.
type Source interface {
	Receive(ctx context.Context, timeout tick.Ticks) (queue.Message, error)
}

// Label returns the console heading for tag. Unknown tags have none.
func Label(tag byte) (string, bool) {
	switch tag {
	case queue.TagButton1:
		return "Button 1", true
	case queue.TagButton2:
		return "Button 2", true
	case queue.TagPeriodic:
		return "Periodic Message", true
	default:
		return "", false
	}
}

type Receiver struct {
	q   Source
	out hal.Serial
	buf [queue.PayloadSize + 2]byte
}

func New(q Source, out hal.Serial) *Receiver {
	return &Receiver{q: q, out: out}
}

// Dispatch writes m's label and payload, each framed by newlines. Messages
// with an unknown tag are dropped without output; the result reports
// whether anything was written.
func (r *Receiver) Dispatch(m queue.Message) bool {
	label, ok := Label(m.Tag)
	if !ok {
		return false
	}
	r.out.PutString(r.frame([]byte(label)))
	r.out.PutString(r.frame(m.Text()))
	return true
}

func (r *Receiver) frame(s []byte) []byte {
	b := r.buf[:0]
	b = append(b, '\n')
	b = append(b, s...)
	return append(b, '\n')
}

// Step blocks until a message arrives, then dispatches it.
func (r *Receiver) Step(ctx context.Context) {
	m, err := r.q.Receive(ctx, tick.Forever)
	if err != nil {
		return
	}
	r.Dispatch(m)
}
