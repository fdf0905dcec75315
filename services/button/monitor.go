// Package button samples a digital input once per period and reports the
// edge seen since the previous sample. Every period yields exactly one
// message, "No Change" included.
package button

import (
	"context"

	"tasktrace-go/hal"
	"tasktrace-go/queue"
	"tasktrace-go/x/tick"
)

// Sender is the producer side of the message queue.
type Sender interface {
	TrySend(ctx context.Context, m queue.Message, timeout tick.Ticks) queue.SendResult
}

type Config struct {
	Tag         byte      // queue.TagButton1 or queue.TagButton2
	Input       hal.PinID // pin sampled each period
	GPIO        hal.GPIO
	Queue       Sender
	SendTimeout tick.Ticks
}

// Monitor is the per-button edge detector.
type Monitor struct {
	cfg  Config
	prev bool

	rising, falling, same queue.Message
}

func New(cfg Config) *Monitor {
	return &Monitor{
		cfg:     cfg,
		rising:  queue.NewMessage(cfg.Tag, queue.EventRisingEdge),
		falling: queue.NewMessage(cfg.Tag, queue.EventFallingEdge),
		same:    queue.NewMessage(cfg.Tag, queue.EventNoChange),
	}
}

// Classify names the transition from prev to cur.
func Classify(prev, cur bool) string {
	switch {
	case !prev && cur:
		return queue.EventRisingEdge
	case prev && !cur:
		return queue.EventFallingEdge
	default:
		return queue.EventNoChange
	}
}

// Sample reads the input, enqueues one message and remembers the level.
func (m *Monitor) Sample(ctx context.Context) queue.SendResult {
	cur := m.cfg.GPIO.Get(m.cfg.Input)
	var msg queue.Message
	switch Classify(m.prev, cur) {
	case queue.EventRisingEdge:
		msg = m.rising
	case queue.EventFallingEdge:
		msg = m.falling
	default:
		msg = m.same
	}
	m.prev = cur
	return m.cfg.Queue.TrySend(ctx, msg, m.cfg.SendTimeout)
}

// Step runs one period. A full queue drops the sample; the monitor keeps
// its period rather than retry.
func (m *Monitor) Step(ctx context.Context) {
	_ = m.Sample(ctx).Dropped()
}
