// Package queue is the bounded FIFO shared by the producer tasks and the
// receiver. It is the only synchronisation point between tasks.
package queue

import (
	"context"
	"sync/atomic"

	"tasktrace-go/errcode"
	"tasktrace-go/x/tick"
)

// SendResult is the outcome of TrySend. Producers must look at it, even if
// only to decide that a drop is acceptable.
type SendResult uint8

const (
	SendOK SendResult = iota
	SendErrQueueFull
	SendErrCancelled
)

func (r SendResult) String() string {
	switch r {
	case SendOK:
		return "ok"
	case SendErrQueueFull:
		return "queue full"
	case SendErrCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Dropped reports whether the message was not enqueued.
func (r SendResult) Dropped() bool { return r != SendOK }

// Err maps the result onto an errcode, nil for SendOK.
func (r SendResult) Err() error {
	switch r {
	case SendOK:
		return nil
	case SendErrQueueFull:
		return errcode.QueueFull
	case SendErrCancelled:
		return errcode.Cancelled
	default:
		return errcode.Error
	}
}

// Queue is a fixed-capacity FIFO of Messages.
type Queue struct {
	ch      chan Message
	clk     tick.Clock
	waiting atomic.Int32 // receivers inside the blocking select
	pending atomic.Int32 // sends started and not yet taken by a receiver
}

// New returns a queue holding at most capacity messages. Timeouts are
// measured on clk. A capacity below 1 is raised to 1.
func New(capacity int, clk tick.Clock) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{ch: make(chan Message, capacity), clk: clk}
}

func (q *Queue) Cap() int { return cap(q.ch) }
func (q *Queue) Len() int { return len(q.ch) }

// BlockedReceivers reports how many receivers are parked on an empty queue
// with nothing on its way to them. A receiver that has been handed a message
// but not yet resumed is not parked.
func (q *Queue) BlockedReceivers() int {
	if q.pending.Load() > 0 {
		return 0
	}
	return int(q.waiting.Load())
}

// TrySend appends m, waiting up to timeout ticks for a free slot.
// A zero timeout never blocks.
func (q *Queue) TrySend(ctx context.Context, m Message, timeout tick.Ticks) SendResult {
	// Counted before the send so a woken receiver can never be seen
	// parked with its message already handed over.
	q.pending.Add(1)
	r := q.send(ctx, m, timeout)
	if r != SendOK {
		q.pending.Add(-1)
	}
	return r
}

func (q *Queue) send(ctx context.Context, m Message, timeout tick.Ticks) SendResult {
	select {
	case q.ch <- m:
		return SendOK
	default:
	}
	if timeout == 0 {
		return SendErrQueueFull
	}

	var expired <-chan struct{}
	if timeout != tick.Forever {
		ch, stop := q.clk.After(timeout)
		defer stop()
		expired = ch
	}
	select {
	case q.ch <- m:
		return SendOK
	case <-expired:
		return SendErrQueueFull
	case <-ctx.Done():
		return SendErrCancelled
	}
}

// Receive removes the oldest message, waiting up to timeout ticks for one to
// arrive. tick.Forever waits until a message arrives or ctx is done.
func (q *Queue) Receive(ctx context.Context, timeout tick.Ticks) (Message, error) {
	select {
	case m := <-q.ch:
		q.pending.Add(-1)
		return m, nil
	default:
	}
	if timeout == 0 {
		return Message{}, errcode.Timeout
	}

	var expired <-chan struct{}
	if timeout != tick.Forever {
		ch, stop := q.clk.After(timeout)
		defer stop()
		expired = ch
	}
	// waiting drops before pending so the pair never reads as parked
	// once a message has been taken.
	q.waiting.Add(1)
	select {
	case m := <-q.ch:
		q.waiting.Add(-1)
		q.pending.Add(-1)
		return m, nil
	case <-expired:
		q.waiting.Add(-1)
		return Message{}, errcode.Timeout
	case <-ctx.Done():
		q.waiting.Add(-1)
		return Message{}, ctx.Err()
	}
}
