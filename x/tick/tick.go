// Package tick provides the scheduler timebase: an absolute tick counter,
// tick durations and the Clock abstraction shared by every periodic task.
package tick

import "context"

// Tick is an absolute point on the scheduler timebase.
type Tick uint64

// Ticks is a duration measured in scheduler ticks.
type Ticks uint32

// Forever asks a blocking operation to wait without a deadline.
const Forever Ticks = ^Ticks(0)

// Add returns t advanced by d.
func (t Tick) Add(d Ticks) Tick { return t + Tick(d) }

// Since returns the ticks elapsed from u to t, or 0 if u is after t.
func (t Tick) Since(u Tick) Ticks {
	if u >= t {
		return 0
	}
	return Ticks(t - u)
}

// Clock is the only source of time a task sees.
type Clock interface {
	Now() Tick
	// After returns a channel that is closed once d ticks have elapsed,
	// and a stop func that releases the wait early. Stop is idempotent.
	After(d Ticks) (<-chan struct{}, func())
	// Until is After with an absolute deadline. A deadline at or before
	// Now is already closed.
	Until(at Tick) (<-chan struct{}, func())
}

// Hook runs on every tick boundary.
type Hook func(now Tick)

// SleepUntil blocks until clk reaches at or ctx is done.
func SleepUntil(ctx context.Context, clk Clock, at Tick) error {
	ch, stop := clk.Until(at)
	defer stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-ch:
		return nil
	}
}

var closedCh = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

func noop() {}
