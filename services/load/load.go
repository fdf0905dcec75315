// Package load burns CPU for a known amount of work each period so the other
// tasks can be checked for deadline misses under contention.
package load

import (
	"context"

	"tasktrace-go/x/tick"
)

// Work is one period's worth of simulated work.
type Work interface {
	Do(ctx context.Context)
}

// BusyLoop spins for a fixed number of iterations. It has no side effects
// beyond elapsed time.
type BusyLoop struct {
	Iterations int
}

// sink keeps the loop from being optimised away.
var sink int

func (b BusyLoop) Do(context.Context) {
	acc := 0
	for i := 0; i < b.Iterations; i++ {
		acc += i
	}
	sink = acc
}

// SpinFor busy-waits until Ticks have elapsed on Clock, or ctx is done.
// A manual clock only moves when its driver advances it, and the driver
// waits for every task to park first, so there the work parks on the
// clock instead of spinning.
type SpinFor struct {
	Clock tick.Clock
	Ticks tick.Ticks
}

func (s SpinFor) Do(ctx context.Context) {
	until := s.Clock.Now().Add(s.Ticks)
	if _, manual := s.Clock.(*tick.Manual); manual {
		_ = tick.SleepUntil(ctx, s.Clock, until)
		return
	}
	for s.Clock.Now() < until && ctx.Err() == nil {
	}
}

// ClockWork consumes Ticks by advancing a manual clock. It stands in for
// BusyLoop where elapsed time has to be exact.
type ClockWork struct {
	Clock *tick.Manual
	Ticks tick.Ticks
}

func (c ClockWork) Do(context.Context) { c.Clock.Advance(c.Ticks) }

// Simulation is the periodic load task.
type Simulation struct {
	work Work
}

func New(w Work) *Simulation { return &Simulation{work: w} }

func (s *Simulation) Step(ctx context.Context) { s.work.Do(ctx) }
