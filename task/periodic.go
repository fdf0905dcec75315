package task

import (
	"context"

	"tasktrace-go/errcode"
	"tasktrace-go/x/tick"
)

// DelayUntil blocks until *lastWake + period and then stores that boundary
// in *lastWake. Time spent in the task body since the previous boundary is
// absorbed, so the release rate does not drift.
//
// The phase is fixed: if the boundary has already passed (the body overran)
// the call returns at once with delayed == false, and the next call aims at
// the following boundary rather than a full period from now.
func DelayUntil(ctx context.Context, clk tick.Clock, lastWake *tick.Tick, period tick.Ticks) (delayed bool, err error) {
	if period == 0 {
		return false, errcode.InvalidPeriod
	}
	next := lastWake.Add(period)
	*lastWake = next
	if next <= clk.Now() {
		return false, ctx.Err()
	}
	if err := tick.SleepUntil(ctx, clk, next); err != nil {
		return false, err
	}
	return true, nil
}
