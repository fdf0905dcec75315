// Package task runs periodic handlers on a shared clock. Each task owns one
// instrumentation pin that is high exactly while its handler is working.
package task

import (
	"context"

	"tasktrace-go/hal"
	"tasktrace-go/x/logx"
	"tasktrace-go/x/tick"
)

// Handler is the body of a periodic task. Step runs once per period and may
// block; it must return promptly once ctx is done.
type Handler interface {
	Step(ctx context.Context)
}

// Descriptor declares a periodic task. It is fixed once registered.
type Descriptor struct {
	Name     string
	Handler  Handler
	Period   tick.Ticks
	Pin      hal.PinID
	Priority uint8 // recorded only; every task runs at the same priority
}

// Task is a registered descriptor plus the resources it runs against.
type Task struct {
	desc Descriptor
	clk  tick.Clock
	gpio hal.GPIO
}

func (t *Task) Descriptor() Descriptor { return t.desc }

// Run executes the task loop until ctx is done:
// pin high, Step, pin low, wait for the next period boundary.
func (t *Task) Run(ctx context.Context) {
	lastWake := t.clk.Now()
	for ctx.Err() == nil {
		t.gpio.Set(t.desc.Pin, true)
		t.desc.Handler.Step(ctx)
		t.gpio.Set(t.desc.Pin, false)

		if _, err := DelayUntil(ctx, t.clk, &lastWake, t.desc.Period); err != nil {
			break
		}
	}
	logx.Debug("task", t.desc.Name, "stopped")
}
