// Package system wires the queue, the six periodic tasks and their pins
// into one runnable unit.
package system

import (
	"context"
	"time"

	"tasktrace-go/errcode"
	"tasktrace-go/hal"
	"tasktrace-go/queue"
	"tasktrace-go/services/button"
	"tasktrace-go/services/load"
	"tasktrace-go/services/receiver"
	"tasktrace-go/services/tracereport"
	"tasktrace-go/services/transmitter"
	"tasktrace-go/task"
	"tasktrace-go/types"
	"tasktrace-go/x/logx"
	"tasktrace-go/x/tick"
)

// Deps are the board resources the system runs against.
type Deps struct {
	Clock  tick.Clock
	GPIO   hal.GPIO
	Serial hal.Serial
	// Trace, when set, is summarised every cfg.Report.IntervalTicks.
	Trace tracereport.Source
	// Work overrides the per-period work of the load tasks.
	Work func(name string, tc types.TaskConfig) load.Work
}

type System struct {
	cfg    types.SystemConfig
	deps   Deps
	q      *queue.Queue
	sched  *task.Scheduler
	report *tracereport.Service
}

// New builds the system. Nothing runs until Start.
func New(cfg types.SystemConfig, deps Deps) (*System, error) {
	if deps.Clock == nil || deps.GPIO == nil || deps.Serial == nil {
		return nil, &errcode.E{C: errcode.InvalidConfig, Op: "system.New", Msg: "clock, gpio and serial required"}
	}
	s := &System{
		cfg:   cfg,
		deps:  deps,
		q:     queue.New(cfg.QueueCapacity, deps.Clock),
		sched: task.NewScheduler(deps.Clock, deps.GPIO),
	}
	if deps.Trace != nil {
		s.report = tracereport.New(deps.Trace, deps.Clock, tick.Ticks(cfg.Report.IntervalTicks))
	}
	for _, d := range s.descriptors() {
		if _, err := s.sched.CreatePeriodic(d); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// descriptors lists the tasks in registration order.
func (s *System) descriptors() []task.Descriptor {
	timeout := tick.Ticks(s.cfg.SendTimeoutTicks)
	monitor := func(name string, tag byte, in, pin hal.PinID) task.Descriptor {
		return task.Descriptor{
			Name: name,
			Handler: button.New(button.Config{
				Tag:         tag,
				Input:       in,
				GPIO:        s.deps.GPIO,
				Queue:       s.q,
				SendTimeout: timeout,
			}),
			Period:   s.period(name),
			Pin:      pin,
			Priority: 1,
		}
	}
	sim := func(name string, pin hal.PinID) task.Descriptor {
		return task.Descriptor{
			Name:     name,
			Handler:  load.New(s.work(name)),
			Period:   s.period(name),
			Pin:      pin,
			Priority: 1,
		}
	}
	return []task.Descriptor{
		monitor(types.TaskButton1, queue.TagButton1, hal.Button1, hal.Button1Analyzer),
		monitor(types.TaskButton2, queue.TagButton2, hal.Button2, hal.Button2Analyzer),
		sim(types.TaskLoad1, hal.Load1Analyzer),
		sim(types.TaskLoad2, hal.Load2Analyzer),
		{
			Name:     types.TaskTransmitter,
			Handler:  transmitter.New(s.q, timeout),
			Period:   s.period(types.TaskTransmitter),
			Pin:      hal.TransmitAnalyzer,
			Priority: 1,
		},
		{
			Name:     types.TaskReceiver,
			Handler:  receiver.New(s.q, s.deps.Serial),
			Period:   s.period(types.TaskReceiver),
			Pin:      hal.ReceiverAnalyzer,
			Priority: 1,
		},
	}
}

func (s *System) period(name string) tick.Ticks {
	return tick.Ticks(s.cfg.Task(name).Period)
}

func (s *System) work(name string) load.Work {
	tc := s.cfg.Task(name)
	if s.deps.Work != nil {
		if w := s.deps.Work(name, tc); w != nil {
			return w
		}
	}
	if tc.BusyTicks > 0 {
		return load.SpinFor{Clock: s.deps.Clock, Ticks: tick.Ticks(tc.BusyTicks)}
	}
	return load.BusyLoop{Iterations: tc.Iterations}
}

// tickPulse raises and drops the tick hook pin once per tick.
func (s *System) tickPulse(tick.Tick) {
	s.deps.GPIO.Set(hal.TickHook, true)
	s.deps.GPIO.Set(hal.TickHook, false)
}

// Start launches the tasks, the tick hook and the trace report.
func (s *System) Start(ctx context.Context) error {
	if s.cfg.TickHook {
		switch c := s.deps.Clock.(type) {
		case interface{ OnTick(tick.Hook) }:
			c.OnTick(s.tickPulse)
		case interface {
			StartTick(context.Context, tick.Hook)
		}:
			c.StartTick(ctx, s.tickPulse)
		default:
			logx.Warn("system", "clock has no tick source, tick hook disabled")
		}
	}
	if err := s.sched.Start(ctx); err != nil {
		return err
	}
	if s.report != nil {
		return s.report.Start(ctx)
	}
	return nil
}

// Settle waits until every task is parked on clk or on the queue, so the
// next Advance releases them from a known state. Only meaningful once
// Start has run.
func (s *System) Settle(ctx context.Context, clk *tick.Manual) error {
	want := len(s.sched.Tasks())
	if s.report != nil && s.cfg.Report.IntervalTicks > 0 {
		want++
	}
	for clk.Waiters()+s.q.BlockedReceivers() < want {
		if err := ctx.Err(); err != nil {
			return err
		}
		time.Sleep(50 * time.Microsecond)
	}
	return nil
}

// Wait blocks until every task has stopped.
func (s *System) Wait() { s.sched.Wait() }

func (s *System) Queue() *queue.Queue        { return s.q }
func (s *System) Scheduler() *task.Scheduler { return s.sched }
func (s *System) Config() types.SystemConfig { return s.cfg }
