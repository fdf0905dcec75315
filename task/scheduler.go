package task

import (
	"context"
	"strconv"
	"sync"

	"tasktrace-go/errcode"
	"tasktrace-go/hal"
	"tasktrace-go/x/logx"
	"tasktrace-go/x/tick"
)

// Scheduler owns the registered tasks and their goroutines.
type Scheduler struct {
	clk  tick.Clock
	gpio hal.GPIO

	mu      sync.Mutex
	tasks   []*Task
	names   map[string]bool
	pins    map[hal.PinID]string
	started bool
	wg      sync.WaitGroup
}

func NewScheduler(clk tick.Clock, gpio hal.GPIO) *Scheduler {
	return &Scheduler{
		clk:   clk,
		gpio:  gpio,
		names: map[string]bool{},
		pins:  map[hal.PinID]string{},
	}
}

// CreatePeriodic registers d. Names and instrumentation pins must be unique,
// the period non-zero, and the pin an output.
func (s *Scheduler) CreatePeriodic(d Descriptor) (*Task, error) {
	const op = "task.CreatePeriodic"
	switch {
	case d.Name == "" || d.Handler == nil:
		return nil, &errcode.E{C: errcode.InvalidTask, Op: op, Msg: "name and handler required"}
	case d.Period == 0:
		return nil, &errcode.E{C: errcode.InvalidPeriod, Op: op, Msg: d.Name}
	case !d.Pin.Valid() || d.Pin.IsInput():
		return nil, &errcode.E{C: errcode.UnknownPin, Op: op, Msg: d.Name + ": " + d.Pin.String()}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil, &errcode.E{C: errcode.InvalidTask, Op: op, Msg: "scheduler already started"}
	}
	if s.names[d.Name] {
		return nil, &errcode.E{C: errcode.DuplicateTask, Op: op, Msg: d.Name}
	}
	if owner, taken := s.pins[d.Pin]; taken {
		return nil, &errcode.E{C: errcode.DuplicateTask, Op: op, Msg: d.Pin.String() + " used by " + owner}
	}
	t := &Task{desc: d, clk: s.clk, gpio: s.gpio}
	s.tasks = append(s.tasks, t)
	s.names[d.Name] = true
	s.pins[d.Pin] = d.Name
	logx.Debug("task", "registered", d.Name, "period", strconv.FormatUint(uint64(d.Period), 10))
	return t, nil
}

// Tasks returns the registered tasks in registration order.
func (s *Scheduler) Tasks() []*Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Task(nil), s.tasks...)
}

// Start launches every task. Tasks run until ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return &errcode.E{C: errcode.InvalidTask, Op: "task.Start", Msg: "already started"}
	}
	s.started = true
	for _, t := range s.tasks {
		s.wg.Add(1)
		go func(t *Task) {
			defer s.wg.Done()
			t.Run(ctx)
		}(t)
	}
	logx.Info("scheduler", "started", strconv.Itoa(len(s.tasks)), "tasks")
	return nil
}

// Wait blocks until every task has returned.
func (s *Scheduler) Wait() { s.wg.Wait() }
