// Package tracereport periodically logs what the analyzer has seen on each
// pin. It only reports; it never judges a deadline as missed.
package tracereport

import (
	"context"

	"tasktrace-go/hal"
	"tasktrace-go/x/conv"
	"tasktrace-go/x/logx"
	"tasktrace-go/x/mathx"
	"tasktrace-go/x/tick"
)

// Source is anything that can summarise pin activity.
type Source interface {
	Snapshot() []hal.PinStats
}

type Service struct {
	src   Source
	clk   tick.Clock
	every tick.Ticks
}

// New returns a reporter logging every `every` ticks. Zero disables it.
func New(src Source, clk tick.Clock, every tick.Ticks) *Service {
	return &Service{src: src, clk: clk, every: every}
}

// Format renders one pin summary, e.g.
// "load1_analyzer rises=12 period=10 high=3 max=4 duty=30%".
func Format(st hal.PinStats) string {
	b := make([]byte, 0, 80)
	b = append(b, st.Pin.String()...)
	b = appendField(b, " rises=", st.Rises)
	b = appendField(b, " period=", uint64(st.Period))
	b = appendField(b, " high=", uint64(st.High))
	b = appendField(b, " max=", uint64(st.MaxHigh))
	b = appendField(b, " duty=", uint64(mathx.Percent(st.High, st.Period)))
	return string(append(b, '%'))
}

func appendField(b []byte, name string, v uint64) []byte {
	return conv.AppendUint(append(b, name...), v)
}

// Report logs one line per pin seen so far.
func (s *Service) Report() {
	for _, st := range s.src.Snapshot() {
		logx.Info("trace", Format(st))
	}
}

func (s *Service) serviceLoop(ctx context.Context) {
	next := s.clk.Now()
	for {
		next = next.Add(s.every)
		if err := tick.SleepUntil(ctx, s.clk, next); err != nil {
			logx.Debug("trace", "report stopping")
			return
		}
		s.Report()
	}
}

// Start launches the report loop. It is a no-op when disabled or when there
// is nothing to report on.
func (s *Service) Start(ctx context.Context) error {
	if s.every == 0 || s.src == nil {
		return nil
	}
	go s.serviceLoop(ctx)
	return nil
}
