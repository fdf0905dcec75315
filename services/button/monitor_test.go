package button

import (
	"context"
	"testing"

	"tasktrace-go/hal"
	"tasktrace-go/queue"
	"tasktrace-go/x/tick"
)

type pins map[hal.PinID]bool

func (p pins) Set(id hal.PinID, level bool) { p[id] = level }
func (p pins) Get(id hal.PinID) bool        { return p[id] }

func TestClassify(t *testing.T) {
	for _, c := range []struct {
		prev, cur bool
		want      string
	}{
		{false, false, queue.EventNoChange},
		{false, true, queue.EventRisingEdge},
		{true, true, queue.EventNoChange},
		{true, false, queue.EventFallingEdge},
	} {
		if got := Classify(c.prev, c.cur); got != c.want {
			t.Fatalf("Classify(%v, %v) = %q, want %q", c.prev, c.cur, got, c.want)
		}
	}
}

func TestMonitorSequence(t *testing.T) {
	ctx := context.Background()
	clk := tick.NewManual(0)
	q := queue.New(8, clk)
	in := pins{}
	m := New(Config{Tag: queue.TagButton2, Input: hal.Button2, GPIO: in, Queue: q, SendTimeout: 10})

	levels := []bool{false, true, true, false, false}
	want := []string{
		queue.EventNoChange,
		queue.EventRisingEdge,
		queue.EventNoChange,
		queue.EventFallingEdge,
		queue.EventNoChange,
	}
	for _, l := range levels {
		in[hal.Button2] = l
		if r := m.Sample(ctx); r != queue.SendOK {
			t.Fatalf("Sample() = %v, want ok", r)
		}
	}
	for i, w := range want {
		got, err := q.Receive(ctx, 0)
		if err != nil {
			t.Fatalf("message %d: %v", i, err)
		}
		if got.Tag != queue.TagButton2 || string(got.Text()) != w {
			t.Fatalf("message %d = %c %q, want 2 %q", i, got.Tag, got.Text(), w)
		}
	}
}

func TestMonitorDropsWhenFull(t *testing.T) {
	ctx := context.Background()
	clk := tick.NewManual(0)
	q := queue.New(1, clk)
	m := New(Config{Tag: queue.TagButton1, Input: hal.Button1, GPIO: pins{}, Queue: q})

	if r := m.Sample(ctx); r != queue.SendOK {
		t.Fatalf("first Sample() = %v", r)
	}
	if r := m.Sample(ctx); r != queue.SendErrQueueFull {
		t.Fatalf("second Sample() = %v, want queue full", r)
	}
	m.Step(ctx)
	if q.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", q.Len())
	}
}
