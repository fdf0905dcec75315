package receiver

import (
	"bytes"
	"context"
	"testing"
	"time"

	"tasktrace-go/queue"
	"tasktrace-go/x/tick"
)

type console struct{ bytes.Buffer }

func (c *console) PutString(s []byte) { c.Write(s) }

func TestLabel(t *testing.T) {
	for _, c := range []struct {
		tag  byte
		want string
		ok   bool
	}{
		{'1', "Button 1", true},
		{'2', "Button 2", true},
		{'3', "Periodic Message", true},
		{'9', "", false},
		{0, "", false},
	} {
		got, ok := Label(c.tag)
		if got != c.want || ok != c.ok {
			t.Fatalf("Label(%q) = %q, %v", c.tag, got, ok)
		}
	}
}

func TestDispatchFramesLabelAndPayload(t *testing.T) {
	out := &console{}
	r := New(nil, out)
	if !r.Dispatch(queue.NewMessage(queue.TagButton1, queue.EventRisingEdge)) {
		t.Fatal("Dispatch returned false for a known tag")
	}
	if got, want := out.String(), "\nButton 1\n\nRising Edge\n"; got != want {
		t.Fatalf("output %q, want %q", got, want)
	}
}

func TestDispatchUnknownTagIsSilent(t *testing.T) {
	out := &console{}
	r := New(nil, out)
	if r.Dispatch(queue.NewMessage('9', "ignored")) {
		t.Fatal("Dispatch returned true for tag '9'")
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestStepPreservesQueueOrder(t *testing.T) {
	ctx := context.Background()
	q := queue.New(5, tick.NewManual(0))
	out := &console{}
	r := New(q, out)

	q.TrySend(ctx, queue.NewMessage(queue.TagPeriodic, queue.EventPeriodic), 0)
	q.TrySend(ctx, queue.NewMessage('7', "x"), 0)
	q.TrySend(ctx, queue.NewMessage(queue.TagButton2, queue.EventNoChange), 0)
	for i := 0; i < 3; i++ {
		r.Step(ctx)
	}
	want := "\nPeriodic Message\n\nPeriodic Message\n" + "\nButton 2\n\nNo Change\n"
	if out.String() != want {
		t.Fatalf("output %q, want %q", out.String(), want)
	}
}

func TestStepReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	q := queue.New(5, tick.NewManual(0))
	out := &console{}
	done := make(chan struct{})
	go func() {
		New(q, out).Step(ctx)
		close(done)
	}()
	for q.BlockedReceivers() == 0 {
		time.Sleep(time.Millisecond)
	}
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Step did not return after cancel")
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected output %q", out.String())
	}
}
