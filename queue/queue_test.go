package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tasktrace-go/errcode"
	"tasktrace-go/x/tick"
)

func numbered(i int) Message {
	return NewMessage(TagPeriodic, string(rune('A'+i)))
}

func TestFIFOOrder(t *testing.T) {
	q := New(5, tick.NewManual(0))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if res := q.TrySend(ctx, numbered(i), 0); res != SendOK {
			t.Fatalf("TrySend(%d) = %s, want ok", i, res)
		}
	}
	for i := 0; i < 5; i++ {
		m, err := q.Receive(ctx, 0)
		if err != nil {
			t.Fatalf("Receive(%d): %v", i, err)
		}
		if got, want := string(m.Text()), string(rune('A'+i)); got != want {
			t.Fatalf("Receive(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestCapacityNeverExceeded(t *testing.T) {
	q := New(5, tick.NewManual(0))
	ctx := context.Background()

	ok := 0
	for i := 0; i < 12; i++ {
		if q.TrySend(ctx, numbered(i), 0) == SendOK {
			ok++
		}
		if q.Len() > q.Cap() {
			t.Fatalf("Len() = %d exceeds Cap() = %d", q.Len(), q.Cap())
		}
	}
	if ok != 5 {
		t.Fatalf("accepted %d messages, want 5", ok)
	}
	if res := q.TrySend(ctx, numbered(0), 0); res != SendErrQueueFull || !res.Dropped() {
		t.Fatalf("TrySend on full queue = %s, want queue full", res)
	}
	if !errors.Is(SendErrQueueFull.Err(), errcode.QueueFull) {
		t.Fatal("SendErrQueueFull.Err() should be errcode.QueueFull")
	}
}

func TestRoundTripIdentity(t *testing.T) {
	q := New(2, tick.NewManual(0))
	ctx := context.Background()

	in := NewMessage(TagButton1, EventFallingEdge)
	if res := q.TrySend(ctx, in, 0); res != SendOK {
		t.Fatalf("TrySend = %s", res)
	}
	in.Payload[0] = 'X' // mutating the producer's copy must not leak

	out, err := q.Receive(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := NewMessage(TagButton1, EventFallingEdge)
	if out != want {
		t.Fatalf("round trip = %+v, want %+v", out, want)
	}
}

func TestCapacityOneRace(t *testing.T) {
	for round := 0; round < 50; round++ {
		q := New(1, tick.NewManual(0))
		ctx := context.Background()

		start := make(chan struct{})
		results := make(chan SendResult, 2)
		var wg sync.WaitGroup
		for p := 0; p < 2; p++ {
			wg.Add(1)
			go func(tag byte) {
				defer wg.Done()
				<-start
				results <- q.TrySend(ctx, NewMessage(tag, EventNoChange), 0)
			}(byte('1' + p))
		}
		close(start)
		wg.Wait()
		close(results)

		var okN, fullN int
		for r := range results {
			switch r {
			case SendOK:
				okN++
			case SendErrQueueFull:
				fullN++
			default:
				t.Fatalf("unexpected result %s", r)
			}
		}
		if okN != 1 || fullN != 1 {
			t.Fatalf("round %d: ok=%d full=%d, want 1/1", round, okN, fullN)
		}
	}
}

func TestTrySendWaitsUpToTimeout(t *testing.T) {
	clk := tick.NewManual(0)
	q := New(1, clk)
	ctx := context.Background()
	if q.TrySend(ctx, numbered(0), 0) != SendOK {
		t.Fatal("first send should succeed")
	}

	done := make(chan SendResult, 1)
	go func() { done <- q.TrySend(ctx, numbered(1), 10) }()

	if err := clk.BlockUntil(ctx, 1); err != nil {
		t.Fatal(err)
	}
	clk.Advance(9)
	select {
	case r := <-done:
		t.Fatalf("TrySend returned %s before the timeout", r)
	default:
	}
	clk.Advance(1)
	select {
	case r := <-done:
		if r != SendErrQueueFull {
			t.Fatalf("TrySend = %s, want queue full", r)
		}
	case <-time.After(time.Second):
		t.Fatal("TrySend did not time out at tick 10")
	}
}

func TestTrySendSucceedsWhenSlotFrees(t *testing.T) {
	clk := tick.NewManual(0)
	q := New(1, clk)
	ctx := context.Background()
	_ = q.TrySend(ctx, numbered(0), 0)

	done := make(chan SendResult, 1)
	go func() { done <- q.TrySend(ctx, numbered(1), 10) }()
	if err := clk.BlockUntil(ctx, 1); err != nil {
		t.Fatal(err)
	}
	clk.Advance(3)
	if _, err := q.Receive(ctx, 0); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-done:
		if r != SendOK {
			t.Fatalf("TrySend = %s, want ok", r)
		}
	case <-time.After(time.Second):
		t.Fatal("blocked sender was not released")
	}
	if n := clk.Waiters(); n != 0 {
		t.Fatalf("timeout wait leaked: Waiters() = %d", n)
	}
}

func TestTrySendCancelled(t *testing.T) {
	q := New(1, tick.NewManual(0))
	_ = q.TrySend(context.Background(), numbered(0), 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if r := q.TrySend(ctx, numbered(1), tick.Forever); r != SendErrCancelled {
		t.Fatalf("TrySend = %s, want cancelled", r)
	}
}

func TestReceiveTimeout(t *testing.T) {
	clk := tick.NewManual(0)
	q := New(5, clk)
	ctx := context.Background()

	if _, err := q.Receive(ctx, 0); err != errcode.Timeout {
		t.Fatalf("Receive(0) on empty = %v, want timeout", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := q.Receive(ctx, 20)
		done <- err
	}()
	if err := clk.BlockUntil(ctx, 1); err != nil {
		t.Fatal(err)
	}
	clk.Advance(20)
	select {
	case err := <-done:
		if err != errcode.Timeout {
			t.Fatalf("Receive = %v, want timeout", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Receive did not time out")
	}
}

func TestReceiveForeverBlocksUntilSend(t *testing.T) {
	q := New(5, tick.NewManual(0))
	ctx := context.Background()

	got := make(chan Message, 1)
	go func() {
		m, err := q.Receive(ctx, tick.Forever)
		if err == nil {
			got <- m
		}
	}()

	deadline := time.Now().Add(time.Second)
	for q.BlockedReceivers() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("receiver never parked")
		}
		time.Sleep(time.Millisecond)
	}
	_ = q.TrySend(ctx, NewMessage(TagButton2, EventRisingEdge), 0)

	select {
	case m := <-got:
		if m.Tag != TagButton2 || string(m.Text()) != EventRisingEdge {
			t.Fatalf("got %+v", m)
		}
	case <-time.After(time.Second):
		t.Fatal("receiver was not woken")
	}
}

func TestReceiveCancelled(t *testing.T) {
	q := New(5, tick.NewManual(0))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := q.Receive(ctx, tick.Forever)
		done <- err
	}()
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Receive = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Receive ignored cancellation")
	}
}

func TestSendResultString(t *testing.T) {
	for r, want := range map[SendResult]string{
		SendOK:           "ok",
		SendErrQueueFull: "queue full",
		SendErrCancelled: "cancelled",
		SendResult(99):   "unknown",
	} {
		if got := r.String(); got != want {
			t.Fatalf("SendResult(%d).String() = %q, want %q", r, got, want)
		}
	}
}

func TestBlockedReceiversIgnoresHandedOffMessage(t *testing.T) {
	ctx := context.Background()
	q := New(5, tick.NewManual(0))

	// A receiver inside the blocking select that has not resumed yet.
	q.waiting.Add(1)
	if n := q.BlockedReceivers(); n != 1 {
		t.Fatalf("BlockedReceivers() = %d, want 1", n)
	}
	if r := q.TrySend(ctx, NewMessage(TagPeriodic, EventPeriodic), 0); r != SendOK {
		t.Fatalf("TrySend = %v", r)
	}
	if n := q.BlockedReceivers(); n != 0 {
		t.Fatalf("BlockedReceivers() with a message on its way = %d, want 0", n)
	}
	if _, err := q.Receive(ctx, 0); err != nil {
		t.Fatal(err)
	}
	if n := q.BlockedReceivers(); n != 1 {
		t.Fatalf("BlockedReceivers() after take = %d, want 1", n)
	}
	q.waiting.Add(-1)

	// Failed sends leave nothing pending.
	full := New(1, tick.NewManual(0))
	full.TrySend(ctx, NewMessage(TagButton1, EventNoChange), 0)
	full.TrySend(ctx, NewMessage(TagButton1, EventNoChange), 0)
	if _, err := full.Receive(ctx, 0); err != nil {
		t.Fatal(err)
	}
	if p := full.pending.Load(); p != 0 {
		t.Fatalf("pending = %d after a dropped send, want 0", p)
	}
}
