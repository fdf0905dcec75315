package tracereport

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"tasktrace-go/hal"
	"tasktrace-go/x/logx"
	"tasktrace-go/x/tick"
)

func TestFormat(t *testing.T) {
	got := Format(hal.PinStats{Pin: hal.Load1Analyzer, Rises: 12, Period: 10, High: 3, MaxHigh: 4})
	want := "load1_analyzer rises=12 period=10 high=3 max=4 duty=30%"
	if got != want {
		t.Fatalf("Format() = %q, want %q", got, want)
	}
	if got := Format(hal.PinStats{Pin: hal.TickHook, Rises: 1}); !strings.HasSuffix(got, "duty=0%") {
		t.Fatalf("Format() with no period = %q", got)
	}
}

type syncBuf struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuf) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuf) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestServiceReportsOnInterval(t *testing.T) {
	out := &syncBuf{}
	logx.SetOutput(out)
	t.Cleanup(func() { logx.SetOutput(nil) })

	clk := tick.NewManual(0)
	an := hal.NewAnalyzer(0)
	an.PinChanged(hal.TransmitAnalyzer, true, 0)
	an.PinChanged(hal.TransmitAnalyzer, false, 2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := New(an, clk, 100).Start(ctx); err != nil {
		t.Fatal(err)
	}
	if err := clk.BlockUntil(ctx, 1); err != nil {
		t.Fatal(err)
	}
	clk.Advance(100)

	deadline := time.Now().Add(time.Second)
	for !strings.Contains(out.String(), "transmit_analyzer rises=1") {
		if time.Now().After(deadline) {
			t.Fatalf("no report logged, got %q", out.String())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestServiceDisabled(t *testing.T) {
	clk := tick.NewManual(0)
	if err := New(hal.NewAnalyzer(0), clk, 0).Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if clk.Waiters() != 0 {
		t.Fatal("disabled reporter should not wait on the clock")
	}
}
