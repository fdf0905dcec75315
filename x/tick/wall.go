package tick

import (
	"context"
	"time"
)

// Wall is a real-time clock. Tick 0 is the moment the clock was created.
type Wall struct {
	start time.Time
	per   time.Duration
}

// NewWall returns a clock whose ticks last per. A non-positive per falls
// back to one millisecond.
func NewWall(per time.Duration) *Wall {
	if per <= 0 {
		per = time.Millisecond
	}
	return &Wall{start: time.Now(), per: per}
}

// Period returns the length of one tick.
func (w *Wall) Period() time.Duration { return w.per }

func (w *Wall) Now() Tick {
	return Tick(time.Since(w.start) / w.per)
}

func (w *Wall) After(d Ticks) (<-chan struct{}, func()) {
	if d == 0 {
		return closedCh, noop
	}
	return w.Until(w.Now().Add(d))
}

// Until releases on the boundary of tick at, not a duration after the call.
func (w *Wall) Until(at Tick) (<-chan struct{}, func()) {
	due := w.start.Add(time.Duration(at) * w.per)
	wait := time.Until(due)
	if wait <= 0 {
		return closedCh, noop
	}
	ch := make(chan struct{})
	t := time.AfterFunc(wait, func() { close(ch) })
	return ch, func() { t.Stop() }
}

// StartTick runs h on every tick boundary until ctx is done.
func (w *Wall) StartTick(ctx context.Context, h Hook) {
	if h == nil {
		return
	}
	go func() {
		t := time.NewTicker(w.per)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				h(w.Now())
			}
		}
	}()
}
