package tick

import (
	"context"
	"sync"
)

// Manual is a clock that only moves when told to. Tests and the scripted
// simulator drive it one tick at a time so that task releases are exact.
type Manual struct {
	mu      sync.Mutex
	cond    *sync.Cond
	now     Tick
	waiters map[*waiter]struct{}
	hooks   []Hook
}

type waiter struct {
	at Tick
	ch chan struct{}
}

// NewManual returns a manual clock reading start.
func NewManual(start Tick) *Manual {
	m := &Manual{now: start, waiters: map[*waiter]struct{}{}}
	m.cond = sync.NewCond(&m.mu)
	return m
}

func (m *Manual) Now() Tick {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) After(d Ticks) (<-chan struct{}, func()) {
	if d == 0 {
		return closedCh, noop
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.until(m.now.Add(d))
}

func (m *Manual) Until(at Tick) (<-chan struct{}, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if at <= m.now {
		return closedCh, noop
	}
	return m.until(at)
}

// until registers a waiter for at. m.mu must be held.
func (m *Manual) until(at Tick) (<-chan struct{}, func()) {
	w := &waiter{at: at, ch: make(chan struct{})}
	m.waiters[w] = struct{}{}
	m.cond.Broadcast()
	return w.ch, func() {
		m.mu.Lock()
		if _, ok := m.waiters[w]; ok {
			delete(m.waiters, w)
			m.cond.Broadcast()
		}
		m.mu.Unlock()
	}
}

// OnTick registers a hook run after every tick boundary crossed by Advance.
func (m *Manual) OnTick(h Hook) {
	if h == nil {
		return
	}
	m.mu.Lock()
	m.hooks = append(m.hooks, h)
	m.mu.Unlock()
}

// Advance moves the clock forward d ticks, one boundary at a time, releasing
// due waiters and running tick hooks at each boundary.
func (m *Manual) Advance(d Ticks) {
	for i := Ticks(0); i < d; i++ {
		m.mu.Lock()
		m.now++
		now := m.now
		for w := range m.waiters {
			if w.at <= now {
				close(w.ch)
				delete(m.waiters, w)
			}
		}
		hooks := m.hooks
		m.cond.Broadcast()
		m.mu.Unlock()

		for _, h := range hooks {
			h(now)
		}
	}
}

// AdvanceTo moves the clock forward to t. Earlier targets are ignored.
func (m *Manual) AdvanceTo(t Tick) {
	m.Advance(t.Since(m.Now()))
}

// Waiters reports how many After waits are pending.
func (m *Manual) Waiters() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.waiters)
}

// BlockUntil waits until at least n After waits are pending or ctx is done.
func (m *Manual) BlockUntil(ctx context.Context, n int) error {
	stop := context.AfterFunc(ctx, func() {
		m.mu.Lock()
		m.cond.Broadcast()
		m.mu.Unlock()
	})
	defer stop()

	m.mu.Lock()
	defer m.mu.Unlock()
	for len(m.waiters) < n {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.cond.Wait()
	}
	return nil
}
