//go:build !rp2040 && !rp2350

package hal

import (
	"sync"

	"tasktrace-go/x/tick"
)

// FakePin is a host-side pin: a remembered level and direction.
type FakePin struct {
	number  int
	level   bool
	modeOut bool
}

func (p *FakePin) Number() int { return p.number }

// HostGPIO implements GPIO for host builds and tests. Every level change is
// timestamped on the clock and reported to the observer.
type HostGPIO struct {
	mu   sync.Mutex
	pins map[PinID]*FakePin
	clk  tick.Clock
	obs  Observer
}

// NewHostGPIO creates one FakePin per board entry: buttons as inputs,
// everything else as outputs driven low.
func NewHostGPIO(b Board, clk tick.Clock, obs Observer) (*HostGPIO, error) {
	if err := b.validate("hal.NewHostGPIO"); err != nil {
		return nil, err
	}
	g := &HostGPIO{pins: map[PinID]*FakePin{}, clk: clk, obs: obs}
	for _, id := range AllPins() {
		if n, ok := b.Number(id); ok {
			g.pins[id] = &FakePin{number: n, modeOut: !id.IsInput()}
		}
	}
	return g, nil
}

func (g *HostGPIO) Set(id PinID, level bool) { g.write(id, level, true) }

// Drive sets the level seen on an input pin, as a button press would.
func (g *HostGPIO) Drive(id PinID, level bool) { g.write(id, level, false) }

// Toggle inverts the level of any pin.
func (g *HostGPIO) Toggle(id PinID) { g.write(id, !g.Get(id), false) }

func (g *HostGPIO) write(id PinID, level bool, output bool) {
	g.mu.Lock()
	p, ok := g.pins[id]
	if !ok || (output && !p.modeOut) || p.level == level {
		g.mu.Unlock()
		return
	}
	p.level = level
	obs := g.obs
	g.mu.Unlock()

	if obs != nil {
		var now tick.Tick
		if g.clk != nil {
			now = g.clk.Now()
		}
		obs.PinChanged(id, level, now)
	}
}

func (g *HostGPIO) Get(id PinID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if p, ok := g.pins[id]; ok {
		return p.level
	}
	return false
}

// Pin exposes the underlying FakePin for tests.
func (g *HostGPIO) Pin(id PinID) (*FakePin, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.pins[id]
	return p, ok
}
