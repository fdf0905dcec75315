//go:build rp2040 || rp2350

package hal

import "machine"

// rp2GPIO drives board pins through machine.Pin. Level changes are watched
// by an external analyzer, so there is no observer here.
type rp2GPIO struct {
	pins [pinCount]machine.Pin
	have [pinCount]bool
}

func newRP2GPIO(b Board) (*rp2GPIO, error) {
	if err := b.validate("hal.newRP2GPIO"); err != nil {
		return nil, err
	}
	g := &rp2GPIO{}
	for _, id := range AllPins() {
		n, ok := b.Number(id)
		if !ok {
			continue
		}
		p := machine.Pin(n)
		if id.IsInput() {
			p.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
		} else {
			p.Configure(machine.PinConfig{Mode: machine.PinOutput})
			p.Low()
		}
		g.pins[id] = p
		g.have[id] = true
	}
	return g, nil
}

func (g *rp2GPIO) Set(id PinID, level bool) {
	if id.Valid() && g.have[id] {
		g.pins[id].Set(level)
	}
}

func (g *rp2GPIO) Get(id PinID) bool {
	if id.Valid() && g.have[id] {
		return g.pins[id].Get()
	}
	return false
}
