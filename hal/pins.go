// Package hal is the boundary to the board: a typed pin enumeration, the
// GPIO capability the tasks use, the serial console sink and the host-side
// logic analyzer. Register layouts live in the platform adapters only.
package hal

import (
	"sort"

	"tasktrace-go/errcode"
	"tasktrace-go/x/tick"
)

// PinID names a pin by its role, not its number.
type PinID uint8

const (
	Button1 PinID = iota
	Button2
	Button1Analyzer
	Button2Analyzer
	TransmitAnalyzer
	ReceiverAnalyzer
	Load1Analyzer
	Load2Analyzer
	TickHook
	IdleHook

	pinCount
)

var pinNames = [pinCount]string{
	Button1:          "button1",
	Button2:          "button2",
	Button1Analyzer:  "button1_analyzer",
	Button2Analyzer:  "button2_analyzer",
	TransmitAnalyzer: "transmit_analyzer",
	ReceiverAnalyzer: "receiver_analyzer",
	Load1Analyzer:    "load1_analyzer",
	Load2Analyzer:    "load2_analyzer",
	TickHook:         "tick_hook",
	IdleHook:         "idle_hook",
}

func (p PinID) String() string {
	if p < pinCount {
		return pinNames[p]
	}
	return "unknown"
}

// Valid reports whether p is one of the enumerated pins.
func (p PinID) Valid() bool { return p < pinCount }

// IsInput reports whether the pin is sampled rather than driven.
func (p PinID) IsInput() bool { return p == Button1 || p == Button2 }

// ParsePinID maps a pin name back to its PinID.
func ParsePinID(name string) (PinID, error) {
	for i, n := range pinNames {
		if n == name {
			return PinID(i), nil
		}
	}
	return 0, &errcode.E{C: errcode.UnknownPin, Op: "hal.ParsePinID", Msg: name}
}

// AllPins lists every enumerated pin in declaration order.
func AllPins() []PinID {
	ids := make([]PinID, pinCount)
	for i := range ids {
		ids[i] = PinID(i)
	}
	return ids
}

// Board maps pin roles to GPIO numbers.
type Board map[PinID]int

// BoardFromNames builds a Board from a name->number map, rejecting unknown
// names and numbers claimed twice.
func BoardFromNames(m map[string]int) (Board, error) {
	b := Board{}
	used := map[int]PinID{}
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, name := range names {
		id, err := ParsePinID(name)
		if err != nil {
			return nil, err
		}
		num := m[name]
		if prev, taken := used[num]; taken {
			return nil, &errcode.E{C: errcode.InvalidConfig, Op: "hal.BoardFromNames",
				Msg: name + " shares a GPIO with " + prev.String()}
		}
		used[num] = id
		b[id] = num
	}
	return b, nil
}

// validate rejects roles outside the PinID enumeration.
func (b Board) validate(op string) error {
	for id := range b {
		if !id.Valid() {
			return &errcode.E{C: errcode.UnknownPin, Op: op, Msg: id.String()}
		}
	}
	return nil
}

// Number returns the GPIO number wired to id.
func (b Board) Number(id PinID) (int, bool) {
	n, ok := b[id]
	return n, ok
}

// GPIO is the pin capability handed to tasks. Unknown pins read low and
// ignore writes; the board is validated once at bring-up.
type GPIO interface {
	Set(id PinID, level bool)
	Get(id PinID) bool
}

// Observer is told about every level change on a pin.
type Observer interface {
	PinChanged(id PinID, level bool, at tick.Tick)
}

// Observers fans one change out to several observers.
type Observers []Observer

func (obs Observers) PinChanged(id PinID, level bool, at tick.Tick) {
	for _, o := range obs {
		if o != nil {
			o.PinChanged(id, level, at)
		}
	}
}
