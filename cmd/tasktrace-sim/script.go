//go:build !rp2040 && !rp2350

package main

import (
	"context"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"tasktrace-go/errcode"
	"tasktrace-go/hal"
	"tasktrace-go/system"
	"tasktrace-go/x/tick"
)

// Script is a stimulus file: input levels to apply at given ticks.
type Script struct {
	Duration uint64  `yaml:"duration"` // ticks
	Events   []Event `yaml:"events"`
}

type Event struct {
	At    uint64 `yaml:"at"`
	Pin   string `yaml:"pin"`
	Level bool   `yaml:"level"`
}

type step struct {
	at    tick.Tick
	pin   hal.PinID
	level bool
}

func loadScript(path string) (Script, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Script{}, err
	}
	return parseScript(raw)
}

func parseScript(raw []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return Script{}, errcode.Wrap(errcode.InvalidConfig, "sim.parseScript", err)
	}
	return s, nil
}

// compile resolves pin names and orders events by tick. Events at the same
// tick keep file order.
func (s Script) compile() ([]step, error) {
	out := make([]step, 0, len(s.Events))
	for _, e := range s.Events {
		id, err := hal.ParsePinID(e.Pin)
		if err != nil {
			return nil, err
		}
		if !id.IsInput() {
			return nil, &errcode.E{C: errcode.UnknownPin, Op: "sim.compile", Msg: e.Pin + " is not an input"}
		}
		out = append(out, step{at: tick.Tick(e.At), pin: id, level: e.Level})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].at < out[j].at })
	return out, nil
}

// runScript drives sys on clk for ticks, applying steps as their tick is
// reached. Each tick starts from a settled system so runs are repeatable.
func runScript(sys *system.System, clk *tick.Manual, io *hal.HostGPIO, steps []step, ticks uint64) error {
	settle := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return sys.Settle(ctx, clk)
	}
	apply := func() {
		for len(steps) > 0 && steps[0].at <= clk.Now() {
			io.Drive(steps[0].pin, steps[0].level)
			steps = steps[1:]
		}
	}

	apply()
	for i := uint64(0); i < ticks; i++ {
		if err := settle(); err != nil {
			return err
		}
		clk.Advance(1)
		apply()
	}
	return settle()
}
