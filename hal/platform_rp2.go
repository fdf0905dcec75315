//go:build rp2040 || rp2350

package hal

import (
	"time"

	"tasktrace-go/types"
	"tasktrace-go/x/tick"
)

const (
	Device = "pico"
	// Allow USB CDC to enumerate before we print.
	BootDelay = 2 * time.Second
)

// NewPlatform configures the board pins and the console UART. Timing is
// observed on the real pins, so Analyzer is nil.
func NewPlatform(cfg types.SystemConfig, _ tick.Clock) (*Platform, error) {
	b, err := boardFor(cfg)
	if err != nil {
		return nil, err
	}
	g, err := newRP2GPIO(b)
	if err != nil {
		return nil, err
	}
	u, err := newRP2UART(cfg.Serial)
	if err != nil {
		return nil, err
	}
	return &Platform{Board: b, GPIO: g, UART: u}, nil
}
