//go:build !rp2040 && !rp2350

package hal

import (
	"os"

	"tasktrace-go/types"
	"tasktrace-go/x/tick"
)

const (
	// Device selects the embedded config for host builds.
	Device = "host"
	// BootDelay is how long main waits before its first output.
	BootDelay = 0

	analyzerLog = 4096
)

// NewPlatform builds host pins watched by an Analyzer and a console UART on
// stdout.
func NewPlatform(cfg types.SystemConfig, clk tick.Clock) (*Platform, error) {
	b, err := boardFor(cfg)
	if err != nil {
		return nil, err
	}
	an := NewAnalyzer(analyzerLog)
	g, err := NewHostGPIO(b, clk, an)
	if err != nil {
		return nil, err
	}
	return &Platform{Board: b, GPIO: g, UART: NewHostUART(os.Stdout), Analyzer: an}, nil
}
