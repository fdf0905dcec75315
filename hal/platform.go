package hal

import (
	"tasktrace-go/types"

	"tinygo.org/x/drivers"
)

// Platform is what bring-up hands to the system: pins, the console UART
// and, on host builds, the analyzer watching the pins.
type Platform struct {
	Board    Board
	GPIO     GPIO
	UART     drivers.UART
	Analyzer *Analyzer
}

func boardFor(cfg types.SystemConfig) (Board, error) {
	return BoardFromNames(cfg.Pins)
}
