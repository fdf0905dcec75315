package types

import (
	"strings"

	"tasktrace-go/errcode"
)

// ------------------------
// Serial
// ------------------------

type Parity uint8

const (
	ParityNone Parity = iota
	ParityEven
	ParityOdd
)

func (p Parity) String() string {
	switch p {
	case ParityEven:
		return "even"
	case ParityOdd:
		return "odd"
	default:
		return "none"
	}
}

// UnmarshalText accepts "none", "even" and "odd" (any case). Empty is none.
func (p *Parity) UnmarshalText(b []byte) error {
	switch s := strings.ToLower(strings.TrimSpace(string(b))); s {
	case "", "none":
		*p = ParityNone
	case "even":
		*p = ParityEven
	case "odd":
		*p = ParityOdd
	default:
		return &errcode.E{C: errcode.InvalidConfig, Op: "types.Parity", Msg: s}
	}
	return nil
}

func (p Parity) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// SerialConfig selects and formats the console UART.
type SerialConfig struct {
	Port     string `yaml:"port"` // "uart0" | "uart1"
	Baud     uint32 `yaml:"baud"`
	TX       int    `yaml:"tx"`
	RX       int    `yaml:"rx"`
	DataBits uint8  `yaml:"data_bits,omitempty"`
	StopBits uint8  `yaml:"stop_bits,omitempty"`
	Parity   Parity `yaml:"parity,omitempty"`
}
