//go:build rp2040 || rp2350

package hal

import (
	"machine"

	"tasktrace-go/errcode"
	"tasktrace-go/types"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers"
)

var _ drivers.UART = (*rp2UART)(nil)

// rp2UART adapts uartx to drivers.UART.
type rp2UART struct{ u *uartx.UART }

func (p *rp2UART) Write(b []byte) (int, error) { return p.u.Write(b) }
func (p *rp2UART) Read(b []byte) (int, error)  { return p.u.Read(b) }
func (p *rp2UART) Buffered() int               { return p.u.Buffered() }

func newRP2UART(cfg types.SerialConfig) (*rp2UART, error) {
	var hw *uartx.UART
	switch cfg.Port {
	case "uart0", "":
		hw = uartx.UART0
	case "uart1":
		hw = uartx.UART1
	default:
		return nil, &errcode.E{C: errcode.InvalidConfig, Op: "hal.newRP2UART", Msg: "unknown port " + cfg.Port}
	}
	// Defaults inside uartx apply if zero.
	if err := hw.Configure(uartx.UARTConfig{
		BaudRate: cfg.Baud,
		TX:       machine.Pin(cfg.TX),
		RX:       machine.Pin(cfg.RX),
	}); err != nil {
		return nil, errcode.Wrap(errcode.InvalidConfig, "hal.newRP2UART", err)
	}
	if cfg.DataBits != 0 {
		var par uartx.UARTParity
		switch cfg.Parity {
		case types.ParityEven:
			par = uartx.ParityEven
		case types.ParityOdd:
			par = uartx.ParityOdd
		default:
			par = uartx.ParityNone
		}
		stop := cfg.StopBits
		if stop == 0 {
			stop = 1
		}
		if err := hw.SetFormat(cfg.DataBits, stop, par); err != nil {
			return nil, errcode.Wrap(errcode.InvalidConfig, "hal.newRP2UART", err)
		}
	}
	return &rp2UART{u: hw}, nil
}
