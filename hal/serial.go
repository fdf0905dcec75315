package hal

import (
	"bytes"

	"tinygo.org/x/drivers"
)

// Serial is the outbound console. Writes are fire-and-forget: there is no
// acknowledgement and no back-pressure.
type Serial interface {
	PutString(s []byte)
}

// UARTSerial writes console strings through a TinyGo UART.
type UARTSerial struct {
	u drivers.UART
}

func NewUARTSerial(u drivers.UART) *UARTSerial { return &UARTSerial{u: u} }

// PutString writes s up to its first NUL. Write errors are dropped.
func (s *UARTSerial) PutString(p []byte) {
	if i := bytes.IndexByte(p, 0); i >= 0 {
		p = p[:i]
	}
	if len(p) == 0 || s.u == nil {
		return
	}
	_, _ = s.u.Write(p)
}
