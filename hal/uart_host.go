//go:build !rp2040 && !rp2350

package hal

import (
	"io"
	"sync"

	"tasktrace-go/x/ring"

	"tinygo.org/x/drivers"
)

// rxFIFO matches the depth of a small hardware RX buffer.
const rxFIFO = 256

var _ drivers.UART = (*HostUART)(nil)

// HostUART implements drivers.UART on the host. TX goes to an io.Writer;
// RX is fed by Inject into a bounded FIFO.
type HostUART struct {
	mu  sync.Mutex
	out io.Writer
	rx  *ring.Ring
}

// NewHostUART sends TX bytes to out; nil discards them.
func NewHostUART(out io.Writer) *HostUART {
	if out == nil {
		out = io.Discard
	}
	return &HostUART{out: out, rx: ring.New(rxFIFO)}
}

func (u *HostUART) Write(p []byte) (int, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.out.Write(p)
}

// Read never blocks; it returns 0, nil when nothing is buffered.
func (u *HostUART) Read(p []byte) (int, error) { return u.rx.Read(p), nil }

func (u *HostUART) Buffered() int { return u.rx.Len() }

// Readable receives a token when RX goes from empty to non-empty.
func (u *HostUART) Readable() <-chan struct{} { return u.rx.Readable() }

// Inject queues bytes as if they had arrived on RX. Bytes beyond the FIFO
// depth are lost; the count accepted is returned.
func (u *HostUART) Inject(p []byte) int { return u.rx.Write(p) }
