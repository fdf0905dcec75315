// Package ring is a fixed-size single-producer single-consumer byte ring.
// The host UART uses it as its RX FIFO, so overflow drops bytes the way the
// hardware does.
package ring

import "sync/atomic"

type Ring struct {
	buf  []byte
	mask uint32
	rd   atomic.Uint32 // consumer index (monotonic)
	wr   atomic.Uint32 // producer index (monotonic)

	readable chan struct{} // empty -> non-empty edge
}

// New returns a ring of size bytes. size must be a power of two >= 2.
func New(size int) *Ring {
	if size < 2 || size&(size-1) != 0 {
		panic("ring: size must be power of two >= 2")
	}
	return &Ring{
		buf:      make([]byte, size),
		mask:     uint32(size - 1),
		readable: make(chan struct{}, 1),
	}
}

// Len is the number of unread bytes.
func (r *Ring) Len() int { return int(r.wr.Load() - r.rd.Load()) }

// Write copies as much of src as fits and reports how much that was.
func (r *Ring) Write(src []byte) int {
	rd, wr := r.rd.Load(), r.wr.Load()
	before := wr - rd
	n := min(len(src), len(r.buf)-int(before))
	if n <= 0 {
		return 0
	}
	i := int(wr & r.mask)
	first := copy(r.buf[i:], src[:n])
	copy(r.buf, src[first:n])
	r.wr.Store(wr + uint32(n))

	if before == 0 {
		select {
		case r.readable <- struct{}{}:
		default:
		}
	}
	return n
}

// Read copies up to len(dst) unread bytes into dst.
func (r *Ring) Read(dst []byte) int {
	rd, wr := r.rd.Load(), r.wr.Load()
	n := min(len(dst), int(wr-rd))
	if n <= 0 {
		return 0
	}
	i := int(rd & r.mask)
	first := copy(dst[:n], r.buf[i:])
	copy(dst[first:n], r.buf)
	r.rd.Store(rd + uint32(n))
	return n
}

// Readable receives a token when the ring goes from empty to non-empty.
// Tokens coalesce.
func (r *Ring) Readable() <-chan struct{} { return r.readable }
