//go:build !rp2040 && !rp2350

package main

import (
	"bufio"
	"io"
	"strconv"
	"time"

	"github.com/google/shlex"

	"tasktrace-go/errcode"
	"tasktrace-go/hal"
)

type verb uint8

const (
	verbPress verb = iota
	verbRelease
	verbToggle
	verbReport
	verbQuit
)

type command struct {
	verb verb
	pin  hal.PinID
}

var buttons = [...]hal.PinID{1: hal.Button1, 2: hal.Button2}

// parseCommand understands "press N", "release N", "toggle N", "report"
// and "quit", with shell-style quoting.
func parseCommand(line string) (command, bool, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return command{}, false, errcode.Wrap(errcode.Error, "sim.parseCommand", err)
	}
	if len(args) == 0 {
		return command{}, false, nil
	}
	bad := &errcode.E{C: errcode.Error, Op: "sim.parseCommand", Msg: line}
	switch args[0] {
	case "report":
		return command{verb: verbReport}, true, nil
	case "quit", "exit":
		return command{verb: verbQuit}, true, nil
	case "press", "release", "toggle":
	default:
		return command{}, false, bad
	}
	if len(args) != 2 {
		return command{}, false, bad
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 1 || n >= len(buttons) {
		return command{}, false, &errcode.E{C: errcode.UnknownPin, Op: "sim.parseCommand", Msg: args[1]}
	}
	c := command{pin: buttons[n]}
	switch args[0] {
	case "press":
		c.verb = verbPress
	case "release":
		c.verb = verbRelease
	default:
		c.verb = verbToggle
	}
	return c, true, nil
}

// console applies commands read from r until quit or EOF.
type console struct {
	io     *hal.HostGPIO
	report func()
	errOut io.Writer
}

func (c *console) run(r io.Reader) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		cmd, ok, err := parseCommand(sc.Text())
		if err != nil {
			io.WriteString(c.errOut, err.Error()+"\n")
			continue
		}
		if !ok {
			continue
		}
		switch cmd.verb {
		case verbPress:
			c.io.Drive(cmd.pin, true)
		case verbRelease:
			c.io.Drive(cmd.pin, false)
		case verbToggle:
			c.io.Toggle(cmd.pin)
		case verbReport:
			c.report()
		case verbQuit:
			return
		}
	}
}

// rxReader streams the UART's RX FIFO. It ends once done is closed and the
// FIFO has drained.
type rxReader struct {
	u    *hal.HostUART
	done <-chan struct{}
}

func (r rxReader) Read(p []byte) (int, error) {
	for {
		if r.u.Buffered() > 0 {
			return r.u.Read(p)
		}
		select {
		case <-r.done:
			if r.u.Buffered() > 0 {
				return r.u.Read(p)
			}
			return 0, io.EOF
		case <-r.u.Readable():
		}
	}
}

// feed copies r onto the UART's RX line, as a terminal attached to the
// console would, waiting for room while the FIFO is full. done is closed
// once r is exhausted.
func feed(u *hal.HostUART, r io.Reader, done chan<- struct{}) {
	defer close(done)
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		for p := buf[:n]; len(p) > 0; {
			p = p[u.Inject(p):]
			if len(p) > 0 {
				time.Sleep(time.Millisecond)
			}
		}
		if err != nil {
			return
		}
	}
}
