// Package logx is the firmware's line logger. Lines look like
// "Info: [scheduler] started 6 tasks" so they read the same on a UART
// console and a host terminal.
package logx

import (
	"io"
	"os"
	"strings"
	"sync"
)

type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "Debug"
	case LevelWarn:
		return "Warn"
	case LevelError:
		return "Error"
	default:
		return "Info"
	}
}

// ParseLevel maps "debug", "info", "warn" and "error" to a Level.
// Anything else is Info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

var (
	mu    sync.Mutex
	out   io.Writer = os.Stderr
	level           = LevelInfo
)

// SetOutput redirects log lines. A nil writer discards them.
func SetOutput(w io.Writer) {
	mu.Lock()
	if w == nil {
		w = io.Discard
	}
	out = w
	mu.Unlock()
}

// SetLevel drops lines below l.
func SetLevel(l Level) {
	mu.Lock()
	level = l
	mu.Unlock()
}

func Debug(tag string, parts ...string) { logf(LevelDebug, tag, parts) }
func Info(tag string, parts ...string)  { logf(LevelInfo, tag, parts) }
func Warn(tag string, parts ...string)  { logf(LevelWarn, tag, parts) }
func Error(tag string, parts ...string) { logf(LevelError, tag, parts) }

func logf(l Level, tag string, parts []string) {
	mu.Lock()
	defer mu.Unlock()
	if l < level {
		return
	}
	var b []byte
	b = append(b, l.String()...)
	b = append(b, ": ["...)
	b = append(b, tag...)
	b = append(b, ']')
	for _, p := range parts {
		b = append(b, ' ')
		b = append(b, p...)
	}
	b = append(b, '\n')
	_, _ = out.Write(b)
}
