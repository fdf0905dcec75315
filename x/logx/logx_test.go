package logx

import (
	"bytes"
	"testing"
)

func TestLevelFilterAndFormat(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(LevelInfo)
	t.Cleanup(func() {
		SetOutput(nil)
		SetLevel(LevelInfo)
	})

	Debug("queue", "hidden")
	Info("scheduler", "started", "6", "tasks")
	Warn("config", "clamped")

	want := "Info: [scheduler] started 6 tasks\nWarn: [config] clamped\n"
	if got := buf.String(); got != want {
		t.Fatalf("log output = %q, want %q", got, want)
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	} {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
