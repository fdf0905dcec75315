package errcode

import (
	"errors"
	"io"
	"testing"
)

func TestOf(t *testing.T) {
	for _, c := range []struct {
		err  error
		want Code
	}{
		{nil, OK},
		{Timeout, Timeout},
		{&E{C: UnknownPin, Msg: "pin 99"}, UnknownPin},
		{Wrap(InvalidConfig, "config.Parse", io.ErrUnexpectedEOF), InvalidConfig},
		{errors.New("boom"), Error},
	} {
		if got := Of(c.err); got != c.want {
			t.Fatalf("Of(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(InvalidConfig, "config.Parse", io.ErrUnexpectedEOF)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatal("errors.Is should reach the cause")
	}
	if !errors.Is(err, InvalidConfig) {
		t.Fatal("errors.Is should match the code")
	}
	if got, want := err.Error(), "config.Parse: invalid_config: unexpected EOF"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
