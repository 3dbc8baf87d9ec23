package errs

import (
	"errors"
	"testing"
)

var sentinel = errors.New("errs: sentinel")

func TestWrapNilCauseReturnsNil(t *testing.T) {
	if err := Wrap(sentinel, nil); err != nil {
		t.Errorf("Wrap(sentinel, nil) = %v, want nil", err)
	}
}

func TestWrapPreservesSentinelAndCause(t *testing.T) {
	cause := errors.New("underlying failure")
	err := Wrap(sentinel, cause)

	if !errors.Is(err, sentinel) {
		t.Error("Wrap result does not match sentinel via errors.Is")
	}
	if !errors.Is(err, cause) {
		t.Error("Wrap result does not match cause via errors.Is")
	}
}

func TestWrapfFormatsMessage(t *testing.T) {
	err := Wrapf(sentinel, "bad value %d", 42)

	if !errors.Is(err, sentinel) {
		t.Error("Wrapf result does not match sentinel via errors.Is")
	}
	want := "errs: sentinel: bad value 42"
	if err.Error() != want {
		t.Errorf("Wrapf().Error() = %q, want %q", err.Error(), want)
	}
}
