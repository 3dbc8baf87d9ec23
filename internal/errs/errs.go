// Package errs provides lightweight sentinel-error wrapping.
//
// Every package in imgshrink declares its own sentinel errors with errors.New
// and wraps underlying failures with [Wrap] or [Wrapf] so that callers can
// still errors.Is against the sentinel while the wrapped message carries the
// concrete cause.
package errs

import "fmt"

// Wraps cause with sentinel so that errors.Is(result, sentinel) succeeds.
func Wrap(sentinel, cause error) error {
	if cause == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}

// Like [Wrap] but with a formatted message appended after the sentinel.
// format may itself contain %w to additionally chain a cause.
func Wrapf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)
}
