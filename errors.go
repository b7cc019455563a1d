package replot

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned by any mutating call on a figure that has
	// already been closed.
	ErrClosed = errors.New("replot: figure is closed")

	// ErrGridAlreadySet is returned by SetGrid when the figure already has
	// a grid layout.
	ErrGridAlreadySet = errors.New("replot: grid already set")

	// ErrConcurrentAccess is returned when two goroutines call into the
	// same open figure at once. A figure is single-owner by contract.
	ErrConcurrentAccess = errors.New("replot: concurrent use of open figure")

	// ErrReservedCell is returned when a plot names the default cell glyph
	// explicitly.
	ErrReservedCell = errors.New("replot: '_' is a reserved cell glyph")
)

// BackendError wraps a failure from the plotting backend, naming the call
// that failed.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("replot: backend %s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// ReplayError collects the backend failures from one flush. Replay is
// best-effort: one failing draw call does not stop the remaining operations,
// so every failure surfaces here rather than only the first.
type ReplayError struct {
	Errs []error
}

func (e *ReplayError) Error() string {
	if len(e.Errs) == 1 {
		return fmt.Sprintf("replot: replay failed: %v", e.Errs[0])
	}
	return fmt.Sprintf("replot: replay failed: %d backend calls failed, first: %v", len(e.Errs), e.Errs[0])
}

func (e *ReplayError) Unwrap() []error { return e.Errs }
