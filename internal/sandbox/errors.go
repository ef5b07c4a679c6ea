package sandbox

import (
	"errors"
	"fmt"
)

var (
	// ErrPresentation indicates the display surface rejected a frame.
	ErrPresentation = errors.New("sandbox: presentation failed")

	// ErrTerminated indicates a tick was requested after the loop ended.
	ErrTerminated = errors.New("sandbox: loop terminated")
)

// PresentError is fatal: the loop is Terminated once it is returned.
type PresentError struct {
	Tick uint64
	Err  error
}

func (e *PresentError) Error() string {
	return fmt.Sprintf("tick %d: %v: %v", e.Tick, ErrPresentation, e.Err)
}

func (e *PresentError) Unwrap() []error {
	return []error{ErrPresentation, e.Err}
}
