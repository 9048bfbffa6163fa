package parking

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument marks a precondition or invariant violation. It signals
// a caller bug or an out-of-sequence operation, never a transient fault.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrNotFound marks a lookup miss in the garage registry.
var ErrNotFound = errors.New("not found")

func invalidArgf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}
