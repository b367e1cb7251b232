package rxbuf

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds indicates an access beyond the buffer capacity.
	ErrOutOfBounds = errors.New("out of bounds")
)

// LinkError wraps a transport failure while reading/writing the link.
type LinkError struct {
	Op  string
	Err error
}

// Error implements error.
func (e *LinkError) Error() string {
	return fmt.Sprintf("link %s: %v", e.Op, e.Err)
}

// Unwrap returns the transport error.
func (e *LinkError) Unwrap() error {
	return e.Err
}

func rangeError(start, end, capacity int) error {
	return fmt.Errorf("range [%d, %d) of %d: %w", start, end, capacity, ErrOutOfBounds)
}
