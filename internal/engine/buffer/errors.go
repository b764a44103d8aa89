package buffer

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by *ValidationError.
var (
	ErrRowOutOfRange    = errors.New("buffer: row out of range")
	ErrColumnOutOfRange = errors.New("buffer: column out of range")
)

// ValidationError reports a position outside the document.
type ValidationError struct {
	Position Position
	Err      error
}

// Error implements error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s at %s", e.Err, e.Position)
}

// Unwrap returns ErrRowOutOfRange or ErrColumnOutOfRange.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
