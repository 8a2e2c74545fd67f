package helper

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks a request parameter outside its allowed range.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound marks a missing graph element, e.g. an unknown edge label.
	ErrNotFound = errors.New("not found")
)

// Error wraps an error with the operation that produced it
type Error struct {
	Operation string
	Err       error
}

// NewError wraps err with the given operation name.
// It returns nil if err is nil.
func NewError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Operation: operation, Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Operation, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// InvalidArgument returns a formatted error matching ErrInvalidArgument
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// NotFound returns a formatted error matching ErrNotFound
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}
