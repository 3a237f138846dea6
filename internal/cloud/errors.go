package cloud

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned for a zero point count or mismatched array lengths.
var ErrInvalidArgument = errors.New("cloud: invalid argument")

// ArgumentError names the offending argument and wraps ErrInvalidArgument.
type ArgumentError struct {
	Arg    string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidArgument, e.Arg, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// InvalidArgument builds an ArgumentError.
func InvalidArgument(arg, format string, a ...any) error {
	return &ArgumentError{Arg: arg, Reason: fmt.Sprintf(format, a...)}
}
