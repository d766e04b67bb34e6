package circuit

import (
	"errors"
	"fmt"
)

// Domain errors for amplifier evaluation.
var (
	// ErrInvalidParameter indicates a circuit parameter outside its valid range.
	ErrInvalidParameter = errors.New("circuit: invalid parameter")

	// ErrInvalidArgument indicates a bad argument to a sampling operation.
	ErrInvalidArgument = errors.New("circuit: invalid argument")
)

// InvalidParameterError wraps ErrInvalidParameter with the offending field.
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s: %s=%g: %s", ErrInvalidParameter, e.Field, e.Value, e.Reason)
}

func (e *InvalidParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// InvalidArgumentError wraps ErrInvalidArgument with the offending argument.
type InvalidArgumentError struct {
	Name   string
	Value  int
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: %s=%d: %s", ErrInvalidArgument, e.Name, e.Value, e.Reason)
}

func (e *InvalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

func checkSamples(n int) error {
	if n <= 0 {
		return &InvalidArgumentError{Name: "samples", Value: n, Reason: "must be positive"}
	}
	return nil
}
