package params

import (
	"errors"
	"fmt"
	"strconv"
)

// Validation failures. All of them are user-input errors and recoverable.
var (
	// ErrNotANumber indicates a raw value that is not a plain finite decimal.
	ErrNotANumber = errors.New("params: not a number")

	// ErrNonPositiveMass indicates a mass that is zero or negative.
	ErrNonPositiveMass = errors.New("params: mass must be greater than 0")

	// ErrVelocityOutOfRange indicates |velocity| above the configured ceiling.
	ErrVelocityOutOfRange = errors.New("params: velocity out of range")
)

// ValidationError wraps a validation failure with the offending field.
type ValidationError struct {
	Field string
	Raw   string
	Limit float64
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Raw, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Message is the text shown to the user on the setup screen.
func (e *ValidationError) Message() string {
	switch {
	case errors.Is(e.Err, ErrNonPositiveMass):
		return "Mass must be greater than 0"
	case errors.Is(e.Err, ErrVelocityOutOfRange):
		limit := strconv.FormatFloat(e.Limit, 'f', -1, 64)
		return "Velocity must be between -" + limit + " and " + limit
	default:
		return "Invalid input"
	}
}

// Message returns the user-facing text for any error returned by Validate.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message()
	}
	return "Invalid input"
}
