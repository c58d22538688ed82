package mount

import (
	"errors"
	"fmt"
)

// Session errors.
var (
	// ErrNotConnected is returned when an operation requires an active
	// session, and is the error every request pending at disconnect
	// time fails with.
	ErrNotConnected = errors.New("not connected")

	// ErrAlreadyConnected is returned by Connect on an active session.
	ErrAlreadyConnected = errors.New("already connected")

	// ErrRequestTimeout is returned when the device did not answer a
	// request within the configured request timeout. The session is
	// disconnected as a side effect.
	ErrRequestTimeout = errors.New("request timed out")
)

// ValidationError is returned when an operation parameter is outside its
// domain. No I/O has happened when it is returned.
type ValidationError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %d out of range [%d...%d]", e.Field, e.Value, e.Min, e.Max)
}
