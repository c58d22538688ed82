// Package auth implements the authentication gate of the TVM MotionMount
// protocol: pin validation and backoff computation from the device's
// authentication status byte.
package auth

import (
	"errors"
	"time"
)

// Pin domain. Pins are four-digit codes; 0 is reserved by the device.
const (
	MinPin = 1
	MaxPin = 9999
)

// authenticatedBit marks an authenticated session in the status byte.
// The remaining low bits count consecutive authentication failures.
const authenticatedBit = 0x80

// freeAttempts is the number of consecutive failures tolerated before the
// device starts enforcing a delay between attempts.
const freeAttempts = 3

// backoffPerFailure is the advisory delay added per failure beyond the
// free attempts.
const backoffPerFailure = 3 * time.Second

// ErrInvalidPin is returned when a pin is outside [MinPin, MaxPin].
var ErrInvalidPin = errors.New("pin must be in the range [1...9999]")

// Status is the device's authentication status byte. Bit 0x80 is set when
// the session is authenticated; the low bits hold the consecutive-failure
// counter.
type Status byte

// IsAuthenticated reports whether the session is authenticated.
func (s Status) IsAuthenticated() bool {
	return s&authenticatedBit != 0
}

// FailureCount returns the consecutive-failure counter.
func (s Status) FailureCount() int {
	return int(s &^ authenticatedBit)
}

// CanAuthenticate reports whether another authentication attempt is
// worthwhile right now. It returns true when the session is authenticated
// or the failure counter is at most three; otherwise it returns false with
// an advisory backoff of three seconds per excess failure.
func (s Status) CanAuthenticate() (bool, time.Duration) {
	if s.IsAuthenticated() {
		return true, 0
	}
	failures := s.FailureCount()
	if failures <= freeAttempts {
		return true, 0
	}
	return false, time.Duration(failures-freeAttempts) * backoffPerFailure
}

// ValidatePin checks that pin is within the accepted domain. It performs
// no I/O; callers use it to fail fast before touching the network.
func ValidatePin(pin int) error {
	if pin < MinPin || pin > MaxPin {
		return ErrInvalidPin
	}
	return nil
}
