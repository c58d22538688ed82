// Package reconnect keeps a mount session alive across connection loss.
//
// A Mount deliberately tears its whole session down on stream errors and
// request timeouts; it never dials on its own. For long-running callers
// that want the session back after a device reboot or network blip, the
// Manager re-dials with exponential backoff and jitter until the session
// is Ready again or its context is cancelled.
//
// Reconnection is opt-in. Callers that prefer to handle connection loss
// themselves simply don't use this package.
package reconnect
