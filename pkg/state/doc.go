// Package state holds the cached device-state snapshot and the listener
// dispatcher of a MotionMount session.
//
// The cache stores the last-known values of a fixed set of well-known
// properties. It is mutated only by the session's reader path, as a side
// effect of every parsed "key = value" line, and may be read from any
// goroutine. Values are unset until first observed and survive a
// disconnect until the next connect.
package state
