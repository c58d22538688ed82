// Package interaction implements the request queue and correlator for the
// TVM MotionMount protocol.
//
// The protocol interleaves responses and unsolicited notifications on one
// stream, and error responses ("#NNN") carry no echoed key. Attribution is
// therefore strictly positional: requests are pipelined one at a time in
// FIFO order, a matching "key = value" line resolves the queue head, and an
// error line always belongs to the current head. Inbound key/value lines
// whose key does not match the head are notifications.
//
// Each request carries a single-assignment result slot: it is resolved
// exactly once, either by the reader loop (value, accepted, or device
// error) or by session teardown (connection loss).
package interaction
