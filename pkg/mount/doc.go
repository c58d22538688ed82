// Package mount provides the client session for a TVM MotionMount.
//
// A Mount owns one TCP connection to the device and a single background
// reader goroutine. Requests are pipelined strictly: each request is
// written only after the previous one has completed, and inbound lines
// are attributed to pending requests purely by arrival order, because
// device error lines carry no key.
//
// Inbound lines that do not resolve a pending request are notifications;
// they update the state cache and fire registered listeners. The cache
// holds the last-observed value of every well-known property and is
// readable without I/O.
//
// All blocking operations take a context and are additionally bounded by
// the configured request timeout. A timed-out request leaves the stream
// position unknowable, so timeouts tear the whole session down rather
// than risk misattributed responses.
package mount
