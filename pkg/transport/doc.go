// Package transport provides the TCP byte-stream transport for the TVM
// MotionMount protocol.
//
// The protocol uses a single persistent, bidirectional TCP connection
// carrying newline-terminated text lines in both directions. There is no
// framing beyond the newline delimiter and no TLS; the device only speaks
// cleartext on its local network.
//
// The package exposes a small Connection interface so higher layers can be
// tested against in-memory implementations.
package transport
