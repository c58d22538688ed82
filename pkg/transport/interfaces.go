package transport

import "net"

// Connection represents an open stream to a MotionMount.
// Implemented by ClientConn.
type Connection interface {
	// Send writes raw bytes to the stream.
	Send(data []byte) error

	// ReadLine reads the next newline-terminated line, with the newline
	// and surrounding whitespace stripped. It blocks until a line is
	// available, the peer closes the stream (io.EOF) or the connection
	// is closed locally.
	ReadLine() (string, error)

	// RemoteAddr returns the remote network address.
	RemoteAddr() net.Addr

	// Close closes the connection. Safe to call multiple times.
	Close() error
}

// Compile-time interface satisfaction check.
var _ Connection = (*ClientConn)(nil)
