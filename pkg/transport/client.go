package transport

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"
)

// Transport errors.
var (
	// ErrConnectionClosed indicates the connection was closed locally.
	ErrConnectionClosed = errors.New("connection closed")

	// ErrLineTooLong indicates an inbound line exceeded MaxLineSize.
	ErrLineTooLong = errors.New("line exceeds maximum length")
)

// Default configuration values.
const (
	// DefaultConnectTimeout bounds the TCP dial.
	DefaultConnectTimeout = 15 * time.Second

	// MaxLineSize is the maximum accepted inbound line length,
	// newline included. Device lines are short; anything beyond this
	// indicates a broken stream and fails the read with ErrLineTooLong.
	MaxLineSize = 4096
)

// ClientConfig configures a MotionMount transport client.
type ClientConfig struct {
	// ConnectTimeout bounds the TCP dial (default: 15s).
	ConnectTimeout time.Duration
}

// Client dials MotionMount devices.
type Client struct {
	config ClientConfig
}

// NewClient creates a new transport client.
func NewClient(config ClientConfig) *Client {
	if config.ConnectTimeout == 0 {
		config.ConnectTimeout = DefaultConnectTimeout
	}
	return &Client{config: config}
}

// Connect establishes a connection to the specified address ("host:port").
func (c *Client) Connect(ctx context.Context, address string) (*ClientConn, error) {
	// Apply timeout from config if context doesn't have one
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.ConnectTimeout)
		defer cancel()
	}

	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("dial failed: %w", err)
	}

	return &ClientConn{
		conn:    conn,
		reader:  bufio.NewReaderSize(conn, MaxLineSize),
		closeCh: make(chan struct{}),
	}, nil
}

// ClientConn is an open connection to a MotionMount.
type ClientConn struct {
	conn    net.Conn
	reader  *bufio.Reader
	closeCh chan struct{}

	closeOnce sync.Once
	writeMu   sync.Mutex
}

// Send writes raw bytes to the stream.
func (c *ClientConn) Send(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	select {
	case <-c.closeCh:
		return ErrConnectionClosed
	default:
	}

	_, err := c.conn.Write(data)
	return err
}

// ReadLine reads the next line from the stream. Only the reader goroutine
// of a session may call this; it is not safe for concurrent use.
func (c *ClientConn) ReadLine() (string, error) {
	select {
	case <-c.closeCh:
		return "", ErrConnectionClosed
	default:
	}

	line, err := c.reader.ReadSlice('\n')
	if err != nil {
		if errors.Is(err, bufio.ErrBufferFull) {
			return "", ErrLineTooLong
		}
		return "", err
	}
	return strings.TrimSpace(string(line)), nil
}

// RemoteAddr returns the remote network address.
func (c *ClientConn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Close closes the connection. Safe to call multiple times; a pending
// ReadLine unblocks with an error.
func (c *ClientConn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closeCh)
		err = c.conn.Close()
	})
	return err
}
