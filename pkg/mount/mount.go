package mount

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tvm-protocol/motionmount-go/pkg/interaction"
	mmlog "github.com/tvm-protocol/motionmount-go/pkg/log"
	"github.com/tvm-protocol/motionmount-go/pkg/state"
	"github.com/tvm-protocol/motionmount-go/pkg/transport"
	"github.com/tvm-protocol/motionmount-go/pkg/wire"
)

// SessionState represents the session lifecycle state.
type SessionState uint8

const (
	// StateDisconnected indicates no active connection.
	StateDisconnected SessionState = iota

	// StateConnecting indicates the dial or initial property fetch is
	// in progress.
	StateConnecting

	// StateReady indicates the session is usable.
	StateReady
)

// String returns a human-readable state name.
func (s SessionState) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnecting:
		return "CONNECTING"
	case StateReady:
		return "READY"
	default:
		return "UNKNOWN"
	}
}

// Mount is a client session for one MotionMount device.
//
// All methods are safe for concurrent use. At most one request is on the
// wire at any time; concurrent callers are served in FIFO order.
type Mount struct {
	config Config
	client *transport.Client

	mu         sync.Mutex
	sessState  SessionState
	conn       transport.Connection
	connID     string
	remoteAddr string

	queue      *interaction.Queue
	cache      *state.State
	dispatcher *state.Dispatcher

	logger *slog.Logger
	plog   mmlog.Logger
}

// New creates a Mount for the device at config.Address. No I/O happens
// until Connect.
func New(config Config) *Mount {
	config.applyDefaults()

	return &Mount{
		config: config,
		client: transport.NewClient(transport.ClientConfig{
			ConnectTimeout: config.ConnectTimeout,
		}),
		queue:      interaction.NewQueue(),
		cache:      state.New(),
		dispatcher: state.NewDispatcher(config.Logger),
		logger:     config.Logger,
		plog:       config.ProtocolLogger,
	}
}

// State returns the current session state.
func (m *Mount) State() SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessState
}

// IsConnected returns true if the session is ready for requests.
func (m *Mount) IsConnected() bool {
	return m.State() == StateReady
}

// Connect dials the device, starts the reader goroutine and fetches the
// initial property set. On success the session is Ready; on failure it is
// fully torn down and the error returned.
func (m *Mount) Connect(ctx context.Context) error {
	m.mu.Lock()
	if m.sessState != StateDisconnected {
		m.mu.Unlock()
		return ErrAlreadyConnected
	}
	m.sessState = StateConnecting
	m.mu.Unlock()

	m.logState(StateDisconnected, StateConnecting, "")

	conn, err := m.client.Connect(ctx, m.config.Address)
	if err != nil {
		m.mu.Lock()
		m.sessState = StateDisconnected
		m.mu.Unlock()
		m.logState(StateConnecting, StateDisconnected, err.Error())
		return err
	}

	// Values cached by a previous session must not masquerade as
	// current ones.
	m.cache.Reset()

	m.mu.Lock()
	if m.sessState != StateConnecting {
		// Disconnected while dialing.
		m.mu.Unlock()
		_ = conn.Close()
		return ErrNotConnected
	}
	m.conn = conn
	m.connID = uuid.New().String()
	m.remoteAddr = conn.RemoteAddr().String()
	m.mu.Unlock()

	if m.logger != nil {
		m.logger.Info("connected", "address", m.config.Address, "conn_id", m.connID)
	}

	go m.readLoop(conn)

	if err := m.prefetch(ctx); err != nil {
		m.disconnect(err.Error())
		return err
	}

	m.mu.Lock()
	if m.conn != conn {
		// Torn down while fetching.
		m.mu.Unlock()
		return ErrNotConnected
	}
	m.sessState = StateReady
	m.mu.Unlock()

	m.logState(StateConnecting, StateReady, "")
	return nil
}

// Disconnect tears the session down: the connection is closed, every
// pending request fails with ErrNotConnected and listeners are notified
// exactly once. Safe to call multiple times and from listener callbacks.
// Cached property values survive until the next Connect.
func (m *Mount) Disconnect() {
	m.disconnect("requested")
}

// disconnect performs the teardown. Idempotent; the first caller through
// the state check wins, so listeners fire exactly once per session. Also
// called from the reader loop on stream errors.
func (m *Mount) disconnect(reason string) {
	m.mu.Lock()
	if m.sessState == StateDisconnected {
		m.mu.Unlock()
		return
	}
	oldState := m.sessState
	m.sessState = StateDisconnected
	conn := m.conn
	m.conn = nil
	m.mu.Unlock()

	if conn != nil {
		// Close errors are uninteresting during teardown; the reader
		// loop unblocks either way.
		_ = conn.Close()
	}

	failed := m.queue.FailAll(ErrNotConnected)
	if failed > 0 && m.logger != nil {
		m.logger.Debug("failed pending requests on disconnect", "count", failed)
	}

	m.logState(oldState, StateDisconnected, reason)
	m.dispatcher.Notify()
}

// prefetch loads the initial property set in a fixed order. The MAC key
// is missing on some firmware revisions; NOT_FOUND there is tolerated.
func (m *Mount) prefetch(ctx context.Context) error {
	if _, err := m.get(ctx, wire.KeyMAC, wire.ValueBytes); err != nil {
		var respErr *wire.ResponseError
		if !errors.As(err, &respErr) || respErr.Code != wire.CodeNotFound {
			return fmt.Errorf("fetch %s: %w", wire.KeyMAC, err)
		}
	}

	initial := []struct {
		key string
		typ wire.ValueType
	}{
		{wire.KeyName, wire.ValueString},
		{wire.KeyExtension, wire.ValueInteger},
		{wire.KeyTurn, wire.ValueInteger},
		{wire.KeyErrorStatus, wire.ValueInteger},
		{wire.KeyAuthStatus, wire.ValueBytes},
	}
	for _, p := range initial {
		if _, err := m.get(ctx, p.key, p.typ); err != nil {
			return fmt.Errorf("fetch %s: %w", p.key, err)
		}
	}
	return nil
}

// readLoop reads inbound lines until the stream fails. It is the only
// reader of conn. A failed read is fatal for the whole session.
func (m *Mount) readLoop(conn transport.Connection) {
	for {
		raw, err := conn.ReadLine()
		if err != nil {
			m.disconnect(fmt.Sprintf("read: %v", err))
			return
		}
		m.handleLine(raw)
	}
}

// handleLine routes one inbound line: error lines resolve the oldest
// pending request, key/value lines update the cache and resolve the
// oldest pending request only when its key matches, otherwise they are
// notifications and fire the listeners.
func (m *Mount) handleLine(raw string) {
	line, err := wire.ParseLine(raw)
	if err != nil {
		m.logAnomaly(err.Error(), "parse")
		return
	}

	if line.IsError {
		if !m.queue.ResolveError(line.Code) {
			m.logAnomaly(
				fmt.Sprintf("error line %d %s with no pending request", int(line.Code), line.Code),
				"correlate")
		}
		m.logLine(mmlog.DirectionIn, mmlog.LineEvent{Code: int(line.Code)})
		return
	}

	// Every key/value line refreshes the cache, whether it answers a
	// request or not.
	if recognized, err := m.cache.Apply(line.Key, line.Value); recognized && err != nil {
		m.logAnomaly(err.Error(), "cache")
	}

	matched := m.queue.ResolveKeyValue(line.Key, line.Value)
	m.logLine(mmlog.DirectionIn, mmlog.LineEvent{
		Key:          line.Key,
		Value:        line.Value,
		Notification: !matched,
	})

	if !matched {
		m.dispatcher.Notify()
	}
}

// roundTrip runs one request through the pipeline: enqueue, wait for the
// previous request to complete, write, await the response. The whole
// round trip is bounded by the request timeout; a timeout or write error
// leaves the stream position unknowable and tears the session down.
func (m *Mount) roundTrip(ctx context.Context, req *interaction.Request) (any, error) {
	// Enqueue under the session lock so a concurrent disconnect either
	// rejects us here or drains us in FailAll, never neither. While a
	// Connect is still dialing the state is Connecting but no connection
	// is installed yet; those requests are rejected too.
	m.mu.Lock()
	if m.sessState == StateDisconnected || m.conn == nil {
		m.mu.Unlock()
		return nil, ErrNotConnected
	}
	conn := m.conn
	prev := m.queue.Enqueue(req)
	m.mu.Unlock()

	timeout := time.NewTimer(m.config.RequestTimeout)
	defer timeout.Stop()

	if prev != nil {
		select {
		case <-prev.Done():
		case <-timeout.C:
			m.disconnect("request timeout")
			return nil, ErrRequestTimeout
		case <-ctx.Done():
			m.disconnect("context canceled")
			return nil, ctx.Err()
		}
	}

	// A disconnect may have drained us while we waited our turn.
	select {
	case <-req.Done():
		return req.Result()
	default:
	}

	encoded := req.Encoded()
	if err := conn.Send(encoded); err != nil {
		m.disconnect(fmt.Sprintf("write: %v", err))
		return nil, ErrNotConnected
	}
	m.logLine(mmlog.DirectionOut, mmlog.LineEvent{Key: req.Key, Value: req.Value})

	select {
	case <-req.Done():
		return req.Result()
	case <-timeout.C:
		m.disconnect("request timeout")
		return nil, ErrRequestTimeout
	case <-ctx.Done():
		m.disconnect("context canceled")
		return nil, ctx.Err()
	}
}

// get performs a read request for key and returns the decoded value.
func (m *Mount) get(ctx context.Context, key string, t wire.ValueType) (any, error) {
	return m.roundTrip(ctx, interaction.NewRequest(key, t))
}

// set performs a write request for key with an already wire-encoded value.
func (m *Mount) set(ctx context.Context, key string, t wire.ValueType, value string) error {
	_, err := m.roundTrip(ctx, interaction.NewWriteRequest(key, t, value))
	return err
}

// setInt performs a write request carrying a decimal integer value.
func (m *Mount) setInt(ctx context.Context, key string, v int) error {
	encoded, err := wire.EncodeValue(v, wire.ValueInteger)
	if err != nil {
		return err
	}
	return m.set(ctx, key, wire.ValueInteger, encoded)
}

func (m *Mount) logLine(dir mmlog.Direction, line mmlog.LineEvent) {
	connID, remoteAddr := m.connInfo()
	m.plog.Log(mmlog.Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Direction:    dir,
		Category:     mmlog.CategoryLine,
		RemoteAddr:   remoteAddr,
		Line:         &line,
	})
}

func (m *Mount) logState(oldState, newState SessionState, reason string) {
	connID, remoteAddr := m.connInfo()
	m.plog.Log(mmlog.Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Category:     mmlog.CategoryState,
		RemoteAddr:   remoteAddr,
		StateChange: &mmlog.StateChangeEvent{
			OldState: oldState.String(),
			NewState: newState.String(),
			Reason:   reason,
		},
	})
}

func (m *Mount) logAnomaly(msg, context string) {
	if m.logger != nil {
		m.logger.Warn("protocol anomaly", "context", context, "error", msg)
	}
	connID, remoteAddr := m.connInfo()
	m.plog.Log(mmlog.Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Direction:    mmlog.DirectionIn,
		Category:     mmlog.CategoryError,
		RemoteAddr:   remoteAddr,
		Error: &mmlog.ErrorEventData{
			Message: msg,
			Context: context,
		},
	})
}

func (m *Mount) connInfo() (connID, remoteAddr string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connID, m.remoteAddr
}
