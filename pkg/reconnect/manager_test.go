package reconnect

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tvm-protocol/motionmount-go/pkg/mount"
	"github.com/tvm-protocol/motionmount-go/pkg/wire"
)

// replayDevice accepts connections one after another, answering every
// read with a canned value so the mount's connect-time fetch succeeds.
type replayDevice struct {
	t  *testing.T
	ln net.Listener

	mu    sync.Mutex
	cur   net.Conn
	conns int
}

func newReplayDevice(t *testing.T) *replayDevice {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	d := &replayDevice{t: t, ln: ln}
	go d.serve()
	t.Cleanup(func() {
		_ = ln.Close()
		d.closeCurrent()
	})
	return d
}

func (d *replayDevice) addr() string {
	return d.ln.Addr().String()
}

func (d *replayDevice) serve() {
	props := map[string]string{
		wire.KeyMAC:         "[a1b2c3d4e5f6]",
		wire.KeyName:        `"Living Room"`,
		wire.KeyExtension:   "0",
		wire.KeyTurn:        "0",
		wire.KeyErrorStatus: "0",
		wire.KeyAuthStatus:  "[80]",
	}

	for {
		conn, err := d.ln.Accept()
		if err != nil {
			return
		}
		d.mu.Lock()
		d.cur = conn
		d.conns++
		d.mu.Unlock()

		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			key, _, isWrite := strings.Cut(scanner.Text(), " = ")
			value, known := props[key]
			switch {
			case !known:
				fmt.Fprintf(conn, "#404\n")
			case isWrite:
				fmt.Fprintf(conn, "#202\n")
			default:
				fmt.Fprintf(conn, "%s = %s\n", key, value)
			}
		}
	}
}

func (d *replayDevice) closeCurrent() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cur != nil {
		_ = d.cur.Close()
		d.cur = nil
	}
}

func (d *replayDevice) connections() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.conns
}

func TestManagerReconnectsAfterSessionLoss(t *testing.T) {
	d := newReplayDevice(t)
	m := mount.New(mount.Config{Address: d.addr()})

	connected := make(chan struct{}, 4)
	mgr := NewManager(m, BackoffConfig{Initial: 10 * time.Millisecond, Max: 50 * time.Millisecond}, nil)
	mgr.OnConnected = func() { connected <- struct{}{} }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- mgr.Run(ctx) }()

	select {
	case <-connected:
	case <-time.After(5 * time.Second):
		t.Fatal("never connected")
	}
	require.True(t, m.IsConnected())

	// Simulate a device reboot.
	d.closeCurrent()

	select {
	case <-connected:
	case <-time.After(5 * time.Second):
		t.Fatal("never reconnected")
	}
	assert.GreaterOrEqual(t, d.connections(), 2)
	require.Eventually(t, m.IsConnected, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, mount.StateDisconnected, m.State())
}

func TestManagerStopsRetryingOnCancel(t *testing.T) {
	// Nothing listens here; every attempt fails.
	m := mount.New(mount.Config{
		Address:        "127.0.0.1:1",
		ConnectTimeout: 50 * time.Millisecond,
	})

	mgr := NewManager(m, BackoffConfig{Initial: 10 * time.Millisecond, Max: 20 * time.Millisecond}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- mgr.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
