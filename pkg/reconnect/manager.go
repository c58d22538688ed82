package reconnect

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tvm-protocol/motionmount-go/pkg/mount"
)

// Manager re-establishes a mount session whenever it disconnects.
type Manager struct {
	mount   *mount.Mount
	backoff *Backoff
	logger  *slog.Logger

	// OnConnected, if set, is called after every successful connect.
	OnConnected func()
}

// NewManager creates a manager for m. logger may be nil.
func NewManager(m *mount.Mount, backoff BackoffConfig, logger *slog.Logger) *Manager {
	return &Manager{
		mount:   m,
		backoff: NewBackoffWithConfig(backoff),
		logger:  logger,
	}
}

// Run connects the mount and keeps it connected until ctx is cancelled.
// Failed attempts are retried with exponential backoff; an established
// session resets the backoff. Run blocks and always returns ctx's error;
// the session is disconnected on the way out.
func (r *Manager) Run(ctx context.Context) error {
	// A disconnect fires the mount's listeners exactly once; use that
	// as the loss signal. The buffer absorbs the notification when the
	// loop is mid-connect.
	lost := make(chan struct{}, 1)
	h := r.mount.AddListener(func() {
		if r.mount.State() == mount.StateDisconnected {
			select {
			case lost <- struct{}{}:
			default:
			}
		}
	})
	defer r.mount.RemoveListener(h)
	defer r.mount.Disconnect()

	for {
		if err := r.connect(ctx); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-lost:
			if r.logger != nil {
				r.logger.Info("session lost, reconnecting")
			}
		}
	}
}

// connect dials until the session is up or ctx is cancelled.
func (r *Manager) connect(ctx context.Context) error {
	for {
		err := r.mount.Connect(ctx)
		if err == nil || errors.Is(err, mount.ErrAlreadyConnected) {
			r.backoff.Reset()
			if r.OnConnected != nil && err == nil {
				r.OnConnected()
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		delay := r.backoff.Next()
		if r.logger != nil {
			r.logger.Warn("connect failed",
				"error", err,
				"attempt", r.backoff.Attempts(),
				"retry_in", delay)
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
