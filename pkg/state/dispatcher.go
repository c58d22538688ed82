package state

import (
	"log/slog"
	"sync"
)

// Listener is a callback invoked when the device reports a state change
// the session did not ask for, and once on disconnect.
type Listener func()

// Handle identifies a registered listener for removal.
type Handle uint64

// Dispatcher fans out notifications to registered listeners. Listeners are
// invoked synchronously in registration order; a panicking listener is
// recovered and reported without aborting dispatch to the rest.
type Dispatcher struct {
	mu        sync.Mutex
	nextID    Handle
	listeners []listenerEntry
	logger    *slog.Logger
}

type listenerEntry struct {
	id Handle
	fn Listener
}

// NewDispatcher creates a dispatcher. A nil logger falls back to
// slog.Default() so listener panics are always reported.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{logger: logger}
}

// Add registers a listener and returns a handle for removal.
func (d *Dispatcher) Add(fn Listener) Handle {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	d.listeners = append(d.listeners, listenerEntry{id: d.nextID, fn: fn})
	return d.nextID
}

// Remove unregisters the listener identified by h. Removing an unknown
// handle is a no-op.
func (d *Dispatcher) Remove(h Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, e := range d.listeners {
		if e.id == h {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return
		}
	}
}

// Notify invokes every listener in registration order. The listener set is
// snapshotted first, so listeners may add or remove listeners without
// deadlocking; such changes take effect on the next notification.
func (d *Dispatcher) Notify() {
	d.mu.Lock()
	snapshot := make([]listenerEntry, len(d.listeners))
	copy(snapshot, d.listeners)
	logger := d.logger
	d.mu.Unlock()

	for _, e := range snapshot {
		d.invoke(e, logger)
	}
}

// Len returns the number of registered listeners.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}

func (d *Dispatcher) invoke(e listenerEntry, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("listener panicked", "handle", uint64(e.id), "panic", r)
		}
	}()
	e.fn()
}
