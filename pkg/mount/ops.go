package mount

import (
	"context"
	"fmt"
	"time"

	"github.com/tvm-protocol/motionmount-go/pkg/auth"
	"github.com/tvm-protocol/motionmount-go/pkg/state"
	"github.com/tvm-protocol/motionmount-go/pkg/wire"
)

// Movement domains. The device rejects values outside these ranges, but
// validating here fails fast without touching the network.
const (
	MinExtension = 0
	MaxExtension = 100
	MinTurn      = -100
	MaxTurn      = 100
)

// GetName fetches the device name from the device. The cached value is
// refreshed as a side effect.
func (m *Mount) GetName(ctx context.Context) (string, error) {
	v, err := m.get(ctx, wire.KeyName, wire.ValueString)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// SetName writes a new device name.
func (m *Mount) SetName(ctx context.Context, name string) error {
	encoded, err := wire.EncodeValue(name, wire.ValueString)
	if err != nil {
		return err
	}
	return m.set(ctx, wire.KeyName, wire.ValueString, encoded)
}

// UpdatePosition refreshes the cached extension and turn by round tripping
// both keys. Callers read the refreshed values via Extension and Turn.
func (m *Mount) UpdatePosition(ctx context.Context) error {
	if _, err := m.get(ctx, wire.KeyExtension, wire.ValueVoid); err != nil {
		return err
	}
	_, err := m.get(ctx, wire.KeyTurn, wire.ValueVoid)
	return err
}

// GoToPreset moves the mount to preset index. Index 0 is the fixed Wall
// position. The move is asynchronous; progress arrives as notifications.
func (m *Mount) GoToPreset(ctx context.Context, index int) error {
	if index < 0 || index > m.config.MaxPresetIndex {
		return &ValidationError{Field: "preset index", Value: index, Min: 0, Max: m.config.MaxPresetIndex}
	}
	return m.setInt(ctx, wire.KeyPresetIndex, index)
}

// GoToPosition moves the mount to an explicit extension/turn position.
func (m *Mount) GoToPosition(ctx context.Context, extension, turn int) error {
	if err := validateExtension(extension); err != nil {
		return err
	}
	if err := validateTurn(turn); err != nil {
		return err
	}
	return m.set(ctx, wire.KeyPresetPosition, wire.ValueVoid, wire.PackPosition(extension, turn))
}

// SetExtension moves only the extension axis, keeping the current turn.
func (m *Mount) SetExtension(ctx context.Context, extension int) error {
	if err := validateExtension(extension); err != nil {
		return err
	}
	return m.setInt(ctx, wire.KeyTargetExtension, extension)
}

// SetTurn moves only the turn axis, keeping the current extension.
func (m *Mount) SetTurn(ctx context.Context, turn int) error {
	if err := validateTurn(turn); err != nil {
		return err
	}
	return m.setInt(ctx, wire.KeyTargetTurn, turn)
}

// Authenticate submits a pin and re-fetches the authentication status so
// IsAuthenticated reflects the outcome. A wrong pin does not error here;
// check IsAuthenticated afterwards. Use CanAuthenticate first to honor
// the device's failure backoff.
func (m *Mount) Authenticate(ctx context.Context, pin int) error {
	if err := auth.ValidatePin(pin); err != nil {
		return err
	}
	if err := m.setInt(ctx, wire.KeyAuthPin, pin); err != nil {
		return fmt.Errorf("submit pin: %w", err)
	}
	if _, err := m.get(ctx, wire.KeyAuthStatus, wire.ValueBytes); err != nil {
		return fmt.Errorf("fetch authentication status: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether the session is authenticated, from the
// cached authentication status. Devices without a pin configured report
// authenticated from the start.
func (m *Mount) IsAuthenticated() bool {
	s, ok := m.cache.AuthStatus()
	if !ok {
		return false
	}
	return auth.Status(s).IsAuthenticated()
}

// CanAuthenticate reports whether an authentication attempt is worthwhile
// right now, and if not, the advisory backoff to wait. Based on the cached
// authentication status; call Authenticate or Connect to refresh it.
func (m *Mount) CanAuthenticate() (bool, time.Duration) {
	s, ok := m.cache.AuthStatus()
	if !ok {
		return false, 0
	}
	return auth.Status(s).CanAuthenticate()
}

// AuthenticationStatus returns the cached authentication status byte.
func (m *Mount) AuthenticationStatus() (auth.Status, bool) {
	s, ok := m.cache.AuthStatus()
	return auth.Status(s), ok
}

// Cached property accessors. The boolean is false before the property has
// been observed on the current or a previous session.

// Extension returns the last observed extension.
func (m *Mount) Extension() (int, bool) { return m.cache.Extension() }

// Turn returns the last observed turn.
func (m *Mount) Turn() (int, bool) { return m.cache.Turn() }

// IsMoving returns the last observed moving flag.
func (m *Mount) IsMoving() (bool, bool) { return m.cache.IsMoving() }

// TargetExtension returns the last observed extension target.
func (m *Mount) TargetExtension() (int, bool) { return m.cache.TargetExtension() }

// TargetTurn returns the last observed turn target.
func (m *Mount) TargetTurn() (int, bool) { return m.cache.TargetTurn() }

// ErrorStatus returns the last observed device error status bitfield.
func (m *Mount) ErrorStatus() (int, bool) { return m.cache.ErrorStatus() }

// MAC returns the device MAC address, if the device exposes it.
func (m *Mount) MAC() ([]byte, bool) { return m.cache.MAC() }

// Name returns the last observed device name.
func (m *Mount) Name() (string, bool) { return m.cache.Name() }

// AddListener registers a callback fired on every notification the device
// pushes and once on disconnect. The callback runs on the reader
// goroutine; read the refreshed values through the cached accessors and
// return quickly.
func (m *Mount) AddListener(fn func()) state.Handle {
	return m.dispatcher.Add(fn)
}

// RemoveListener unregisters a listener. Unknown handles are ignored.
func (m *Mount) RemoveListener(h state.Handle) {
	m.dispatcher.Remove(h)
}

func validateExtension(v int) error {
	if v < MinExtension || v > MaxExtension {
		return &ValidationError{Field: "extension", Value: v, Min: MinExtension, Max: MaxExtension}
	}
	return nil
}

func validateTurn(v int) error {
	if v < MinTurn || v > MaxTurn {
		return &ValidationError{Field: "turn", Value: v, Min: MinTurn, Max: MaxTurn}
	}
	return nil
}
