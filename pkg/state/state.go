package state

import (
	"sync"

	"github.com/tvm-protocol/motionmount-go/pkg/wire"
)

// State caches the last-known values of the well-known device properties.
// Safe for concurrent use; see the package documentation for the access
// pattern.
type State struct {
	mu sync.RWMutex

	extension       *int
	turn            *int
	isMoving        *bool
	targetExtension *int
	targetTurn      *int
	errorStatus     *int
	authStatus      *byte
	mac             []byte
	name            *string
}

// New creates an empty cache.
func New() *State {
	return &State{}
}

// Apply decodes raw according to key's well-known type and updates the
// cache. It returns true if the key is recognized and the value was
// applied. A decode failure on a recognized key returns an error and
// leaves the cached value unchanged.
func (s *State) Apply(key, raw string) (bool, error) {
	var decoded any
	var err error

	switch key {
	case wire.KeyExtension, wire.KeyTurn, wire.KeyTargetExtension,
		wire.KeyTargetTurn, wire.KeyErrorStatus:
		decoded, err = wire.DecodeValue(raw, wire.ValueInteger)
	case wire.KeyIsMoving:
		decoded, err = wire.DecodeValue(raw, wire.ValueBool)
	case wire.KeyMAC, wire.KeyAuthStatus:
		decoded, err = wire.DecodeValue(raw, wire.ValueBytes)
	case wire.KeyName:
		decoded, err = wire.DecodeValue(raw, wire.ValueString)
	default:
		return false, nil
	}
	if err != nil {
		return true, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch key {
	case wire.KeyExtension:
		v := decoded.(int)
		s.extension = &v
	case wire.KeyTurn:
		v := decoded.(int)
		s.turn = &v
	case wire.KeyTargetExtension:
		v := decoded.(int)
		s.targetExtension = &v
	case wire.KeyTargetTurn:
		v := decoded.(int)
		s.targetTurn = &v
	case wire.KeyErrorStatus:
		v := decoded.(int)
		s.errorStatus = &v
	case wire.KeyIsMoving:
		v := decoded.(bool)
		s.isMoving = &v
	case wire.KeyMAC:
		s.mac = decoded.([]byte)
	case wire.KeyAuthStatus:
		// Only the first byte carries meaning; older firmware may pad.
		b := decoded.([]byte)
		if len(b) > 0 {
			v := b[0]
			s.authStatus = &v
		}
	case wire.KeyName:
		v := decoded.(string)
		s.name = &v
	}
	return true, nil
}

// Reset clears every cached value. Called when a new connection is
// established so values from a previous session don't masquerade as
// current ones.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.extension = nil
	s.turn = nil
	s.isMoving = nil
	s.targetExtension = nil
	s.targetTurn = nil
	s.errorStatus = nil
	s.authStatus = nil
	s.mac = nil
	s.name = nil
}

// Extension returns the cached extension, if observed.
func (s *State) Extension() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return derefInt(s.extension)
}

// Turn returns the cached turn, if observed.
func (s *State) Turn() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return derefInt(s.turn)
}

// IsMoving returns the cached moving flag, if observed.
func (s *State) IsMoving() (bool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.isMoving == nil {
		return false, false
	}
	return *s.isMoving, true
}

// TargetExtension returns the cached extension target, if observed.
func (s *State) TargetExtension() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return derefInt(s.targetExtension)
}

// TargetTurn returns the cached turn target, if observed.
func (s *State) TargetTurn() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return derefInt(s.targetTurn)
}

// ErrorStatus returns the cached error status, if observed.
func (s *State) ErrorStatus() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return derefInt(s.errorStatus)
}

// AuthStatus returns the cached authentication status byte, if observed.
func (s *State) AuthStatus() (byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.authStatus == nil {
		return 0, false
	}
	return *s.authStatus, true
}

// MAC returns a copy of the cached MAC address, if observed.
func (s *State) MAC() ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.mac == nil {
		return nil, false
	}
	mac := make([]byte, len(s.mac))
	copy(mac, s.mac)
	return mac, true
}

// Name returns the cached device name, if observed.
func (s *State) Name() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.name == nil {
		return "", false
	}
	return *s.name, true
}

func derefInt(p *int) (int, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}
