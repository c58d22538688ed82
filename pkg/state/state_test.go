package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tvm-protocol/motionmount-go/pkg/wire"
)

func TestStateUnsetUntilObserved(t *testing.T) {
	s := New()

	_, ok := s.Extension()
	assert.False(t, ok)
	_, ok = s.Name()
	assert.False(t, ok)
	_, ok = s.MAC()
	assert.False(t, ok)
	_, ok = s.IsMoving()
	assert.False(t, ok)
}

func TestApplyRecognizedKeys(t *testing.T) {
	s := New()

	apply := func(key, raw string) {
		t.Helper()
		recognized, err := s.Apply(key, raw)
		require.NoError(t, err)
		require.True(t, recognized)
	}

	apply(wire.KeyExtension, "42")
	apply(wire.KeyTurn, "-17")
	apply(wire.KeyIsMoving, "1")
	apply(wire.KeyTargetExtension, "50")
	apply(wire.KeyTargetTurn, "0")
	apply(wire.KeyErrorStatus, "0")
	apply(wire.KeyAuthStatus, "[83]")
	apply(wire.KeyMAC, "[0011223344ff]")
	apply(wire.KeyName, "\"Living Room\"")

	ext, ok := s.Extension()
	assert.True(t, ok)
	assert.Equal(t, 42, ext)

	turn, ok := s.Turn()
	assert.True(t, ok)
	assert.Equal(t, -17, turn)

	moving, ok := s.IsMoving()
	assert.True(t, ok)
	assert.True(t, moving)

	tgtExt, ok := s.TargetExtension()
	assert.True(t, ok)
	assert.Equal(t, 50, tgtExt)

	tgtTurn, ok := s.TargetTurn()
	assert.True(t, ok)
	assert.Equal(t, 0, tgtTurn)

	errStatus, ok := s.ErrorStatus()
	assert.True(t, ok)
	assert.Equal(t, 0, errStatus)

	auth, ok := s.AuthStatus()
	assert.True(t, ok)
	assert.Equal(t, byte(0x83), auth)

	mac, ok := s.MAC()
	assert.True(t, ok)
	assert.Equal(t, []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0xff}, mac)

	name, ok := s.Name()
	assert.True(t, ok)
	assert.Equal(t, "Living Room", name)
}

func TestApplyUnrecognizedKey(t *testing.T) {
	s := New()

	recognized, err := s.Apply("version/ce/firmware", "\"2.1\"")
	require.NoError(t, err)
	assert.False(t, recognized)
}

func TestApplyDecodeFailureKeepsOldValue(t *testing.T) {
	s := New()

	_, err := s.Apply(wire.KeyExtension, "42")
	require.NoError(t, err)

	recognized, err := s.Apply(wire.KeyExtension, "garbage")
	assert.True(t, recognized)
	assert.Error(t, err)

	ext, ok := s.Extension()
	assert.True(t, ok)
	assert.Equal(t, 42, ext)
}

func TestAuthStatusUsesFirstByte(t *testing.T) {
	s := New()

	_, err := s.Apply(wire.KeyAuthStatus, "[0500]")
	require.NoError(t, err)

	auth, ok := s.AuthStatus()
	assert.True(t, ok)
	assert.Equal(t, byte(0x05), auth)
}

func TestMACReturnsCopy(t *testing.T) {
	s := New()
	_, err := s.Apply(wire.KeyMAC, "[00112233]")
	require.NoError(t, err)

	mac, _ := s.MAC()
	mac[0] = 0xff

	again, _ := s.MAC()
	assert.Equal(t, byte(0x00), again[0])
}

func TestReset(t *testing.T) {
	s := New()
	_, err := s.Apply(wire.KeyExtension, "42")
	require.NoError(t, err)

	s.Reset()

	_, ok := s.Extension()
	assert.False(t, ok)
}
