package wire

import "fmt"

// Well-known property keys.
const (
	// KeyExtension is the current extension, integer 0-100.
	KeyExtension = "mount/extension/current"

	// KeyTurn is the current turn, integer -100-100.
	KeyTurn = "mount/turn/current"

	// KeyIsMoving reports whether the mount is moving, bool.
	KeyIsMoving = "mount/isMoving"

	// KeyTargetExtension is the requested extension, integer.
	KeyTargetExtension = "mount/extension/target"

	// KeyTargetTurn is the requested turn, integer.
	KeyTargetTurn = "mount/turn/target"

	// KeyErrorStatus is the device error status, integer bitfield.
	KeyErrorStatus = "mount/errorStatus"

	// KeyPresetIndex selects a preset to move to, integer.
	KeyPresetIndex = "mount/preset/index"

	// KeyPresetPosition moves to an explicit position, packed bytes
	// (see PackPosition).
	KeyPresetPosition = "mount/preset/position"

	// KeyMAC is the device MAC address, bytes.
	KeyMAC = "configuration/mac"

	// KeyName is the device name, quoted string.
	KeyName = "configuration/name"

	// KeyAuthStatus is the authentication status, bytes; the first byte
	// carries the authenticated bit and failure counter.
	KeyAuthStatus = "configuration/authentication/status"

	// KeyAuthPin submits an authentication pin, integer.
	KeyAuthPin = "configuration/authentication/pin"
)

// Per-preset keys. Preset 0 is the fixed Wall position and has no keys of
// its own.

// PresetActiveKey returns the key reporting whether preset n is configured.
func PresetActiveKey(n int) string {
	return fmt.Sprintf("mount/preset/%d/active", n)
}

// PresetNameKey returns the key holding preset n's name.
func PresetNameKey(n int) string {
	return fmt.Sprintf("mount/preset/%d/name", n)
}

// PresetExtensionKey returns the key holding preset n's extension.
func PresetExtensionKey(n int) string {
	return fmt.Sprintf("mount/preset/%d/extension", n)
}

// PresetTurnKey returns the key holding preset n's turn.
func PresetTurnKey(n int) string {
	return fmt.Sprintf("mount/preset/%d/turn", n)
}
