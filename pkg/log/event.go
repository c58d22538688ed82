package log

import "time"

// Event represents a protocol log event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID uniquely identifies the connection (UUID).
	ConnectionID string `cbor:"2,keyasint"`

	// Direction indicates message flow.
	Direction Direction `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// RemoteAddr is the device address (IP:port).
	RemoteAddr string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Line        *LineEvent        `cbor:"6,keyasint,omitempty"` // A protocol line
	StateChange *StateChangeEvent `cbor:"7,keyasint,omitempty"` // Session state
	Error       *ErrorEventData   `cbor:"8,keyasint,omitempty"` // Errors, anomalies
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn indicates an incoming line.
	DirectionIn Direction = 0
	// DirectionOut indicates an outgoing line.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryLine indicates a protocol line (request, response,
	// notification or error line).
	CategoryLine Category = 0
	// CategoryState indicates a session state change.
	CategoryState Category = 1
	// CategoryError indicates an error or protocol anomaly.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryLine:
		return "LINE"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LineEvent captures one protocol line.
type LineEvent struct {
	// Key is the property key, empty for error lines.
	Key string `cbor:"1,keyasint,omitempty"`

	// Value is the raw wire value, empty for key-only requests and for
	// error lines.
	Value string `cbor:"2,keyasint,omitempty"`

	// Code is the numeric response code for inbound "#NNN" lines.
	Code int `cbor:"3,keyasint,omitempty"`

	// Notification is true for inbound lines that resolved no pending
	// request.
	Notification bool `cbor:"4,keyasint,omitempty"`
}

// StateChangeEvent captures a session state transition.
type StateChangeEvent struct {
	// OldState is the state before the transition.
	OldState string `cbor:"1,keyasint"`

	// NewState is the state after the transition.
	NewState string `cbor:"2,keyasint"`

	// Reason describes why the transition happened, if known.
	Reason string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures an error or protocol anomaly.
type ErrorEventData struct {
	// Message is the error text.
	Message string `cbor:"1,keyasint"`

	// Context describes what the session was doing.
	Context string `cbor:"2,keyasint,omitempty"`
}
