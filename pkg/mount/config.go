package mount

import (
	"log/slog"
	"time"

	mmlog "github.com/tvm-protocol/motionmount-go/pkg/log"
)

// Default configuration values.
const (
	// DefaultConnectTimeout bounds the TCP dial.
	DefaultConnectTimeout = 15 * time.Second

	// DefaultRequestTimeout bounds a single request round trip,
	// measured from enqueue to completion.
	DefaultRequestTimeout = 5 * time.Second

	// DefaultMaxPresetIndex is the highest user preset index current
	// firmware supports. Preset 0 is the fixed Wall position.
	DefaultMaxPresetIndex = 9
)

// Config configures a Mount session.
type Config struct {
	// Address is the device address as "host:port".
	Address string

	// ConnectTimeout bounds the TCP dial (default: 15s). A context
	// deadline on Connect takes precedence.
	ConnectTimeout time.Duration

	// RequestTimeout bounds each request round trip (default: 5s).
	// A request that outlives it tears the session down.
	RequestTimeout time.Duration

	// MaxPresetIndex is the highest valid user preset index
	// (default: 9). Firmware-dependent.
	MaxPresetIndex int

	// Logger receives diagnostic log output. Optional.
	Logger *slog.Logger

	// ProtocolLogger receives protocol events for every line sent and
	// received. Optional.
	ProtocolLogger mmlog.Logger
}

func (c *Config) applyDefaults() {
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.MaxPresetIndex == 0 {
		c.MaxPresetIndex = DefaultMaxPresetIndex
	}
	if c.ProtocolLogger == nil {
		c.ProtocolLogger = mmlog.NoopLogger{}
	}
}
