package reconnect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoffSequenceDoublesToMax(t *testing.T) {
	b := NewBackoffWithConfig(BackoffConfig{
		Initial:    time.Second,
		Max:        8 * time.Second,
		Multiplier: 2,
		Jitter:     0,
	})

	expected := []time.Duration{
		time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		8 * time.Second, // capped
	}
	for i, want := range expected {
		assert.Equal(t, want, b.Next(), "attempt %d", i)
	}
	assert.Equal(t, len(expected), b.Attempts())
}

func TestBackoffReset(t *testing.T) {
	b := NewBackoffWithConfig(BackoffConfig{Initial: time.Second, Jitter: 0})

	b.Next()
	b.Next()
	require.NotZero(t, b.Attempts())

	b.Reset()
	assert.Zero(t, b.Attempts())
	assert.Equal(t, time.Second, b.Next())
}

func TestBackoffJitterBounds(t *testing.T) {
	b := NewBackoffWithConfig(BackoffConfig{
		Initial:    time.Second,
		Max:        time.Second,
		Multiplier: 2,
		Jitter:     0.25,
	})

	for i := 0; i < 100; i++ {
		d := b.Peek()
		assert.GreaterOrEqual(t, d, time.Second)
		assert.LessOrEqual(t, d, 1250*time.Millisecond)
	}
}

func TestBackoffPeekDoesNotAdvance(t *testing.T) {
	b := NewBackoffWithConfig(BackoffConfig{Initial: time.Second, Jitter: 0})

	assert.Equal(t, time.Second, b.Peek())
	assert.Equal(t, time.Second, b.Peek())
	assert.Zero(t, b.Attempts())
}

func TestBackoffDefaults(t *testing.T) {
	b := NewBackoff()

	d := b.Next()
	assert.GreaterOrEqual(t, d, InitialBackoff)
	assert.Equal(t, 1, b.Attempts())
}
