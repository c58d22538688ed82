package interaction

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tvm-protocol/motionmount-go/pkg/wire"
)

func TestEnqueueReturnsPreviousTail(t *testing.T) {
	q := NewQueue()

	r1 := NewRequest("mount/extension/current", wire.ValueInteger)
	r2 := NewRequest("mount/turn/current", wire.ValueInteger)

	assert.Nil(t, q.Enqueue(r1))
	assert.Same(t, r1, q.Enqueue(r2))
	assert.Equal(t, 2, q.Len())
}

func TestResolveKeyValueMatchesHead(t *testing.T) {
	q := NewQueue()
	r1 := NewRequest("mount/extension/current", wire.ValueInteger)
	r2 := NewRequest("mount/turn/current", wire.ValueInteger)
	q.Enqueue(r1)
	q.Enqueue(r2)

	assert.True(t, q.ResolveKeyValue("mount/extension/current", "42"))

	v, err := r1.Result()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, q.Len())
}

func TestResolveKeyValueNonHeadIsNotification(t *testing.T) {
	q := NewQueue()
	r1 := NewRequest("mount/extension/current", wire.ValueInteger)
	q.Enqueue(r1)

	// Key doesn't match the head: unsolicited line, queue untouched.
	assert.False(t, q.ResolveKeyValue("mount/isMoving", "1"))
	assert.Equal(t, 1, q.Len())

	select {
	case <-r1.Done():
		t.Fatal("head must not resolve on a non-matching key")
	default:
	}
}

func TestResolveKeyValueEmptyQueue(t *testing.T) {
	q := NewQueue()
	assert.False(t, q.ResolveKeyValue("mount/isMoving", "1"))
}

func TestResolveErrorBelongsToHead(t *testing.T) {
	q := NewQueue()
	r1 := NewRequest("configuration/mac", wire.ValueBytes)
	r2 := NewRequest("configuration/name", wire.ValueString)
	q.Enqueue(r1)
	q.Enqueue(r2)

	// The error line carries no key; FIFO attribution pins it to r1.
	assert.True(t, q.ResolveError(wire.CodeNotFound))

	_, err := r1.Result()
	var respErr *wire.ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, wire.CodeNotFound, respErr.Code)
	assert.Equal(t, 1, q.Len())
}

func TestResolveErrorAcceptedSucceedsHead(t *testing.T) {
	q := NewQueue()
	r := NewWriteRequest("mount/preset/index", wire.ValueVoid, "1")
	q.Enqueue(r)

	assert.True(t, q.ResolveError(wire.CodeAccepted))

	v, err := r.Result()
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestResolveErrorEmptyQueueIsAnomaly(t *testing.T) {
	q := NewQueue()
	assert.False(t, q.ResolveError(wire.CodeBadRequest))
}

func TestFailAllDrainsEveryRequestOnce(t *testing.T) {
	q := NewQueue()
	r1 := NewRequest("a", wire.ValueVoid)
	r2 := NewRequest("b", wire.ValueVoid)
	q.Enqueue(r1)
	q.Enqueue(r2)

	errClosed := errors.New("not connected")
	assert.Equal(t, 2, q.FailAll(errClosed))
	assert.Equal(t, 0, q.Len())

	for _, r := range []*Request{r1, r2} {
		_, err := r.Result()
		assert.ErrorIs(t, err, errClosed)
	}

	// Draining again is a no-op.
	assert.Equal(t, 0, q.FailAll(errClosed))
}

func TestRequestResolvesExactlyOnce(t *testing.T) {
	r := NewRequest("mount/extension/current", wire.ValueInteger)

	r.Resolve("42")
	r.Fail(errors.New("late failure must not overwrite"))

	v, err := r.Result()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestRequestDoneUnblocksWaiter(t *testing.T) {
	r := NewRequest("mount/extension/current", wire.ValueInteger)

	go r.Resolve("7")

	select {
	case <-r.Done():
		v, err := r.Result()
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	case <-time.After(time.Second):
		t.Fatal("Done never closed")
	}
}

func TestRequestDecodeFailureResolvesWithError(t *testing.T) {
	r := NewRequest("mount/extension/current", wire.ValueInteger)
	r.Resolve("not a number")

	_, err := r.Result()
	assert.Error(t, err)
}

func TestRequestEncoded(t *testing.T) {
	read := NewRequest("configuration/name", wire.ValueString)
	assert.Equal(t, []byte("configuration/name\n"), read.Encoded())

	write := NewWriteRequest("mount/extension/target", wire.ValueVoid, "50")
	assert.Equal(t, []byte("mount/extension/target = 50\n"), write.Encoded())
}
