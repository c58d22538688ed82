package interaction

import (
	"sync"

	"github.com/tvm-protocol/motionmount-go/pkg/wire"
)

// Request is a single outstanding request to the device. It lives for the
// duration of one call: enqueued, written, and resolved exactly once.
type Request struct {
	// Key is the property key the request reads or writes.
	Key string

	// Type determines how the response value is decoded.
	Type wire.ValueType

	// Value is the wire-encoded value for write requests, empty for reads.
	Value string

	done chan struct{}
	once sync.Once

	// Guarded by once: written before done is closed, read after.
	result any
	err    error
}

// NewRequest creates a read request for key.
func NewRequest(key string, t wire.ValueType) *Request {
	return &Request{
		Key:  key,
		Type: t,
		done: make(chan struct{}),
	}
}

// NewWriteRequest creates a write request carrying an encoded value.
func NewWriteRequest(key string, t wire.ValueType, value string) *Request {
	r := NewRequest(key, t)
	r.Value = value
	return r
}

// Encoded returns the request's outbound wire representation.
func (r *Request) Encoded() []byte {
	return wire.EncodeRequestLine(r.Key, r.Value)
}

// Resolve completes the request with a raw wire value, decoding it
// according to the request's value type. Subsequent resolutions are no-ops.
func (r *Request) Resolve(raw string) {
	v, err := wire.DecodeValue(raw, r.Type)
	r.complete(v, err)
}

// ResolveAccepted completes the request successfully without a value.
// Used when the device answers with "#202".
func (r *Request) ResolveAccepted() {
	r.complete(true, nil)
}

// Fail completes the request with an error.
func (r *Request) Fail(err error) {
	r.complete(nil, err)
}

// Done returns a channel closed when the request has been resolved.
func (r *Request) Done() <-chan struct{} {
	return r.done
}

// Result returns the outcome. Only valid after Done is closed.
func (r *Request) Result() (any, error) {
	return r.result, r.err
}

func (r *Request) complete(v any, err error) {
	r.once.Do(func() {
		r.result = v
		r.err = err
		close(r.done)
	})
}
