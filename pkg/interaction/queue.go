package interaction

import (
	"sync"

	"github.com/tvm-protocol/motionmount-go/pkg/wire"
)

// Queue holds the outstanding requests in enqueue order. Insertion order is
// send order is expected resolution order; the device preserves ordering.
//
// Callers append at the tail via Enqueue; only the reader path removes from
// the head. All mutation is guarded by a mutex scoped strictly to the
// mutation, never held across I/O.
type Queue struct {
	mu       sync.Mutex
	requests []*Request
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends req at the tail and returns the previous tail, if any.
// The caller must wait for the previous tail to complete before writing
// req's bytes; this yields strict single-outstanding-write pipelining.
func (q *Queue) Enqueue(req *Request) (prev *Request) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if n := len(q.requests); n > 0 {
		prev = q.requests[n-1]
	}
	q.requests = append(q.requests, req)
	return prev
}

// ResolveKeyValue matches an inbound "key = value" line against the queue
// head. If the head's key equals key, the head is popped and resolved with
// the raw value and true is returned. Otherwise the line is a notification
// and false is returned.
func (q *Queue) ResolveKeyValue(key, raw string) bool {
	q.mu.Lock()
	if len(q.requests) == 0 || q.requests[0].Key != key {
		q.mu.Unlock()
		return false
	}
	head := q.requests[0]
	q.requests = q.requests[1:]
	q.mu.Unlock()

	head.Resolve(raw)
	return true
}

// ResolveError attributes an inbound "#NNN" line to the queue head.
// Accepted resolves the head successfully; any other code fails it with a
// ResponseError. Returns false if the queue was empty, which is a protocol
// anomaly the caller should log but not treat as fatal.
func (q *Queue) ResolveError(code wire.ResponseCode) bool {
	q.mu.Lock()
	if len(q.requests) == 0 {
		q.mu.Unlock()
		return false
	}
	head := q.requests[0]
	q.requests = q.requests[1:]
	q.mu.Unlock()

	if code.IsAccepted() {
		head.ResolveAccepted()
	} else {
		head.Fail(&wire.ResponseError{Code: code})
	}
	return true
}

// FailAll drains the queue, failing every outstanding request with err.
// Requests already resolved are unaffected (the result slot is
// single-assignment). Returns the number of requests drained.
func (q *Queue) FailAll(err error) int {
	q.mu.Lock()
	drained := q.requests
	q.requests = nil
	q.mu.Unlock()

	for _, req := range drained {
		req.Fail(err)
	}
	return len(drained)
}

// Len returns the number of outstanding requests.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.requests)
}
