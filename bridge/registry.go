package bridge

import (
	"fmt"
	"sync"
)

// pendingCall is the stored continuation for one outstanding token.
// Exactly one of ch and fn is set: ch for the blocking waiters, fn for
// closure-based calls. The channel has capacity 1 so the dispatching
// native thread never blocks on delivery, even when the receiver already
// gave up.
type pendingCall struct {
	ch    chan Outcome
	fn    Callback
	shape Shape
}

// registry is the thread-safe pending-call table. All bridge mutation
// funnels through register and take; there is no other shared state.
type registry struct {
	mu      sync.Mutex
	pending map[Handle]*pendingCall
}

func newRegistry() *registry {
	return &registry{pending: make(map[Handle]*pendingCall)}
}

// register inserts the entry for a fresh token. A duplicate token is a
// programming error in the allocator, not a runtime condition.
func (r *registry) register(h Handle, p *pendingCall) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.pending[h]; exists {
		panic(fmt.Sprintf("bridge: token %d registered twice", h))
	}
	r.pending[h] = p
}

// take atomically removes and returns the entry. This is the single
// linearization point: for any token, at most one caller ever sees ok.
func (r *registry) take(h Handle) (*pendingCall, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pending[h]
	if ok {
		delete(r.pending, h)
	}
	return p, ok
}

// size returns the number of outstanding calls.
func (r *registry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
