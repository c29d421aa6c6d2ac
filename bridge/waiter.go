package bridge

import (
	"time"

	"github.com/marinocpqd/indy-sdk/status"
)

// begin is the one register+invoke primitive behind all three calling
// styles. It allocates a token, registers the continuation strictly
// before issuing the native call, and handles the early-error path: a
// synchronous failure means no dispatch adapter will ever fire for this
// token, so the orphaned entry is discarded immediately.
func (b *Bridge) begin(p *pendingCall, invoke NativeFunc) (Handle, status.Code) {
	h := b.allocate()
	b.reg.register(h, p)
	code := invoke(h)
	if !code.OK() {
		b.reg.take(h)
	}
	return h, code
}

// Call issues the native call and blocks the calling goroutine until the
// completion arrives. The returned error carries the failing status code,
// whether it was synchronous or delivered.
func (b *Bridge) Call(op string, shape Shape, invoke NativeFunc) (Payload, error) {
	p := &pendingCall{shape: shape, ch: make(chan Outcome, 1)}
	if _, code := b.begin(p, invoke); !code.OK() {
		return Payload{}, code.Err(op)
	}
	out := <-p.ch
	if !out.Code.OK() {
		return Payload{}, out.Code.Err(op)
	}
	return out.Payload, nil
}

// CallTimeout is Call with a deadline. A non-positive timeout expires
// immediately. On expiry the caller gets status.Timeout, but the registry
// entry is deliberately left in place: the native operation was not
// cancelled, its side effects still occur, and the eventual completion
// must find the entry so it is consumed exactly once. The late delivery
// lands in the abandoned channel's buffer and is garbage collected with
// it.
func (b *Bridge) CallTimeout(op string, shape Shape, timeout time.Duration, invoke NativeFunc) (Payload, error) {
	p := &pendingCall{shape: shape, ch: make(chan Outcome, 1)}
	if _, code := b.begin(p, invoke); !code.OK() {
		return Payload{}, code.Err(op)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case out := <-p.ch:
		if !out.Code.OK() {
			return Payload{}, out.Code.Err(op)
		}
		return out.Payload, nil
	case <-timer.C:
		return Payload{}, status.Timeout.Err(op)
	}
}

// CallAsync registers the continuation and returns the immediate status
// without blocking. On Success the continuation fires later, exactly
// once, on a thread owned by the native runtime. On a synchronous failure
// the continuation is guaranteed never to be invoked.
func (b *Bridge) CallAsync(shape Shape, invoke NativeFunc, fn Callback) status.Code {
	p := &pendingCall{shape: shape, fn: fn}
	_, code := b.begin(p, invoke)
	return code
}
