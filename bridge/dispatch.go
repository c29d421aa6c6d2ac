package bridge

import (
	"go.uber.org/zap"

	"github.com/marinocpqd/indy-sdk/status"
)

// The Complete* methods are the dispatch adapters, one per result shape.
// They are the callback targets handed across the native boundary and run
// on whatever thread the native runtime chooses. Each resolves the token
// against the registry, removes the entry, and delivers the outcome to
// the stored continuation.

// CompleteEmpty dispatches a completion with no result value.
func (b *Bridge) CompleteEmpty(h Handle, code status.Code) {
	b.dispatch(h, ShapeEmpty, Outcome{Code: code})
}

// CompleteHandle dispatches a completion carrying one integer handle.
func (b *Bridge) CompleteHandle(h Handle, code status.Code, value int32) {
	b.dispatch(h, ShapeHandle, Outcome{Code: code, Payload: Payload{Value: value}})
}

// CompleteString dispatches a completion carrying one string.
func (b *Bridge) CompleteString(h Handle, code status.Code, s string) {
	b.dispatch(h, ShapeString, Outcome{Code: code, Payload: Payload{Str: s}})
}

// CompleteStringPair dispatches a completion carrying two strings.
func (b *Bridge) CompleteStringPair(h Handle, code status.Code, a, bs string) {
	b.dispatch(h, ShapeStringPair, Outcome{Code: code, Payload: Payload{Str: a, Str2: bs}})
}

// CompleteBytes dispatches a completion carrying a binary blob.
func (b *Bridge) CompleteBytes(h Handle, code status.Code, data []byte) {
	b.dispatch(h, ShapeBytes, Outcome{Code: code, Payload: Payload{Bytes: data}})
}

func (b *Bridge) dispatch(h Handle, shape Shape, out Outcome) {
	p, ok := b.reg.take(h)
	if !ok {
		// Unknown token: either the native library fired a callback it
		// never announced or it fired twice. Silently ignoring this would
		// mask lost responses, so it is fatal.
		b.onViolation(h, "completion for unknown token")
		return
	}
	if p.shape != shape {
		b.onViolation(h, "completion shape "+shape.String()+
			" does not match registered shape "+p.shape.String())
		return
	}

	b.log.Debug("dispatch",
		zap.Int32("token", int32(h)),
		zap.Stringer("shape", shape),
		zap.Stringer("code", out.Code),
	)

	if p.ch != nil {
		// Capacity-1 buffer: the send succeeds even when the waiter timed
		// out and abandoned the receiver. The outcome is then discarded
		// with the channel, which is exactly the contract.
		p.ch <- out
		return
	}
	b.invokeCallback(h, p.fn, out)
}

// invokeCallback runs a user continuation on the current (native) thread.
// The recover is a firewall: a panicking continuation must never unwind
// into the foreign call stack.
func (b *Bridge) invokeCallback(h Handle, fn Callback, out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("panic in user continuation",
				zap.Int32("token", int32(h)),
				zap.Any("panic", r),
			)
		}
	}()
	fn(out)
}
