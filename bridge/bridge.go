package bridge

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/marinocpqd/indy-sdk/status"
)

// ViolationHandler is called when a bridge invariant is broken: a
// completion arrived for an unknown token, or for a shape other than the
// one registered. The default handler logs and panics; tests substitute
// their own to assert the condition is detected.
type ViolationHandler func(h Handle, detail string)

// Bridge owns the pending-call registry and hands out correlation tokens.
// A single Bridge is shared by every façade bound to the same native
// library; the zero number of outstanding calls is the only state a
// Bridge is allowed to be closed in.
type Bridge struct {
	log         *zap.Logger
	onViolation ViolationHandler
	reg         *registry
	next        atomic.Int32
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the bridge logger. The default is a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(b *Bridge) {
		if log != nil {
			b.log = log
		}
	}
}

// WithViolationHandler replaces the fatal handler for broken invariants.
func WithViolationHandler(fn ViolationHandler) Option {
	return func(b *Bridge) {
		if fn != nil {
			b.onViolation = fn
		}
	}
}

// New creates an empty bridge.
func New(opts ...Option) *Bridge {
	b := &Bridge{
		log: zap.NewNop(),
		reg: newRegistry(),
	}
	b.onViolation = b.fatalViolation
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var (
	defaultBridge *Bridge
	defaultOnce   sync.Once
)

// Default returns the process-wide bridge. The cgo binding hands its
// dispatch adapters to the native library, so the callback trampolines
// need a single well-known registry to resolve tokens against.
func Default() *Bridge {
	defaultOnce.Do(func() {
		defaultBridge = New()
	})
	return defaultBridge
}

// allocate issues a fresh token. Tokens are unique among outstanding
// calls by construction: the counter is process-wide and entries are
// removed only on completion, so a collision would require the int32
// space to wrap while the original call is still pending.
func (b *Bridge) allocate() Handle {
	return Handle(b.next.Add(1))
}

// Pending returns the number of calls whose completion has not been
// dispatched yet.
func (b *Bridge) Pending() int {
	return b.reg.size()
}

// Close verifies the registry drained. The registry must never be torn
// down while the native side still holds tokens, so closing with
// outstanding calls is reported as an error rather than forced.
func (b *Bridge) Close() error {
	if n := b.reg.size(); n > 0 {
		return status.Errorf("bridge.Close", status.InvalidState,
			"%d calls still pending", n)
	}
	return nil
}

func (b *Bridge) fatalViolation(h Handle, detail string) {
	b.log.Error("bridge invariant violated",
		zap.Int32("token", int32(h)),
		zap.String("detail", detail),
	)
	panic(status.Errorf("bridge.dispatch", status.ProtocolViolation,
		"token %d: %s", h, detail))
}
