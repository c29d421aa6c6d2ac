package bridge

import (
	"sync"
	"testing"
	"time"

	"github.com/marinocpqd/indy-sdk/status"
)

// completeLater fires the empty-shape adapter from a separate goroutine,
// standing in for a native thread.
func completeLater(b *Bridge, d time.Duration, code status.Code) NativeFunc {
	return func(h Handle) status.Code {
		go func() {
			time.Sleep(d)
			b.CompleteEmpty(h, code)
		}()
		return status.Success
	}
}

func TestCall_Success(t *testing.T) {
	b := New()

	_, err := b.Call("op", ShapeEmpty, completeLater(b, time.Millisecond, status.Success))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Pending() != 0 {
		t.Fatalf("expected drained registry, %d pending", b.Pending())
	}
}

func TestCall_LateError(t *testing.T) {
	b := New()

	_, err := b.Call("op", ShapeEmpty, completeLater(b, time.Millisecond, status.IOError))
	if status.CodeOf(err) != status.IOError {
		t.Fatalf("expected io_error, got %v", err)
	}
	if b.Pending() != 0 {
		t.Fatal("failed completion must still consume the entry")
	}
}

func TestCall_EarlyError(t *testing.T) {
	b := New()

	_, err := b.Call("op", ShapeEmpty, func(h Handle) status.Code {
		return status.InvalidStructure
	})
	if status.CodeOf(err) != status.InvalidStructure {
		t.Fatalf("expected invalid_structure, got %v", err)
	}
	if b.Pending() != 0 {
		t.Fatal("early error must discard the orphaned entry")
	}
}

func TestCall_ValuePayload(t *testing.T) {
	b := New()

	out, err := b.Call("op", ShapeHandle, func(h Handle) status.Code {
		go b.CompleteHandle(h, status.Success, 77)
		return status.Success
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Value != 77 {
		t.Fatalf("expected value 77, got %d", out.Value)
	}
}

func TestCallTimeout_Delivered(t *testing.T) {
	b := New()

	_, err := b.CallTimeout("op", ShapeEmpty, 5*time.Second,
		completeLater(b, time.Millisecond, status.Success))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCallTimeout_Expires(t *testing.T) {
	b := New()

	released := make(chan struct{})
	_, err := b.CallTimeout("op", ShapeEmpty, time.Microsecond, func(h Handle) status.Code {
		go func() {
			<-released
			b.CompleteEmpty(h, status.Success)
		}()
		return status.Success
	})
	if status.CodeOf(err) != status.Timeout {
		t.Fatalf("expected timeout, got %v", err)
	}

	// The entry must outlive the waiter: the native side still holds the
	// token and will complete later.
	if b.Pending() != 1 {
		t.Fatalf("expected entry to survive the timeout, %d pending", b.Pending())
	}

	close(released)
	waitDrained(t, b)
}

func TestCallTimeout_NonPositiveExpiresImmediately(t *testing.T) {
	b := New()

	released := make(chan struct{})
	for _, timeout := range []time.Duration{0, -time.Second} {
		_, err := b.CallTimeout("op", ShapeEmpty, timeout, func(h Handle) status.Code {
			go func() {
				<-released
				b.CompleteEmpty(h, status.Success)
			}()
			return status.Success
		})
		if status.CodeOf(err) != status.Timeout {
			t.Fatalf("timeout %v: expected timeout, got %v", timeout, err)
		}
	}

	close(released)
	waitDrained(t, b)
}

func TestCallAsync_Success(t *testing.T) {
	b := New()

	done := make(chan Outcome, 1)
	code := b.CallAsync(ShapeEmpty, completeLater(b, time.Millisecond, status.Success),
		func(out Outcome) { done <- out })
	if code != status.Success {
		t.Fatalf("expected immediate success, got %v", code)
	}

	select {
	case out := <-done:
		if out.Code != status.Success {
			t.Fatalf("expected delivered success, got %v", out.Code)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("continuation never fired")
	}
}

// Early error means the continuation is guaranteed never to be invoked.
func TestCallAsync_EarlyErrorSkipsContinuation(t *testing.T) {
	b := New()

	done := make(chan Outcome, 1)
	code := b.CallAsync(ShapeEmpty, func(h Handle) status.Code {
		return status.InvalidParam
	}, func(out Outcome) { done <- out })
	if code != status.InvalidParam {
		t.Fatalf("expected invalid_param, got %v", code)
	}
	if b.Pending() != 0 {
		t.Fatal("early error must discard the orphaned entry")
	}

	select {
	case <-done:
		t.Fatal("continuation invoked despite early error")
	case <-time.After(50 * time.Millisecond):
	}
}

// A panicking continuation must be contained at the dispatch boundary.
func TestCallAsync_PanicContained(t *testing.T) {
	b := New()

	var captured Handle
	code := b.CallAsync(ShapeEmpty, func(h Handle) status.Code {
		captured = h
		return status.Success
	}, func(out Outcome) {
		panic("continuation exploded")
	})
	if code != status.Success {
		t.Fatalf("expected success, got %v", code)
	}

	// Dispatch on this goroutine; the firewall must swallow the panic.
	b.CompleteEmpty(captured, status.Success)

	if b.Pending() != 0 {
		t.Fatal("entry not consumed")
	}
}

// A completion arriving before the native call returns is legal: the
// continuation is registered strictly before invocation.
func TestDispatchBeforeReturn(t *testing.T) {
	b := New()

	_, err := b.Call("op", ShapeEmpty, func(h Handle) status.Code {
		b.CompleteEmpty(h, status.Success)
		return status.Success
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// N concurrent calls with distinct tokens must each receive their own
// completion under concurrent dispatch from multiple goroutines.
func TestConcurrentRouting(t *testing.T) {
	b := New()
	const n = 64

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(want int32) {
			defer wg.Done()
			out, err := b.Call("op", ShapeHandle, func(h Handle) status.Code {
				go func() {
					time.Sleep(time.Duration(want%7) * time.Millisecond)
					b.CompleteHandle(h, status.Success, want)
				}()
				return status.Success
			})
			if err != nil {
				t.Errorf("call %d failed: %v", want, err)
				return
			}
			if out.Value != want {
				t.Errorf("call %d received value %d", want, out.Value)
			}
		}(int32(i))
	}
	wg.Wait()

	if b.Pending() != 0 {
		t.Fatalf("expected drained registry, %d pending", b.Pending())
	}
}

func TestClose_PendingCalls(t *testing.T) {
	b := New()

	released := make(chan struct{})
	code := b.CallAsync(ShapeEmpty, func(h Handle) status.Code {
		go func() {
			<-released
			b.CompleteEmpty(h, status.Success)
		}()
		return status.Success
	}, func(Outcome) {})
	if code != status.Success {
		t.Fatalf("expected success, got %v", code)
	}

	if err := b.Close(); status.CodeOf(err) != status.InvalidState {
		t.Fatalf("close with pending call must fail, got %v", err)
	}

	close(released)
	waitDrained(t, b)

	if err := b.Close(); err != nil {
		t.Fatalf("close after drain failed: %v", err)
	}
}

// waitDrained polls until the registry is empty, failing after a generous
// deadline.
func waitDrained(t *testing.T, b *Bridge) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for b.Pending() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("registry never drained: %d pending", b.Pending())
		}
		time.Sleep(time.Millisecond)
	}
}
