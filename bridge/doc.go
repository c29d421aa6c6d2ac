// Package bridge implements the callback-correlation core of the SDK.
//
// The native library exposes every operation through one calling
// convention: the caller supplies a correlation token and a callback
// pointer, the native side works on its own threads and invokes the
// callback at most once with (token, status, results...). This package
// turns that raw convention into three safe calling styles:
//
//	Call         block until the completion arrives
//	CallTimeout  block up to a deadline, give up early while the native
//	             operation keeps running
//	CallAsync    register a continuation and return immediately
//
// # Pending-call registry
//
// The registry is the single source of truth for call ownership. A
// continuation is registered under a fresh token strictly before the
// native call is issued, and the registry entry, not any caller stack
// frame, owns the continuation until a dispatch adapter takes it. The
// atomic take is the one synchronization point: exactly one of a dispatch
// adapter or the early-error cleanup ever wins the entry for a token.
//
// Three boundary-specific failure modes are handled here:
//
//  1. Early error. The native call fails synchronously, before any
//     asynchronous work is scheduled. The entry is discarded on the spot
//     and no completion is ever delivered; a registered closure is
//     guaranteed never to be invoked.
//  2. Caller timeout. CallTimeout gives up, but the entry stays in the
//     registry because the native side will still fire the callback. The
//     eventual completion lands in the abandoned one-shot channel's buffer
//     and is discarded with the entry; it never touches freed state.
//  3. Foreign threads. Completions arrive on threads the bridge does not
//     own. Dispatch never blocks, and user continuations run inside a
//     recover firewall so a panic cannot unwind into the native stack.
//
// # Dispatch adapters
//
// One Complete* method exists per result shape (empty, handle, string,
// string pair, bytes). These are the functions actually handed across the
// boundary as callback targets. An unknown token or a shape mismatch at
// dispatch is a broken bridge invariant and is treated as fatal through
// the violation hook, never silently ignored.
package bridge
