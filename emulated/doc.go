// Package emulated is an in-process stand-in for the native library.
//
// It implements native.Library with the same observable contract the real
// shared library has: every operation validates its arguments
// synchronously and returns an immediate status; on Success the work is
// queued to a worker goroutine, which stands in for the native command
// thread and eventually fires the callback exactly once with the token.
//
// The early/late split is faithful: argument structure problems are
// rejected synchronously (early errors, no callback ever fires), while
// file I/O, genesis content validation, and store lookups happen on the
// worker and surface as delivered failure statuses (late errors).
//
// Pool ledger configs persist in a SQLite database, so created pools are
// observable across Library instances, including after a caller timed out
// and the work completed behind its back. Open pools, the protocol
// version, and payment addresses live in memory.
//
// The package exists for the bridge's test suite and for the CLI; it is
// not a ledger implementation.
package emulated
