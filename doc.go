// Package indy is a Go SDK for a libindy-style native library whose
// every operation follows one asynchronous calling convention: the caller
// supplies a correlation token and a callback pointer, and the native
// side completes the call later, on its own threads, by invoking the
// callback at most once with the token, a status code, and the results.
//
// # Architecture Overview
//
// The library is organized into packages with distinct responsibilities:
//
//	indy/          Root package with the Client convenience wiring
//	├── bridge/    Callback-correlation core: token allocator, pending-call
//	│              registry, dispatch adapters, blocking/timeout/closure
//	│              waiters
//	├── status/    Status codes crossing the boundary + structured errors
//	├── native/    The outbound calling convention (Library interface) and
//	│              the cgo binding to the real shared library
//	├── emulated/  In-process emulation of the native library, used by the
//	│              test suite and the CLI
//	├── pool/      Pool ledger façade
//	├── payment/   Payment façade
//	└── cmd/indy/  CLI and interactive TUI
//
// # Quick Start
//
// Bind a client to a library and call operations in any of the three
// styles:
//
//	lib, err := emulated.Open(dbPath)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer lib.Close()
//
//	client := indy.NewClient(lib)
//	defer client.Close()
//
//	// Blocking.
//	err = client.Pool.CreateLedgerConfig("mypool", `{"genesis_txn": "pool.txn"}`)
//
//	// Blocking with a deadline; the native work continues on expiry.
//	handle, err := client.Pool.OpenLedgerTimeout("mypool", "", time.Second)
//
//	// Closure-based; the continuation fires on a native thread.
//	code := client.Pool.RefreshAsync(handle, func(code status.Code) {
//	    // ...
//	})
package indy
