// Package native states the outbound calling convention of the wrapped
// library.
//
// Every operation is a function of the form
//
//	op(token, args..., callback) -> immediate status
//
// where callback is the dispatch adapter matching the operation's result
// shape. A call that returns Success has scheduled asynchronous work and
// the library guarantees at most one later invocation of the callback
// with (token, status, results...); a call that returns anything else
// will never invoke the callback.
//
// Library is the Go interface for that convention. Two implementations
// exist: the cgo binding to the real shared library (behind the libindy
// build tag) and the in-process emulation in package emulated, which
// tests and the CLI use.
package native
