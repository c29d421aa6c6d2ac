// Package pool exposes the pool ledger operations of the native library.
//
// Every operation comes in three calling styles built on the same bridge
// mechanism:
//
//	Op(...)         block until the native completion arrives
//	OpTimeout(...)  block up to a deadline; on expiry the call returns
//	                status.Timeout but the native operation keeps running
//	                and its side effects still occur
//	OpAsync(...)    register a continuation and return the immediate
//	                status; the continuation runs later on a native thread
//
// A synchronous failure status from the native call short-circuits all
// three styles: blocking variants return the error at once and an Async
// continuation is guaranteed never to be invoked.
package pool
