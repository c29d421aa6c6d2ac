// Package status defines the status codes that cross the native boundary
// and the structured error type built on top of them.
//
// Every native call returns a Code synchronously, and every asynchronous
// completion carries a Code as its first result. Codes are plain int32
// values on the wire; the named constants cover the closed set this SDK
// recognizes.
//
// The categories:
//
//	Success                                   the designated success value
//	InvalidParam, InvalidState,               synchronous argument/state
//	InvalidStructure                          rejection by the native side
//	IOError                                   file or network failure
//	NotFound                                  named config or handle unknown
//	AlreadyExists                             duplicate named resource
//	Timeout                                   synthesized locally by the
//	                                          timeout waiter, never native
//	ProtocolViolation                         bridge invariant broken; fatal,
//	                                          never returned as an error
//
// Blocking callers receive a *status.Error wrapping the failing Code:
//
//	if err := pool.CreateLedgerConfig(name, cfg); err != nil {
//	    if status.CodeOf(err) == status.AlreadyExists {
//	        // ...
//	    }
//	}
//
// Closure-based callers receive the Code directly.
package status
