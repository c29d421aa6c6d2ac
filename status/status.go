package status

import (
	"errors"
	"fmt"
	"strconv"
)

// Code is a native status code. It crosses the boundary as an int32.
type Code int32

const (
	// Success is the designated success value.
	Success Code = 0

	// InvalidParam reports a malformed or missing call argument.
	InvalidParam Code = 100
	// InvalidState reports an operation against a resource in the wrong
	// state, such as deleting a pool config that is still open.
	InvalidState Code = 112
	// InvalidStructure reports structurally invalid input, such as a config
	// document missing a required field.
	InvalidStructure Code = 113
	// IOError reports a file or network failure inside the native library.
	IOError Code = 114

	// NotFound reports that a named config or handle is unknown.
	NotFound Code = 304
	// AlreadyExists reports a duplicate named resource.
	AlreadyExists Code = 306
	// Timeout is synthesized by the timeout waiter when the deadline
	// expires before the completion arrives. It never originates from the
	// native side; the underlying operation keeps running.
	Timeout Code = 307

	// ProtocolViolation marks a broken bridge invariant (unknown token at
	// dispatch, result-shape mismatch). It is local-only and fatal; it is
	// never returned through a Result or delivered to a continuation.
	ProtocolViolation Code = 800
)

var codeNames = map[Code]string{
	Success:           "success",
	InvalidParam:      "invalid_param",
	InvalidState:      "invalid_state",
	InvalidStructure:  "invalid_structure",
	IOError:           "io_error",
	NotFound:          "not_found",
	AlreadyExists:     "already_exists",
	Timeout:           "timeout",
	ProtocolViolation: "protocol_violation",
}

// String returns the symbolic name for known codes and the numeric value
// for anything else the native side may hand back.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "code_" + strconv.Itoa(int(c))
}

// OK reports whether the code is Success.
func (c Code) OK() bool { return c == Success }

// Err converts the code to an error: nil for Success, a *Error otherwise.
func (c Code) Err(op string) error {
	if c == Success {
		return nil
	}
	return &Error{Op: op, Code: c}
}

// Error is the structured error returned by blocking calls.
type Error struct {
	Cause  error
	Op     string
	Detail string
	Code   Code
}

// Error implements the error interface.
func (e *Error) Error() string {
	s := e.Code.String()
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Detail != "" {
		s += ": " + e.Detail
	}
	if e.Cause != nil {
		s += fmt.Sprintf(" (caused by: %v)", e.Cause)
	}
	return s
}

// Unwrap returns the cause chain.
func (e *Error) Unwrap() error { return e.Cause }

// Is matches another *Error with the same Code, so
// errors.Is(err, status.NotFound.Err("")) works across wrapping.
func (e *Error) Is(target error) bool {
	var te *Error
	if errors.As(target, &te) {
		return e.Code == te.Code
	}
	return false
}

// Errorf builds a *Error with a formatted detail message.
func Errorf(op string, code Code, format string, args ...any) *Error {
	return &Error{Op: op, Code: code, Detail: fmt.Sprintf(format, args...)}
}

// Wrap attaches op and code context to an underlying error.
func Wrap(op string, code Code, cause error) *Error {
	return &Error{Op: op, Code: code, Cause: cause}
}

// CodeOf extracts the Code from an error chain. A nil error maps to
// Success; an error with no *Error in its chain maps to IOError, the
// catch-all the native side uses for unclassified failures.
func CodeOf(err error) Code {
	if err == nil {
		return Success
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return IOError
}
