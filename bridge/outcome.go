package bridge

import (
	"github.com/marinocpqd/indy-sdk/status"
)

// Handle is a correlation token pairing a native call with its eventual
// completion. Handle 0 is never issued.
type Handle int32

// Shape identifies the result payload layout of an operation. The shape
// is fixed per operation and recorded with the pending call; the dispatch
// adapter for a different shape firing for that token is a contract
// violation, not a runtime condition.
type Shape uint8

const (
	ShapeEmpty Shape = iota
	ShapeHandle
	ShapeString
	ShapeStringPair
	ShapeBytes
)

var shapeNames = [...]string{
	ShapeEmpty:      "empty",
	ShapeHandle:     "handle",
	ShapeString:     "string",
	ShapeStringPair: "string_pair",
	ShapeBytes:      "bytes",
}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "unknown"
}

// Payload carries the shape-specific results of a completion. Only the
// fields of the operation's shape are meaningful.
type Payload struct {
	Str   string
	Str2  string
	Bytes []byte
	Value int32
}

// Outcome is the single completion delivered for a token: the native
// status plus the payload (zero-valued unless the status is Success).
type Outcome struct {
	Payload Payload
	Code    status.Code
}

// NativeFunc issues one native call for the given token. It must return
// the call's immediate status: Success means asynchronous work was
// scheduled and the matching dispatch adapter will eventually fire for
// the token; any other value means no callback will ever fire.
type NativeFunc func(h Handle) status.Code

// Callback is a registered continuation. It runs on a thread owned by the
// native runtime and must not block.
type Callback func(out Outcome)
