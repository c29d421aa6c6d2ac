package native

import (
	"github.com/marinocpqd/indy-sdk/bridge"
	"github.com/marinocpqd/indy-sdk/status"
)

// Callback signatures, one per result shape. The bridge's dispatch
// adapters (Bridge.CompleteEmpty and friends) satisfy these directly.
type (
	EmptyCB      func(h bridge.Handle, code status.Code)
	HandleCB     func(h bridge.Handle, code status.Code, value int32)
	StringCB     func(h bridge.Handle, code status.Code, s string)
	StringPairCB func(h bridge.Handle, code status.Code, a, b string)
	BytesCB      func(h bridge.Handle, code status.Code, data []byte)
)

// Library is the outbound calling convention, one method per native
// operation. Implementations must return the immediate status and, for a
// Success return, invoke the supplied callback exactly once later, on a
// thread of their own choosing. The callback must never be invoked after
// a non-Success return.
type Library interface {
	// Pool ledger operations.
	CreatePoolLedgerConfig(h bridge.Handle, name, config string, cb EmptyCB) status.Code
	OpenPoolLedger(h bridge.Handle, name, config string, cb HandleCB) status.Code
	RefreshPoolLedger(h bridge.Handle, pool int32, cb EmptyCB) status.Code
	ListPools(h bridge.Handle, cb StringCB) status.Code
	ClosePoolLedger(h bridge.Handle, pool int32, cb EmptyCB) status.Code
	DeletePoolLedgerConfig(h bridge.Handle, name string, cb EmptyCB) status.Code
	SetProtocolVersion(h bridge.Handle, version int, cb EmptyCB) status.Code

	// Payment operations.
	CreatePaymentAddress(h bridge.Handle, wallet int32, method, config string, cb StringCB) status.Code
	ListPaymentAddresses(h bridge.Handle, wallet int32, cb StringCB) status.Code
	BuildPaymentReq(h bridge.Handle, wallet int32, submitterDID, inputs, outputs, extra string, cb StringPairCB) status.Code
	ParsePaymentResponse(h bridge.Handle, method, response string, cb StringCB) status.Code
}
