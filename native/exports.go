//go:build cgo && libindy

package native

/*
#include <stdint.h>
*/
import "C"

import (
	"github.com/marinocpqd/indy-sdk/bridge"
	"github.com/marinocpqd/indy-sdk/status"
)

// The exported trampolines below are the fixed callback targets the
// gateway functions in libindy.go hand to the shared library. They
// resolve tokens against the process-default bridge, so a cgo-bound Lib
// must be driven through façades built on bridge.Default().

//export indyGoEmptyCB
func indyGoEmptyCB(handle C.int32_t, err C.int32_t) {
	bridge.Default().CompleteEmpty(bridge.Handle(handle), status.Code(err))
}

//export indyGoHandleCB
func indyGoHandleCB(handle C.int32_t, err C.int32_t, pool C.int32_t) {
	bridge.Default().CompleteHandle(bridge.Handle(handle), status.Code(err), int32(pool))
}

//export indyGoStrCB
func indyGoStrCB(handle C.int32_t, err C.int32_t, str *C.char) {
	bridge.Default().CompleteString(bridge.Handle(handle), status.Code(err), C.GoString(str))
}

//export indyGoStrStrCB
func indyGoStrStrCB(handle C.int32_t, err C.int32_t, a *C.char, b *C.char) {
	bridge.Default().CompleteStringPair(bridge.Handle(handle), status.Code(err), C.GoString(a), C.GoString(b))
}
