//go:build cgo && libindy

package native

/*
#cgo LDFLAGS: -lindy

#include <stdint.h>
#include <stdlib.h>

typedef void (*indy_empty_cb)(int32_t handle, int32_t err);
typedef void (*indy_handle_cb)(int32_t handle, int32_t err, int32_t pool_handle);
typedef void (*indy_str_cb)(int32_t handle, int32_t err, const char *str);
typedef void (*indy_str_str_cb)(int32_t handle, int32_t err, const char *a, const char *b);

extern int32_t indy_create_pool_ledger_config(int32_t handle, const char *name, const char *config, indy_empty_cb cb);
extern int32_t indy_open_pool_ledger(int32_t handle, const char *name, const char *config, indy_handle_cb cb);
extern int32_t indy_refresh_pool_ledger(int32_t handle, int32_t pool, indy_empty_cb cb);
extern int32_t indy_list_pools(int32_t handle, indy_str_cb cb);
extern int32_t indy_close_pool_ledger(int32_t handle, int32_t pool, indy_empty_cb cb);
extern int32_t indy_delete_pool_ledger_config(int32_t handle, const char *name, indy_empty_cb cb);
extern int32_t indy_set_protocol_version(int32_t handle, int64_t version, indy_empty_cb cb);

extern int32_t indy_create_payment_address(int32_t handle, int32_t wallet, const char *method, const char *config, indy_str_cb cb);
extern int32_t indy_list_payment_addresses(int32_t handle, int32_t wallet, indy_str_cb cb);
extern int32_t indy_build_payment_req(int32_t handle, int32_t wallet, const char *submitter, const char *inputs, const char *outputs, const char *extra, indy_str_str_cb cb);
extern int32_t indy_parse_payment_response(int32_t handle, const char *method, const char *response, indy_str_cb cb);

// Trampolines exported from exports.go.
extern void indyGoEmptyCB(int32_t handle, int32_t err);
extern void indyGoHandleCB(int32_t handle, int32_t err, int32_t pool_handle);
extern void indyGoStrCB(int32_t handle, int32_t err, const char *str);
extern void indyGoStrStrCB(int32_t handle, int32_t err, const char *a, const char *b);

// Gateway functions: each issues the native call with the matching fixed
// trampoline as the callback pointer.
static int32_t go_indy_create_pool_ledger_config(int32_t h, const char *name, const char *config) {
	return indy_create_pool_ledger_config(h, name, config, (indy_empty_cb)indyGoEmptyCB);
}
static int32_t go_indy_open_pool_ledger(int32_t h, const char *name, const char *config) {
	return indy_open_pool_ledger(h, name, config, (indy_handle_cb)indyGoHandleCB);
}
static int32_t go_indy_refresh_pool_ledger(int32_t h, int32_t pool) {
	return indy_refresh_pool_ledger(h, pool, (indy_empty_cb)indyGoEmptyCB);
}
static int32_t go_indy_list_pools(int32_t h) {
	return indy_list_pools(h, (indy_str_cb)indyGoStrCB);
}
static int32_t go_indy_close_pool_ledger(int32_t h, int32_t pool) {
	return indy_close_pool_ledger(h, pool, (indy_empty_cb)indyGoEmptyCB);
}
static int32_t go_indy_delete_pool_ledger_config(int32_t h, const char *name) {
	return indy_delete_pool_ledger_config(h, name, (indy_empty_cb)indyGoEmptyCB);
}
static int32_t go_indy_set_protocol_version(int32_t h, int64_t version) {
	return indy_set_protocol_version(h, version, (indy_empty_cb)indyGoEmptyCB);
}
static int32_t go_indy_create_payment_address(int32_t h, int32_t wallet, const char *method, const char *config) {
	return indy_create_payment_address(h, wallet, method, config, (indy_str_cb)indyGoStrCB);
}
static int32_t go_indy_list_payment_addresses(int32_t h, int32_t wallet) {
	return indy_list_payment_addresses(h, wallet, (indy_str_cb)indyGoStrCB);
}
static int32_t go_indy_build_payment_req(int32_t h, int32_t wallet, const char *submitter, const char *inputs, const char *outputs, const char *extra) {
	return indy_build_payment_req(h, wallet, submitter, inputs, outputs, extra, (indy_str_str_cb)indyGoStrStrCB);
}
static int32_t go_indy_parse_payment_response(int32_t h, const char *method, const char *response) {
	return indy_parse_payment_response(h, method, response, (indy_str_cb)indyGoStrCB);
}
*/
import "C"

import (
	"unsafe"

	"github.com/marinocpqd/indy-sdk/bridge"
	"github.com/marinocpqd/indy-sdk/status"
)

// Lib binds Library to the real shared library. The callback pointers
// handed to it are the fixed trampolines in exports.go, which resolve
// tokens against bridge.Default(); the per-call cb arguments exist to
// satisfy the interface and reach the same adapters.
type Lib struct{}

var _ Library = Lib{}

// cString returns a C copy of s, or NULL for the empty string, matching
// the library's optional-argument convention.
func cString(s string) *C.char {
	if s == "" {
		return nil
	}
	return C.CString(s)
}

func freeCString(p *C.char) {
	if p != nil {
		C.free(unsafe.Pointer(p))
	}
}

func (Lib) CreatePoolLedgerConfig(h bridge.Handle, name, config string, _ EmptyCB) status.Code {
	cName, cConfig := C.CString(name), cString(config)
	defer freeCString(cName)
	defer freeCString(cConfig)
	return status.Code(C.go_indy_create_pool_ledger_config(C.int32_t(h), cName, cConfig))
}

func (Lib) OpenPoolLedger(h bridge.Handle, name, config string, _ HandleCB) status.Code {
	cName, cConfig := C.CString(name), cString(config)
	defer freeCString(cName)
	defer freeCString(cConfig)
	return status.Code(C.go_indy_open_pool_ledger(C.int32_t(h), cName, cConfig))
}

func (Lib) RefreshPoolLedger(h bridge.Handle, pool int32, _ EmptyCB) status.Code {
	return status.Code(C.go_indy_refresh_pool_ledger(C.int32_t(h), C.int32_t(pool)))
}

func (Lib) ListPools(h bridge.Handle, _ StringCB) status.Code {
	return status.Code(C.go_indy_list_pools(C.int32_t(h)))
}

func (Lib) ClosePoolLedger(h bridge.Handle, pool int32, _ EmptyCB) status.Code {
	return status.Code(C.go_indy_close_pool_ledger(C.int32_t(h), C.int32_t(pool)))
}

func (Lib) DeletePoolLedgerConfig(h bridge.Handle, name string, _ EmptyCB) status.Code {
	cName := C.CString(name)
	defer freeCString(cName)
	return status.Code(C.go_indy_delete_pool_ledger_config(C.int32_t(h), cName))
}

func (Lib) SetProtocolVersion(h bridge.Handle, version int, _ EmptyCB) status.Code {
	return status.Code(C.go_indy_set_protocol_version(C.int32_t(h), C.int64_t(version)))
}

func (Lib) CreatePaymentAddress(h bridge.Handle, wallet int32, method, config string, _ StringCB) status.Code {
	cMethod, cConfig := C.CString(method), cString(config)
	defer freeCString(cMethod)
	defer freeCString(cConfig)
	return status.Code(C.go_indy_create_payment_address(C.int32_t(h), C.int32_t(wallet), cMethod, cConfig))
}

func (Lib) ListPaymentAddresses(h bridge.Handle, wallet int32, _ StringCB) status.Code {
	return status.Code(C.go_indy_list_payment_addresses(C.int32_t(h), C.int32_t(wallet)))
}

func (Lib) BuildPaymentReq(h bridge.Handle, wallet int32, submitterDID, inputs, outputs, extra string, _ StringPairCB) status.Code {
	cSub, cIn := cString(submitterDID), C.CString(inputs)
	cOut, cExtra := C.CString(outputs), cString(extra)
	defer freeCString(cSub)
	defer freeCString(cIn)
	defer freeCString(cOut)
	defer freeCString(cExtra)
	return status.Code(C.go_indy_build_payment_req(C.int32_t(h), C.int32_t(wallet), cSub, cIn, cOut, cExtra))
}

func (Lib) ParsePaymentResponse(h bridge.Handle, method, response string, _ StringCB) status.Code {
	cMethod, cResp := C.CString(method), C.CString(response)
	defer freeCString(cMethod)
	defer freeCString(cResp)
	return status.Code(C.go_indy_parse_payment_response(C.int32_t(h), cMethod, cResp))
}
