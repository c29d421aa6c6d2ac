package pool

import (
	"time"

	"github.com/marinocpqd/indy-sdk/bridge"
	"github.com/marinocpqd/indy-sdk/native"
	"github.com/marinocpqd/indy-sdk/status"
)

// Pool drives the pool ledger operations of one native library through a
// shared bridge.
type Pool struct {
	b   *bridge.Bridge
	lib native.Library
}

// New binds the façade to a bridge and a library. Façades sharing a
// library must share the bridge whose adapters the library fires.
func New(b *bridge.Bridge, lib native.Library) *Pool {
	return &Pool{b: b, lib: lib}
}

// CreateLedgerConfig creates a named local pool ledger config that can
// later be used to connect to pool nodes. config is a JSON document:
//
//	{"genesis_txn": string (required), path to the genesis transaction file}
func (p *Pool) CreateLedgerConfig(name, config string) error {
	_, err := p.b.Call("pool.CreateLedgerConfig", bridge.ShapeEmpty,
		p.createLedgerConfig(name, config))
	return err
}

// CreateLedgerConfigTimeout is CreateLedgerConfig with a deadline on the
// wait. On expiry the config may still be created behind the caller's
// back.
func (p *Pool) CreateLedgerConfigTimeout(name, config string, timeout time.Duration) error {
	_, err := p.b.CallTimeout("pool.CreateLedgerConfig", bridge.ShapeEmpty, timeout,
		p.createLedgerConfig(name, config))
	return err
}

// CreateLedgerConfigAsync registers fn to receive the completion status.
func (p *Pool) CreateLedgerConfigAsync(name, config string, fn func(status.Code)) status.Code {
	return p.b.CallAsync(bridge.ShapeEmpty, p.createLedgerConfig(name, config),
		func(out bridge.Outcome) { fn(out.Code) })
}

func (p *Pool) createLedgerConfig(name, config string) bridge.NativeFunc {
	return func(h bridge.Handle) status.Code {
		return p.lib.CreatePoolLedgerConfig(h, name, config, p.b.CompleteEmpty)
	}
}

// OpenLedger opens the named pool ledger and connects to its nodes,
// returning the pool handle used by the other pool operations. A pool
// cannot be opened twice under the same name. config is an optional
// runtime configuration JSON document:
//
//	{
//	    "refresh_on_open": bool (optional),
//	    "auto_refresh_time": int (optional, minutes),
//	    "network_timeout": int (optional, milliseconds)
//	}
func (p *Pool) OpenLedger(name, config string) (int32, error) {
	out, err := p.b.Call("pool.OpenLedger", bridge.ShapeHandle,
		p.openLedger(name, config))
	if err != nil {
		return 0, err
	}
	return out.Value, nil
}

// OpenLedgerTimeout is OpenLedger with a deadline on the wait.
func (p *Pool) OpenLedgerTimeout(name, config string, timeout time.Duration) (int32, error) {
	out, err := p.b.CallTimeout("pool.OpenLedger", bridge.ShapeHandle, timeout,
		p.openLedger(name, config))
	if err != nil {
		return 0, err
	}
	return out.Value, nil
}

// OpenLedgerAsync registers fn to receive the completion status and the
// pool handle.
func (p *Pool) OpenLedgerAsync(name, config string, fn func(status.Code, int32)) status.Code {
	return p.b.CallAsync(bridge.ShapeHandle, p.openLedger(name, config),
		func(out bridge.Outcome) { fn(out.Code, out.Payload.Value) })
}

func (p *Pool) openLedger(name, config string) bridge.NativeFunc {
	return func(h bridge.Handle) status.Code {
		return p.lib.OpenPoolLedger(h, name, config, p.b.CompleteHandle)
	}
}

// Refresh fetches fresh pool data for an opened pool.
func (p *Pool) Refresh(poolHandle int32) error {
	_, err := p.b.Call("pool.Refresh", bridge.ShapeEmpty, p.refresh(poolHandle))
	return err
}

// RefreshTimeout is Refresh with a deadline on the wait.
func (p *Pool) RefreshTimeout(poolHandle int32, timeout time.Duration) error {
	_, err := p.b.CallTimeout("pool.Refresh", bridge.ShapeEmpty, timeout, p.refresh(poolHandle))
	return err
}

// RefreshAsync registers fn to receive the completion status.
func (p *Pool) RefreshAsync(poolHandle int32, fn func(status.Code)) status.Code {
	return p.b.CallAsync(bridge.ShapeEmpty, p.refresh(poolHandle),
		func(out bridge.Outcome) { fn(out.Code) })
}

func (p *Pool) refresh(poolHandle int32) bridge.NativeFunc {
	return func(h bridge.Handle) status.Code {
		return p.lib.RefreshPoolLedger(h, poolHandle, p.b.CompleteEmpty)
	}
}

// List returns the created pool ledger configs as a JSON array of
// {"pool": name} objects.
func (p *Pool) List() (string, error) {
	out, err := p.b.Call("pool.List", bridge.ShapeString, p.list())
	if err != nil {
		return "", err
	}
	return out.Str, nil
}

// ListTimeout is List with a deadline on the wait.
func (p *Pool) ListTimeout(timeout time.Duration) (string, error) {
	out, err := p.b.CallTimeout("pool.List", bridge.ShapeString, timeout, p.list())
	if err != nil {
		return "", err
	}
	return out.Str, nil
}

// ListAsync registers fn to receive the completion status and the list.
func (p *Pool) ListAsync(fn func(status.Code, string)) status.Code {
	return p.b.CallAsync(bridge.ShapeString, p.list(),
		func(out bridge.Outcome) { fn(out.Code, out.Payload.Str) })
}

func (p *Pool) list() bridge.NativeFunc {
	return func(h bridge.Handle) status.Code {
		return p.lib.ListPools(h, p.b.CompleteString)
	}
}

// Close closes an opened pool and frees its handle.
func (p *Pool) Close(poolHandle int32) error {
	_, err := p.b.Call("pool.Close", bridge.ShapeEmpty, p.close(poolHandle))
	return err
}

// CloseTimeout is Close with a deadline on the wait.
func (p *Pool) CloseTimeout(poolHandle int32, timeout time.Duration) error {
	_, err := p.b.CallTimeout("pool.Close", bridge.ShapeEmpty, timeout, p.close(poolHandle))
	return err
}

// CloseAsync registers fn to receive the completion status.
func (p *Pool) CloseAsync(poolHandle int32, fn func(status.Code)) status.Code {
	return p.b.CallAsync(bridge.ShapeEmpty, p.close(poolHandle),
		func(out bridge.Outcome) { fn(out.Code) })
}

func (p *Pool) close(poolHandle int32) bridge.NativeFunc {
	return func(h bridge.Handle) status.Code {
		return p.lib.ClosePoolLedger(h, poolHandle, p.b.CompleteEmpty)
	}
}

// Delete deletes a pool ledger config. The pool must not be open.
func (p *Pool) Delete(name string) error {
	_, err := p.b.Call("pool.Delete", bridge.ShapeEmpty, p.delete(name))
	return err
}

// DeleteTimeout is Delete with a deadline on the wait.
func (p *Pool) DeleteTimeout(name string, timeout time.Duration) error {
	_, err := p.b.CallTimeout("pool.Delete", bridge.ShapeEmpty, timeout, p.delete(name))
	return err
}

// DeleteAsync registers fn to receive the completion status.
func (p *Pool) DeleteAsync(name string, fn func(status.Code)) status.Code {
	return p.b.CallAsync(bridge.ShapeEmpty, p.delete(name),
		func(out bridge.Outcome) { fn(out.Code) })
}

func (p *Pool) delete(name string) bridge.NativeFunc {
	return func(h bridge.Handle) status.Code {
		return p.lib.DeletePoolLedgerConfig(h, name, p.b.CompleteEmpty)
	}
}

// SetProtocolVersion sets the process-wide protocol version used in every
// request to the pool: 1 for Indy Node 1.3, 2 for Indy Node 1.4 and
// later.
func (p *Pool) SetProtocolVersion(version int) error {
	_, err := p.b.Call("pool.SetProtocolVersion", bridge.ShapeEmpty,
		p.setProtocolVersion(version))
	return err
}

// SetProtocolVersionTimeout is SetProtocolVersion with a deadline on the
// wait.
func (p *Pool) SetProtocolVersionTimeout(version int, timeout time.Duration) error {
	_, err := p.b.CallTimeout("pool.SetProtocolVersion", bridge.ShapeEmpty, timeout,
		p.setProtocolVersion(version))
	return err
}

// SetProtocolVersionAsync registers fn to receive the completion status.
func (p *Pool) SetProtocolVersionAsync(version int, fn func(status.Code)) status.Code {
	return p.b.CallAsync(bridge.ShapeEmpty, p.setProtocolVersion(version),
		func(out bridge.Outcome) { fn(out.Code) })
}

func (p *Pool) setProtocolVersion(version int) bridge.NativeFunc {
	return func(h bridge.Handle) status.Code {
		return p.lib.SetProtocolVersion(h, version, p.b.CompleteEmpty)
	}
}
