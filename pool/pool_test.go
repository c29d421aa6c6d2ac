package pool

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/marinocpqd/indy-sdk/bridge"
	"github.com/marinocpqd/indy-sdk/emulated"
	"github.com/marinocpqd/indy-sdk/status"
)

const validTimeout = 5 * time.Second

func newFixture(t *testing.T) (*Pool, *bridge.Bridge, *emulated.Library) {
	t.Helper()
	lib, err := emulated.Open(filepath.Join(t.TempDir(), "indy.db"),
		emulated.WithLatency(2*time.Millisecond))
	if err != nil {
		t.Fatalf("open emulated library: %v", err)
	}
	t.Cleanup(func() { _ = lib.Close() })

	b := bridge.New()
	return New(b, lib), b, lib
}

func poolName() string {
	return fmt.Sprintf("TestPool%06d", rand.Intn(1000000))
}

// genesisConfig writes a well-formed genesis transaction file and returns
// the pool config JSON pointing at it.
func genesisConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "genesis.txn")
	content := `{"reqSignature":{},"txn":{"type":"0","data":{"alias":"Node1"}}}` + "\n" +
		`{"reqSignature":{},"txn":{"type":"0","data":{"alias":"Node2"}}}` + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write genesis file: %v", err)
	}
	cfg, _ := json.Marshal(map[string]string{"genesis_txn": path})
	return string(cfg)
}

func poolExists(t *testing.T, p *Pool, name string) bool {
	t.Helper()
	list, err := p.List()
	if err != nil {
		t.Fatalf("list pools: %v", err)
	}
	var entries []struct {
		Pool string `json:"pool"`
	}
	if err := json.Unmarshal([]byte(list), &entries); err != nil {
		t.Fatalf("bad pool list %q: %v", list, err)
	}
	for _, e := range entries {
		if e.Pool == name {
			return true
		}
	}
	return false
}

func TestCreateLedgerConfig(t *testing.T) {
	p, _, _ := newFixture(t)
	name := poolName()

	if err := p.CreateLedgerConfig(name, genesisConfig(t)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !poolExists(t, p, name) {
		t.Fatal("created pool missing from list")
	}
	if err := p.Delete(name); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if poolExists(t, p, name) {
		t.Fatal("deleted pool still listed")
	}
}

func TestCreateLedgerConfig_MissingGenesisTxn(t *testing.T) {
	p, _, _ := newFixture(t)
	name := poolName()

	err := p.CreateLedgerConfig(name, "{}")
	if status.CodeOf(err) != status.InvalidStructure {
		t.Fatalf("expected invalid_structure, got %v", err)
	}
	if poolExists(t, p, name) {
		t.Fatal("rejected pool must not be created")
	}
}

func TestCreateLedgerConfig_UnknownGenesisPath(t *testing.T) {
	p, _, _ := newFixture(t)
	name := poolName()

	err := p.CreateLedgerConfig(name, `{"genesis_txn": "/nonexist15794345"}`)
	if status.CodeOf(err) != status.IOError {
		t.Fatalf("expected io_error, got %v", err)
	}
	if poolExists(t, p, name) {
		t.Fatal("rejected pool must not be created")
	}
}

func TestCreateLedgerConfig_BadGenesisContent(t *testing.T) {
	p, _, _ := newFixture(t)
	name := poolName()

	path := filepath.Join(t.TempDir(), "bad.txn")
	if err := os.WriteFile(path, []byte("Some nonsensical data"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	err := p.CreateLedgerConfig(name, fmt.Sprintf(`{"genesis_txn": %q}`, path))
	if status.CodeOf(err) != status.InvalidStructure {
		t.Fatalf("expected invalid_structure, got %v", err)
	}
	if poolExists(t, p, name) {
		t.Fatal("rejected pool must not be created")
	}
}

func TestCreateLedgerConfig_EmptyName(t *testing.T) {
	p, _, _ := newFixture(t)

	err := p.CreateLedgerConfig("", genesisConfig(t))
	if status.CodeOf(err) != status.InvalidParam {
		t.Fatalf("expected invalid_param, got %v", err)
	}
}

func TestCreateLedgerConfig_AlreadyExists(t *testing.T) {
	p, _, _ := newFixture(t)
	name := poolName()
	cfg := genesisConfig(t)

	if err := p.CreateLedgerConfig(name, cfg); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	err := p.CreateLedgerConfig(name, cfg)
	if status.CodeOf(err) != status.AlreadyExists {
		t.Fatalf("expected already_exists, got %v", err)
	}
}

func TestCreateLedgerConfig_Async(t *testing.T) {
	p, _, _ := newFixture(t)
	name := poolName()

	done := make(chan status.Code, 1)
	code := p.CreateLedgerConfigAsync(name, genesisConfig(t), func(c status.Code) {
		done <- c
	})
	if code != status.Success {
		t.Fatalf("expected immediate success, got %v", code)
	}

	select {
	case c := <-done:
		if c != status.Success {
			t.Fatalf("expected delivered success, got %v", c)
		}
	case <-time.After(validTimeout):
		t.Fatal("continuation never fired")
	}
	if !poolExists(t, p, name) {
		t.Fatal("created pool missing from list")
	}
}

// Early error: the native call rejects synchronously and the continuation
// is never invoked.
func TestCreateLedgerConfig_AsyncEarlyError(t *testing.T) {
	p, _, _ := newFixture(t)
	name := poolName()

	done := make(chan status.Code, 1)
	code := p.CreateLedgerConfigAsync(name, "{}", func(c status.Code) {
		done <- c
	})
	if code != status.InvalidStructure {
		t.Fatalf("expected invalid_structure, got %v", code)
	}

	select {
	case <-done:
		t.Fatal("continuation invoked despite early error")
	case <-time.After(100 * time.Millisecond):
	}
	if poolExists(t, p, name) {
		t.Fatal("rejected pool must not be created")
	}
}

// Late error: the call is accepted synchronously and the failure arrives
// through the continuation.
func TestCreateLedgerConfig_AsyncLateError(t *testing.T) {
	p, _, _ := newFixture(t)
	name := poolName()

	path := filepath.Join(t.TempDir(), "bad.txn")
	if err := os.WriteFile(path, []byte("not json at all"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	done := make(chan status.Code, 1)
	code := p.CreateLedgerConfigAsync(name, fmt.Sprintf(`{"genesis_txn": %q}`, path),
		func(c status.Code) { done <- c })
	if code != status.Success {
		t.Fatalf("expected immediate success, got %v", code)
	}

	select {
	case c := <-done:
		if c != status.InvalidStructure {
			t.Fatalf("expected delivered invalid_structure, got %v", c)
		}
	case <-time.After(validTimeout):
		t.Fatal("continuation never fired")
	}
}

func TestCreateLedgerConfig_Timeout(t *testing.T) {
	p, _, _ := newFixture(t)
	name := poolName()

	if err := p.CreateLedgerConfigTimeout(name, genesisConfig(t), validTimeout); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !poolExists(t, p, name) {
		t.Fatal("created pool missing from list")
	}
}

func TestCreateLedgerConfig_TimeoutWithError(t *testing.T) {
	p, _, _ := newFixture(t)

	err := p.CreateLedgerConfigTimeout(poolName(), "{}", validTimeout)
	if status.CodeOf(err) != status.InvalidStructure {
		t.Fatalf("expected invalid_structure, got %v", err)
	}
}

// Timeout expires while the native call is in flight. The caller sees
// status.Timeout, but the work is not cancelled: the pool shows up once
// the completion lands.
func TestCreateLedgerConfig_TimeoutExpires(t *testing.T) {
	p, b, _ := newFixture(t)
	name := poolName()

	err := p.CreateLedgerConfigTimeout(name, genesisConfig(t), time.Microsecond)
	if status.CodeOf(err) != status.Timeout {
		t.Fatalf("expected timeout, got %v", err)
	}

	deadline := time.Now().Add(validTimeout)
	for !poolExists(t, p, name) {
		if time.Now().After(deadline) {
			t.Fatal("pool never created after timeout")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// The abandoned call's entry must have been consumed by its late
	// completion, not leaked.
	deadline = time.Now().Add(validTimeout)
	for b.Pending() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("registry never drained: %d pending", b.Pending())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestOpenLedger(t *testing.T) {
	p, _, _ := newFixture(t)
	name := poolName()

	if err := p.CreateLedgerConfig(name, genesisConfig(t)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	handle, err := p.OpenLedger(name, "")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if handle <= 0 {
		t.Fatalf("bad pool handle %d", handle)
	}

	// A pool cannot be opened twice under the same name.
	if _, err := p.OpenLedger(name, ""); status.CodeOf(err) != status.InvalidState {
		t.Fatalf("expected invalid_state on reopen, got %v", err)
	}

	if err := p.Refresh(handle); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	// Deleting an open pool is rejected.
	if err := p.Delete(name); status.CodeOf(err) != status.InvalidState {
		t.Fatalf("expected invalid_state on delete-while-open, got %v", err)
	}

	if err := p.Close(handle); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := p.Close(handle); status.CodeOf(err) != status.NotFound {
		t.Fatalf("expected not_found on double close, got %v", err)
	}
	if err := p.Delete(name); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
}

func TestOpenLedger_NotFound(t *testing.T) {
	p, _, _ := newFixture(t)

	_, err := p.OpenLedger(poolName(), "")
	if status.CodeOf(err) != status.NotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestOpenLedger_BadRuntimeConfig(t *testing.T) {
	p, _, _ := newFixture(t)

	_, err := p.OpenLedger(poolName(), "not json")
	if status.CodeOf(err) != status.InvalidStructure {
		t.Fatalf("expected invalid_structure, got %v", err)
	}
}

func TestOpenLedger_RuntimeConfig(t *testing.T) {
	p, _, _ := newFixture(t)
	name := poolName()

	if err := p.CreateLedgerConfig(name, genesisConfig(t)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	handle, err := p.OpenLedgerTimeout(name,
		`{"refresh_on_open": true, "network_timeout": 20000}`, validTimeout)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if err := p.CloseTimeout(handle, validTimeout); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}

func TestRefresh_UnknownHandle(t *testing.T) {
	p, _, _ := newFixture(t)

	if err := p.Refresh(12345); status.CodeOf(err) != status.NotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestList_MultiplePools(t *testing.T) {
	p, _, _ := newFixture(t)
	a, b := poolName()+"A", poolName()+"B"

	if err := p.CreateLedgerConfig(a, genesisConfig(t)); err != nil {
		t.Fatalf("create %s failed: %v", a, err)
	}
	if err := p.CreateLedgerConfig(b, genesisConfig(t)); err != nil {
		t.Fatalf("create %s failed: %v", b, err)
	}
	if !poolExists(t, p, a) || !poolExists(t, p, b) {
		t.Fatal("created pools missing from list")
	}
}

func TestSetProtocolVersion(t *testing.T) {
	p, _, lib := newFixture(t)

	if err := p.SetProtocolVersion(2); err != nil {
		t.Fatalf("set protocol version failed: %v", err)
	}
	if v := lib.ProtocolVersion(); v != 2 {
		t.Fatalf("expected stored version 2, got %d", v)
	}

	if err := p.SetProtocolVersion(5); status.CodeOf(err) != status.InvalidParam {
		t.Fatalf("expected invalid_param, got %v", err)
	}
}

func TestOpenLedgerAsync(t *testing.T) {
	p, _, _ := newFixture(t)
	name := poolName()

	if err := p.CreateLedgerConfig(name, genesisConfig(t)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	type result struct {
		code   status.Code
		handle int32
	}
	done := make(chan result, 1)
	code := p.OpenLedgerAsync(name, "", func(c status.Code, h int32) {
		done <- result{code: c, handle: h}
	})
	if code != status.Success {
		t.Fatalf("expected immediate success, got %v", code)
	}

	select {
	case r := <-done:
		if r.code != status.Success {
			t.Fatalf("expected delivered success, got %v", r.code)
		}
		if r.handle <= 0 {
			t.Fatalf("bad pool handle %d", r.handle)
		}
	case <-time.After(validTimeout):
		t.Fatal("continuation never fired")
	}
}
