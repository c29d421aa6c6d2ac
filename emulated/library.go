package emulated

import (
	"context"
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/marinocpqd/indy-sdk/bridge"
	"github.com/marinocpqd/indy-sdk/native"
	"github.com/marinocpqd/indy-sdk/status"
)

const metaProtocolVersion = "protocol_version"

// Library emulates the native library in-process. See the package doc for
// the contract it upholds.
type Library struct {
	log      *zap.Logger
	store    *store
	tasks    chan func()
	open     map[int32]string
	methods  map[string]bool
	addrs    map[int32][]string
	latency  time.Duration
	wg       sync.WaitGroup
	mu       sync.Mutex
	closeMu  sync.RWMutex
	nextPool atomic.Int32
	closed   bool
}

var _ native.Library = (*Library)(nil)

// Option configures a Library.
type Option func(*Library)

// WithLogger sets the library logger. The default is a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(l *Library) {
		if log != nil {
			l.log = log
		}
	}
}

// WithLatency sets the simulated native completion latency applied before
// each queued task runs.
func WithLatency(d time.Duration) Option {
	return func(l *Library) {
		if d >= 0 {
			l.latency = d
		}
	}
}

// Open creates a Library backed by the SQLite database at dbPath and
// starts its worker goroutines, which stand in for the native command
// threads.
func Open(dbPath string, opts ...Option) (*Library, error) {
	l := &Library{
		log:     zap.NewNop(),
		tasks:   make(chan func(), 64),
		open:    make(map[int32]string),
		addrs:   make(map[int32][]string),
		methods: map[string]bool{"sov": true, "null": true},
		latency: 2 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(l)
	}

	st, err := openStore(context.Background(), dbPath)
	if err != nil {
		return nil, status.Wrap("emulated.Open", status.IOError, err)
	}
	l.store = st

	for i := 0; i < 2; i++ {
		l.wg.Add(1)
		go l.worker()
	}
	return l, nil
}

// Close stops the workers after draining queued tasks and closes the
// store. Calls issued after Close fail synchronously with InvalidState.
func (l *Library) Close() error {
	l.closeMu.Lock()
	if l.closed {
		l.closeMu.Unlock()
		return nil
	}
	l.closed = true
	l.closeMu.Unlock()

	close(l.tasks)
	l.wg.Wait()
	return l.store.close()
}

func (l *Library) worker() {
	defer l.wg.Done()
	for task := range l.tasks {
		if l.latency > 0 {
			time.Sleep(l.latency)
		}
		task()
	}
}

// schedule queues task for a worker. The Success return models the
// native call's "work scheduled" status; the callback fires later from
// the worker goroutine.
func (l *Library) schedule(task func()) status.Code {
	l.closeMu.RLock()
	defer l.closeMu.RUnlock()
	if l.closed {
		return status.InvalidState
	}
	l.tasks <- task
	return status.Success
}

type poolConfig struct {
	GenesisTxn string `json:"genesis_txn"`
}

// validateGenesis reads the genesis transaction file. A missing file is
// an IOError, content that is not one JSON object per line is an
// InvalidStructure; both are late errors by design.
func validateGenesis(path string) status.Code {
	data, err := os.ReadFile(path)
	if err != nil {
		return status.IOError
	}
	lines := strings.Split(string(data), "\n")
	seen := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var txn map[string]any
		if err := json.Unmarshal([]byte(line), &txn); err != nil {
			return status.InvalidStructure
		}
		seen++
	}
	if seen == 0 {
		return status.InvalidStructure
	}
	return status.Success
}

func (l *Library) CreatePoolLedgerConfig(h bridge.Handle, name, config string, cb native.EmptyCB) status.Code {
	if name == "" {
		return status.InvalidParam
	}
	var cfg poolConfig
	if err := json.Unmarshal([]byte(config), &cfg); err != nil || cfg.GenesisTxn == "" {
		return status.InvalidStructure
	}

	return l.schedule(func() {
		if code := validateGenesis(cfg.GenesisTxn); !code.OK() {
			cb(h, code)
			return
		}
		created, err := l.store.createConfig(context.Background(), name, cfg.GenesisTxn)
		switch {
		case err != nil:
			l.log.Warn("pool config insert failed", zap.String("pool", name), zap.Error(err))
			cb(h, status.IOError)
		case !created:
			cb(h, status.AlreadyExists)
		default:
			l.log.Debug("pool config created", zap.String("pool", name))
			cb(h, status.Success)
		}
	})
}

type openConfig struct {
	RefreshOnOpen   *bool `json:"refresh_on_open"`
	AutoRefreshTime *int  `json:"auto_refresh_time"`
	NetworkTimeout  *int  `json:"network_timeout"`
}

func (l *Library) OpenPoolLedger(h bridge.Handle, name, config string, cb native.HandleCB) status.Code {
	if name == "" {
		return status.InvalidParam
	}
	if config != "" {
		var cfg openConfig
		if err := json.Unmarshal([]byte(config), &cfg); err != nil {
			return status.InvalidStructure
		}
	}

	return l.schedule(func() {
		exists, err := l.store.configExists(context.Background(), name)
		if err != nil {
			cb(h, status.IOError, 0)
			return
		}
		if !exists {
			cb(h, status.NotFound, 0)
			return
		}

		l.mu.Lock()
		for _, openName := range l.open {
			if openName == name {
				l.mu.Unlock()
				cb(h, status.InvalidState, 0)
				return
			}
		}
		pool := l.nextPool.Add(1)
		l.open[pool] = name
		l.mu.Unlock()

		l.log.Debug("pool opened", zap.String("pool", name), zap.Int32("handle", pool))
		cb(h, status.Success, pool)
	})
}

func (l *Library) RefreshPoolLedger(h bridge.Handle, pool int32, cb native.EmptyCB) status.Code {
	return l.schedule(func() {
		l.mu.Lock()
		_, ok := l.open[pool]
		l.mu.Unlock()
		if !ok {
			cb(h, status.NotFound)
			return
		}
		cb(h, status.Success)
	})
}

func (l *Library) ListPools(h bridge.Handle, cb native.StringCB) status.Code {
	return l.schedule(func() {
		names, err := l.store.listConfigs(context.Background())
		if err != nil {
			cb(h, status.IOError, "")
			return
		}
		type entry struct {
			Pool string `json:"pool"`
		}
		entries := make([]entry, 0, len(names))
		for _, name := range names {
			entries = append(entries, entry{Pool: name})
		}
		out, err := json.Marshal(entries)
		if err != nil {
			cb(h, status.IOError, "")
			return
		}
		cb(h, status.Success, string(out))
	})
}

func (l *Library) ClosePoolLedger(h bridge.Handle, pool int32, cb native.EmptyCB) status.Code {
	return l.schedule(func() {
		l.mu.Lock()
		name, ok := l.open[pool]
		if ok {
			delete(l.open, pool)
		}
		l.mu.Unlock()
		if !ok {
			cb(h, status.NotFound)
			return
		}
		l.log.Debug("pool closed", zap.String("pool", name), zap.Int32("handle", pool))
		cb(h, status.Success)
	})
}

func (l *Library) DeletePoolLedgerConfig(h bridge.Handle, name string, cb native.EmptyCB) status.Code {
	if name == "" {
		return status.InvalidParam
	}
	return l.schedule(func() {
		l.mu.Lock()
		stillOpen := false
		for _, openName := range l.open {
			if openName == name {
				stillOpen = true
				break
			}
		}
		l.mu.Unlock()
		if stillOpen {
			cb(h, status.InvalidState)
			return
		}

		deleted, err := l.store.deleteConfig(context.Background(), name)
		switch {
		case err != nil:
			cb(h, status.IOError)
		case !deleted:
			cb(h, status.NotFound)
		default:
			l.log.Debug("pool config deleted", zap.String("pool", name))
			cb(h, status.Success)
		}
	})
}

func (l *Library) SetProtocolVersion(h bridge.Handle, version int, cb native.EmptyCB) status.Code {
	if version != 1 && version != 2 {
		return status.InvalidParam
	}
	return l.schedule(func() {
		err := l.store.setMeta(context.Background(), metaProtocolVersion, strconv.Itoa(version))
		if err != nil {
			cb(h, status.IOError)
			return
		}
		cb(h, status.Success)
	})
}

// ProtocolVersion reports the stored protocol version, defaulting to 1.
// It is a direct query, not part of the native calling convention.
func (l *Library) ProtocolVersion() int {
	value, ok, err := l.store.getMeta(context.Background(), metaProtocolVersion)
	if err != nil || !ok {
		return 1
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return 1
	}
	return v
}
