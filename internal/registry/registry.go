// internal/registry/registry.go
//
// Tenant connection registry.
//
// Context
// -------
// Every site-scoped operation reaches its tenant database through a handle
// resolved here.  The registry caches handles in a sync.Map keyed by the
// opaque connection string, collapses concurrent first resolves with
// singleflight, and evicts idle handles in the background.  Equal strings
// always map to the identical handle instance, so one tenant never holds
// more than one pool and two tenants never share one.
//
// The registry is an explicit value constructed once in cmd/admin and
// injected into handlers.  Tests build isolated registries with a fake
// opener; nothing here is package-global.
//
// Connection strings are credentials.  They are never logged; diagnostics
// use an eight-character SHA-256 fingerprint instead.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package registry

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/omniakid/omniakid/internal/database"
	"github.com/omniakid/omniakid/internal/fault"
	"github.com/omniakid/omniakid/internal/metrics"
)

// Static defaults.  Override via Options.
const (
	IdleTTL       = 30 * time.Minute
	MaxHandles    = 100
	EvictInterval = 5 * time.Minute
)

// Opener turns a connection string into a pool.  The default opens lazily,
// so Resolve never touches the network; tests inject sqlmock-backed pools.
type Opener func(connString string) (*sqlx.DB, error)

// Options tunes one Registry instance.  Zero values fall back to package
// defaults.
type Options struct {
	Opener        Opener
	IdleTTL       time.Duration
	MaxHandles    int
	EvictInterval time.Duration
}

type entry struct {
	handle   *TenantHandle
	lastSeen int64 // UnixNano
}

// Registry caches tenant handles, one per connection string.
type Registry struct {
	opener      Opener
	sfg         singleflight.Group
	m           sync.Map // connString → *entry
	idleTTL     time.Duration
	maxHandles  int
	evictTicker *time.Ticker
	stop        chan struct{}
	stopOnce    sync.Once
}

// New constructs a Registry and starts the background evictor.
func New(opts Options) *Registry {
	if opts.Opener == nil {
		opts.Opener = func(cs string) (*sqlx.DB, error) {
			return database.OpenLazy(cs, database.TenantOptions)
		}
	}
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = IdleTTL
	}
	if opts.MaxHandles <= 0 {
		opts.MaxHandles = MaxHandles
	}
	if opts.EvictInterval <= 0 {
		opts.EvictInterval = EvictInterval
	}

	r := &Registry{
		opener:     opts.Opener,
		idleTTL:    opts.IdleTTL,
		maxHandles: opts.MaxHandles,
		stop:       make(chan struct{}),
	}
	r.evictTicker = time.NewTicker(opts.EvictInterval)
	go r.evictLoop()
	return r
}

// Resolve returns the handle for connString, creating it on first use.
// The empty string is a caller bug and fails with a validation error.
// Creation is lazy: no network I/O happens until the first query.
func (r *Registry) Resolve(connString string) (*TenantHandle, error) {
	if connString == "" {
		return nil, fault.Validation("connection string must not be empty")
	}

	if v, ok := r.m.Load(connString); ok {
		ent := v.(*entry)
		atomic.StoreInt64(&ent.lastSeen, time.Now().UnixNano())
		return ent.handle, nil
	}

	v, err, _ := r.sfg.Do(connString, func() (interface{}, error) {
		// Double-check after singleflight barrier.
		if v, ok := r.m.Load(connString); ok {
			ent := v.(*entry)
			atomic.StoreInt64(&ent.lastSeen, time.Now().UnixNano())
			return ent.handle, nil
		}
		db, err := r.opener(connString)
		if err != nil {
			return nil, fault.Upstream(err, "open tenant pool")
		}
		ent := &entry{
			handle:   &TenantHandle{db: db},
			lastSeen: time.Now().UnixNano(),
		}
		r.m.Store(connString, ent)
		metrics.HandleOpenTotal.Inc()
		metrics.ActiveHandles.Inc()
		zap.S().Infow("tenant handle opened", "key", Fingerprint(connString))
		return ent.handle, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*TenantHandle), nil
}

// Probe runs `SELECT 1` against the tenant behind connString.  True only
// when the query succeeds and returns the literal 1; false, never an
// error, on any failure.  Used by non-fatal health checks.
func (r *Registry) Probe(ctx context.Context, connString string) bool {
	h, err := r.Resolve(connString)
	if err != nil {
		metrics.ProbeFailTotal.Inc()
		return false
	}

	var n int
	if err := h.db.QueryRowContext(ctx, "SELECT 1").Scan(&n); err != nil || n != 1 {
		metrics.ProbeFailTotal.Inc()
		return false
	}
	return true
}

// Reset closes and drops every cached handle.  Subsequent Resolve calls
// re-create them.  Used by test teardown and the administrative reset.
func (r *Registry) Reset() {
	r.m.Range(func(key, value any) bool {
		_ = value.(*entry).handle.close()
		r.m.Delete(key)
		metrics.ActiveHandles.Dec()
		return true
	})
}

// Close stops the evictor and clears the cache.  The registry must not be
// used afterwards.
func (r *Registry) Close() {
	r.stopOnce.Do(func() {
		close(r.stop)
		r.evictTicker.Stop()
	})
	r.Reset()
}

// Len reports the number of cached handles.
func (r *Registry) Len() int {
	n := 0
	r.m.Range(func(any, any) bool { n++; return true })
	return n
}

// Fingerprint derives a short, log-safe identifier from a connection
// string.  The raw string never appears in logs or errors.
func Fingerprint(connString string) string {
	sum := sha256.Sum256([]byte(connString))
	return hex.EncodeToString(sum[:4])
}
