// internal/registry/handle.go
//
// Tenant connection handle.
//
// Context
// -------
// A TenantHandle wraps the per-tenant *sqlx.DB pool.  It is a distinct
// named type so tenant-scoped queries cannot be pointed at the master
// database by accident: the master store exposes its own master.Handle,
// and neither converts to the other.
//
// Handles are owned by the Registry.  Callers must never Close one; the
// registry's evictor and Reset do that when the handle leaves the cache.
package registry

import (
	"github.com/jmoiron/sqlx"
)

// TenantHandle executes parameterized queries against exactly one tenant
// database.  Obtain one through Registry.Resolve; equal connection strings
// yield the identical instance.
type TenantHandle struct {
	db *sqlx.DB
}

// DB exposes the underlying pool for query execution.
func (h *TenantHandle) DB() *sqlx.DB { return h.db }

// close is unexported: handle lifetime belongs to the registry.
func (h *TenantHandle) close() error { return h.db.Close() }
