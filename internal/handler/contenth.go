// internal/handler/contenth.go
//
// Tenant-scoped content endpoints (articles, categories, authors, and
// site settings).
//
// Context
// -------
// Every request resolves the caller's admin record from the master store,
// then acquires the tenant handle through the connection registry.  The
// handle is cached per connection string, so the per-request cost is one
// indexed master lookup.  Handlers never see a master.Handle; the content
// package only accepts tenant handles, which keeps master and tenant data
// apart at compile time.
package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/omniakid/omniakid/internal/auth"
	"github.com/omniakid/omniakid/internal/content"
	"github.com/omniakid/omniakid/internal/fault"
	"github.com/omniakid/omniakid/internal/master"
	"github.com/omniakid/omniakid/internal/registry"
)

// ContentHandler serves every /api route that touches a tenant database.
type ContentHandler struct {
	store *master.Store
	reg   *registry.Registry
}

// NewContentHandler wires the tenant-scoped endpoints.
func NewContentHandler(store *master.Store, reg *registry.Registry) *ContentHandler {
	return &ContentHandler{store: store, reg: reg}
}

// tenant resolves the caller's tenant handle.
func (h *ContentHandler) tenant(r *http.Request) (*registry.TenantHandle, error) {
	p, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		return nil, fault.Authentication()
	}
	adm, err := h.store.Admin(r.Context(), p.Username)
	if err != nil {
		return nil, err
	}
	return content.WithTenant(h.reg, adm)
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fault.Validation("invalid id")
	}
	return id, nil
}

// queryInt reads an integer query parameter with a fallback.
func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
