// internal/handler/system.go
//
// Operational endpoints: health and registry reset.
package handler

import (
	"net/http"

	"github.com/omniakid/omniakid/internal/auth"
	"github.com/omniakid/omniakid/internal/content"
	"github.com/omniakid/omniakid/internal/master"
	"github.com/omniakid/omniakid/internal/registry"
)

// SystemHandler serves health and administrative reset.
type SystemHandler struct {
	store *master.Store
	reg   *registry.Registry
}

// NewSystemHandler wires the operational endpoints.
func NewSystemHandler(store *master.Store, reg *registry.Registry) *SystemHandler {
	return &SystemHandler{store: store, reg: reg}
}

type healthResponse struct {
	Status  string `json:"status"`
	Master  bool   `json:"master"`
	Tenant  *bool  `json:"tenant,omitempty"`
	Handles int    `json:"handles"`
}

// Health reports master reachability and, for an authenticated servant
// admin, a live probe of their tenant database.  The probe never fails
// the endpoint; it is reported as a boolean.
// GET /api/health
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Handles: h.reg.Len()}

	if err := h.store.Ping(r.Context()); err != nil {
		resp.Status = "degraded"
	} else {
		resp.Master = true
	}

	if p, ok := auth.PrincipalFrom(r.Context()); ok && p.Role == master.RoleServant {
		if adm, err := h.store.Admin(r.Context(), p.Username); err == nil {
			if _, terr := content.WithTenant(h.reg, adm); terr == nil {
				ok := h.reg.Probe(r.Context(), adm.ConnectionString)
				resp.Tenant = &ok
			}
		}
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

// ResetRegistry clears every cached tenant handle.  Master-role only;
// handles are re-created lazily on the next request.
// POST /api/registry/reset
func (h *SystemHandler) ResetRegistry(w http.ResponseWriter, r *http.Request) {
	h.reg.Reset()
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
