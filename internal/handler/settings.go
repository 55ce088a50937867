// internal/handler/settings.go
//
// Site-settings endpoints.  The theme name, site title, and similar
// key-value pairs live here; the theme preview itself is rendered by the
// admin frontend.
package handler

import (
	"net/http"

	"github.com/omniakid/omniakid/internal/content"
	"github.com/omniakid/omniakid/internal/fault"
)

// GetSettings returns the full settings map for the tenant.
// GET /api/settings
func (h *ContentHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	th, err := h.tenant(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	cfg, err := content.Settings(r.Context(), th)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// PutSettings upserts the supplied keys.
// PUT /api/settings
func (h *ContentHandler) PutSettings(w http.ResponseWriter, r *http.Request) {
	th, err := h.tenant(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var in map[string]string
	if err := readJSON(r, &in); err != nil {
		writeError(w, r, fault.Validation("invalid request body"))
		return
	}
	if len(in) == 0 {
		writeError(w, r, fault.Validation("no settings supplied"))
		return
	}

	for k, v := range in {
		if err := content.PutSetting(r.Context(), th, k, v); err != nil {
			writeError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
