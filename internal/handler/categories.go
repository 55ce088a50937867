// internal/handler/categories.go
//
// Category CRUD endpoints.
package handler

import (
	"net/http"

	"github.com/omniakid/omniakid/internal/content"
	"github.com/omniakid/omniakid/internal/fault"
)

// ListCategories returns every category in display order.
// GET /api/categories
func (h *ContentHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	th, err := h.tenant(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	rows, err := content.ListCategories(r.Context(), th)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// GetCategory returns one category.
// GET /api/categories/{id}
func (h *ContentHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	th, err := h.tenant(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	c, err := content.CategoryByID(r.Context(), th, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CreateCategory inserts a new category.
// POST /api/categories
func (h *ContentHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	th, err := h.tenant(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var in content.CategoryInput
	if err := readJSON(r, &in); err != nil {
		writeError(w, r, fault.Validation("invalid request body"))
		return
	}

	id, err := content.CreateCategory(r.Context(), th, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// UpdateCategory overwrites one category, position included.
// PUT /api/categories/{id}
func (h *ContentHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	th, err := h.tenant(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var in content.CategoryInput
	if err := readJSON(r, &in); err != nil {
		writeError(w, r, fault.Validation("invalid request body"))
		return
	}

	if err := content.UpdateCategory(r.Context(), th, id, in); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// DeleteCategory removes one category.
// DELETE /api/categories/{id}
func (h *ContentHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	th, err := h.tenant(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := content.DeleteCategory(r.Context(), th, id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
