// internal/handler/authors.go
//
// Author CRUD endpoints.
package handler

import (
	"net/http"

	"github.com/omniakid/omniakid/internal/content"
	"github.com/omniakid/omniakid/internal/fault"
)

// ListAuthors returns every author.
// GET /api/authors
func (h *ContentHandler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	th, err := h.tenant(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	rows, err := content.ListAuthors(r.Context(), th)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// GetAuthor returns one author.
// GET /api/authors/{id}
func (h *ContentHandler) GetAuthor(w http.ResponseWriter, r *http.Request) {
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

	a, err := content.AuthorByID(r.Context(), th, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// CreateAuthor inserts a new author.
// POST /api/authors
func (h *ContentHandler) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	th, err := h.tenant(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var in content.AuthorInput
	if err := readJSON(r, &in); err != nil {
		writeError(w, r, fault.Validation("invalid request body"))
		return
	}

	id, err := content.CreateAuthor(r.Context(), th, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// UpdateAuthor overwrites one author.
// PUT /api/authors/{id}
func (h *ContentHandler) UpdateAuthor(w http.ResponseWriter, r *http.Request) {
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

	var in content.AuthorInput
	if err := readJSON(r, &in); err != nil {
		writeError(w, r, fault.Validation("invalid request body"))
		return
	}

	if err := content.UpdateAuthor(r.Context(), th, id, in); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// DeleteAuthor removes one author.
// DELETE /api/authors/{id}
func (h *ContentHandler) DeleteAuthor(w http.ResponseWriter, r *http.Request) {
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

	if err := content.DeleteAuthor(r.Context(), th, id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
