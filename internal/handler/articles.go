// internal/handler/articles.go
//
// Article CRUD endpoints.
package handler

import (
	"net/http"

	"github.com/omniakid/omniakid/internal/content"
	"github.com/omniakid/omniakid/internal/fault"
)

// ListArticles returns one page of articles, newest first.
// GET /api/articles?limit=&offset=
func (h *ContentHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	th, err := h.tenant(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	rows, err := content.ListArticles(r.Context(), th,
		queryInt(r, "limit", 50), queryInt(r, "offset", 0))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// GetArticle returns one article.
// GET /api/articles/{id}
func (h *ContentHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
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

	a, err := content.ArticleByID(r.Context(), th, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// CreateArticle inserts a new article.
// POST /api/articles
func (h *ContentHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	th, err := h.tenant(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var in content.ArticleInput
	if err := readJSON(r, &in); err != nil {
		writeError(w, r, fault.Validation("invalid request body"))
		return
	}

	id, err := content.CreateArticle(r.Context(), th, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// UpdateArticle overwrites one article.
// PUT /api/articles/{id}
func (h *ContentHandler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
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

	var in content.ArticleInput
	if err := readJSON(r, &in); err != nil {
		writeError(w, r, fault.Validation("invalid request body"))
		return
	}

	if err := content.UpdateArticle(r.Context(), th, id, in); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// DeleteArticle removes one article.
// DELETE /api/articles/{id}
func (h *ContentHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
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

	if err := content.DeleteArticle(r.Context(), th, id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type publishRequest struct {
	Published bool `json:"published"`
}

// PublishArticle flips the published flag.
// POST /api/articles/{id}/publish
func (h *ContentHandler) PublishArticle(w http.ResponseWriter, r *http.Request) {
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

	var req publishRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, fault.Validation("invalid request body"))
		return
	}

	if err := content.SetArticlePublished(r.Context(), th, id, req.Published); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
