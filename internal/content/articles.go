// internal/content/articles.go
//
// Article queries for one tenant site.
//
// All queries are parameterized and run through the tenant handle; the
// article list is paged and ordered newest first, matching the admin UI.
package content

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/omniakid/omniakid/internal/fault"
	"github.com/omniakid/omniakid/internal/registry"
)

// ErrNotFound is returned when a requested row does not exist in the
// tenant database.
var ErrNotFound = errors.New("not found")

// Article mirrors one row in the tenant `articles` table.
type Article struct {
	ID         int64     `db:"id" json:"id"`
	Title      string    `db:"title" json:"title"`
	Slug       string    `db:"slug" json:"slug"`
	Body       string    `db:"body" json:"body"`
	CategoryID *int64    `db:"category_id" json:"category_id,omitempty"`
	AuthorID   *int64    `db:"author_id" json:"author_id,omitempty"`
	Published  bool      `db:"published" json:"published"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// ArticleInput carries caller-supplied fields for create and update.
type ArticleInput struct {
	Title      string `json:"title"      validate:"required,max=255"`
	Slug       string `json:"slug"       validate:"required,max=255"`
	Body       string `json:"body"`
	CategoryID *int64 `json:"category_id"`
	AuthorID   *int64 `json:"author_id"`
	Published  bool   `json:"published"`
}

const articleColumns = `id, title, slug, body, category_id, author_id,
       published, created_at, updated_at`

// ListArticles returns one page, newest first.
func ListArticles(ctx context.Context, h *registry.TenantHandle, limit, offset int) ([]Article, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	const q = `
	    SELECT ` + articleColumns + `
	    FROM   articles
	    ORDER  BY created_at DESC
	    LIMIT  $1 OFFSET $2`
	rows := make([]Article, 0, limit)
	if err := h.DB().SelectContext(ctx, &rows, q, limit, offset); err != nil {
		return nil, fault.Upstream(err, "list articles")
	}
	return rows, nil
}

// ArticleByID fetches a single article or ErrNotFound.
func ArticleByID(ctx context.Context, h *registry.TenantHandle, id int64) (*Article, error) {
	const q = `
	    SELECT ` + articleColumns + `
	    FROM   articles
	    WHERE  id = $1`
	var a Article
	if err := h.DB().GetContext(ctx, &a, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fault.Upstream(err, "get article")
	}
	return &a, nil
}

// CreateArticle inserts a new article and returns its id.
func CreateArticle(ctx context.Context, h *registry.TenantHandle, in ArticleInput) (int64, error) {
	if err := validate.Struct(in); err != nil {
		return 0, fault.Validation("article: %v", err)
	}

	const q = `
	    INSERT INTO articles (title, slug, body, category_id, author_id,
	                          published, created_at, updated_at)
	    VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	    RETURNING id`
	var id int64
	err := h.DB().QueryRowContext(ctx, q,
		in.Title, in.Slug, in.Body, in.CategoryID, in.AuthorID, in.Published,
	).Scan(&id)
	if err != nil {
		return 0, fault.Upstream(err, "create article")
	}
	return id, nil
}

// UpdateArticle overwrites the mutable fields of one article.
func UpdateArticle(ctx context.Context, h *registry.TenantHandle, id int64, in ArticleInput) error {
	if err := validate.Struct(in); err != nil {
		return fault.Validation("article: %v", err)
	}

	const q = `
	    UPDATE articles
	    SET    title       = $1,
	           slug        = $2,
	           body        = $3,
	           category_id = $4,
	           author_id   = $5,
	           published   = $6,
	           updated_at  = NOW()
	    WHERE  id = $7`
	res, err := h.DB().ExecContext(ctx, q,
		in.Title, in.Slug, in.Body, in.CategoryID, in.AuthorID, in.Published, id)
	if err != nil {
		return fault.Upstream(err, "update article")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteArticle removes one article.
func DeleteArticle(ctx context.Context, h *registry.TenantHandle, id int64) error {
	res, err := h.DB().ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fault.Upstream(err, "delete article")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetArticlePublished flips the published flag without touching the body.
func SetArticlePublished(ctx context.Context, h *registry.TenantHandle, id int64, published bool) error {
	const q = `
	    UPDATE articles
	    SET    published  = $1,
	           updated_at = NOW()
	    WHERE  id = $2`
	res, err := h.DB().ExecContext(ctx, q, published, id)
	if err != nil {
		return fault.Upstream(err, "publish article")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
