// internal/content/authors.go
//
// Author queries for one tenant site.
package content

import (
	"context"
	"database/sql"
	"errors"

	"github.com/omniakid/omniakid/internal/fault"
	"github.com/omniakid/omniakid/internal/registry"
)

// Author mirrors one row in the tenant `authors` table.
type Author struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Email     string `db:"email" json:"email"`
	Bio       string `db:"bio" json:"bio"`
	AvatarURL string `db:"avatar_url" json:"avatar_url"`
}

// AuthorInput carries caller-supplied fields for create and update.
type AuthorInput struct {
	Name      string `json:"name"       validate:"required,max=120"`
	Email     string `json:"email"      validate:"omitempty,email"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

// ListAuthors returns every author ordered by name.
func ListAuthors(ctx context.Context, h *registry.TenantHandle) ([]Author, error) {
	const q = `
	    SELECT id, name, email, bio, avatar_url
	    FROM   authors
	    ORDER  BY name`
	rows := make([]Author, 0, 8)
	if err := h.DB().SelectContext(ctx, &rows, q); err != nil {
		return nil, fault.Upstream(err, "list authors")
	}
	return rows, nil
}

// AuthorByID fetches a single author or ErrNotFound.
func AuthorByID(ctx context.Context, h *registry.TenantHandle, id int64) (*Author, error) {
	const q = `
	    SELECT id, name, email, bio, avatar_url
	    FROM   authors
	    WHERE  id = $1`
	var a Author
	if err := h.DB().GetContext(ctx, &a, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fault.Upstream(err, "get author")
	}
	return &a, nil
}

// CreateAuthor inserts a new author and returns its id.
func CreateAuthor(ctx context.Context, h *registry.TenantHandle, in AuthorInput) (int64, error) {
	if err := validate.Struct(in); err != nil {
		return 0, fault.Validation("author: %v", err)
	}

	const q = `
	    INSERT INTO authors (name, email, bio, avatar_url)
	    VALUES ($1, $2, $3, $4)
	    RETURNING id`
	var id int64
	if err := h.DB().QueryRowContext(ctx, q, in.Name, in.Email, in.Bio, in.AvatarURL).Scan(&id); err != nil {
		return 0, fault.Upstream(err, "create author")
	}
	return id, nil
}

// UpdateAuthor overwrites one author.
func UpdateAuthor(ctx context.Context, h *registry.TenantHandle, id int64, in AuthorInput) error {
	if err := validate.Struct(in); err != nil {
		return fault.Validation("author: %v", err)
	}

	const q = `
	    UPDATE authors
	    SET    name       = $1,
	           email      = $2,
	           bio        = $3,
	           avatar_url = $4
	    WHERE  id = $5`
	res, err := h.DB().ExecContext(ctx, q, in.Name, in.Email, in.Bio, in.AvatarURL, id)
	if err != nil {
		return fault.Upstream(err, "update author")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAuthor removes one author.
func DeleteAuthor(ctx context.Context, h *registry.TenantHandle, id int64) error {
	res, err := h.DB().ExecContext(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fault.Upstream(err, "delete author")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
