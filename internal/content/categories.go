// internal/content/categories.go
//
// Category queries for one tenant site.  Position drives the UI ordering;
// the drag-and-drop reorder itself happens client-side and lands here as a
// plain position update.
package content

import (
	"context"
	"database/sql"
	"errors"

	"github.com/omniakid/omniakid/internal/fault"
	"github.com/omniakid/omniakid/internal/registry"
)

// Category mirrors one row in the tenant `categories` table.
type Category struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Slug     string `db:"slug" json:"slug"`
	Position int    `db:"position" json:"position"`
}

// CategoryInput carries caller-supplied fields for create and update.
type CategoryInput struct {
	Name     string `json:"name"     validate:"required,max=120"`
	Slug     string `json:"slug"     validate:"required,max=120"`
	Position int    `json:"position" validate:"gte=0"`
}

// ListCategories returns every category ordered by position.
func ListCategories(ctx context.Context, h *registry.TenantHandle) ([]Category, error) {
	const q = `
	    SELECT id, name, slug, position
	    FROM   categories
	    ORDER  BY position, id`
	rows := make([]Category, 0, 16)
	if err := h.DB().SelectContext(ctx, &rows, q); err != nil {
		return nil, fault.Upstream(err, "list categories")
	}
	return rows, nil
}

// CategoryByID fetches a single category or ErrNotFound.
func CategoryByID(ctx context.Context, h *registry.TenantHandle, id int64) (*Category, error) {
	const q = `
	    SELECT id, name, slug, position
	    FROM   categories
	    WHERE  id = $1`
	var c Category
	if err := h.DB().GetContext(ctx, &c, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fault.Upstream(err, "get category")
	}
	return &c, nil
}

// CreateCategory inserts a new category and returns its id.
func CreateCategory(ctx context.Context, h *registry.TenantHandle, in CategoryInput) (int64, error) {
	if err := validate.Struct(in); err != nil {
		return 0, fault.Validation("category: %v", err)
	}

	const q = `
	    INSERT INTO categories (name, slug, position)
	    VALUES ($1, $2, $3)
	    RETURNING id`
	var id int64
	if err := h.DB().QueryRowContext(ctx, q, in.Name, in.Slug, in.Position).Scan(&id); err != nil {
		return 0, fault.Upstream(err, "create category")
	}
	return id, nil
}

// UpdateCategory overwrites one category.
func UpdateCategory(ctx context.Context, h *registry.TenantHandle, id int64, in CategoryInput) error {
	if err := validate.Struct(in); err != nil {
		return fault.Validation("category: %v", err)
	}

	const q = `
	    UPDATE categories
	    SET    name     = $1,
	           slug     = $2,
	           position = $3
	    WHERE  id = $4`
	res, err := h.DB().ExecContext(ctx, q, in.Name, in.Slug, in.Position, id)
	if err != nil {
		return fault.Upstream(err, "update category")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCategory removes one category.  Articles referencing it keep a
// dangling category_id; the schema uses ON DELETE SET NULL.
func DeleteCategory(ctx context.Context, h *registry.TenantHandle, id int64) error {
	res, err := h.DB().ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fault.Upstream(err, "delete category")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
