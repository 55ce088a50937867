// internal/content/categories_test.go
//
// Unit-tests for the category queries using sqlmock.

package content

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCategoryByID(t *testing.T) {
	h, mock := mockHandle(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, name, slug, position FROM categories WHERE id = $1`,
	)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "position"}).
			AddRow(int64(3), "News", "news", 1))

	got, err := CategoryByID(context.Background(), h, 3)
	if err != nil {
		t.Fatalf("CategoryByID: %v", err)
	}
	if got.Slug != "news" || got.Position != 1 {
		t.Fatalf("unexpected result: %#v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestCategoryByID_NotFound(t *testing.T) {
	h, mock := mockHandle(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, name, slug, position FROM categories WHERE id = $1`,
	)).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := CategoryByID(context.Background(), h, 404)
	if err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
