// internal/content/authors_test.go
//
// Unit-tests for the author queries using sqlmock.

package content

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestAuthorByID(t *testing.T) {
	h, mock := mockHandle(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, name, email, bio, avatar_url FROM authors WHERE id = $1`,
	)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "bio", "avatar_url"}).
			AddRow(int64(5), "Jo Writer", "jo@example.com", "", ""))

	got, err := AuthorByID(context.Background(), h, 5)
	if err != nil {
		t.Fatalf("AuthorByID: %v", err)
	}
	if got.Name != "Jo Writer" || got.Email != "jo@example.com" {
		t.Fatalf("unexpected result: %#v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestAuthorByID_NotFound(t *testing.T) {
	h, mock := mockHandle(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, name, email, bio, avatar_url FROM authors WHERE id = $1`,
	)).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := AuthorByID(context.Background(), h, 404)
	if err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
