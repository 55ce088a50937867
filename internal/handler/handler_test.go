// internal/handler/handler_test.go
//
// End-to-end tests through the chi router with sqlmock behind both the
// master store and the tenant registry: login issues a token, and the
// token drives a tenant-scoped article listing.

package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/omniakid/omniakid/internal/auth"
	"github.com/omniakid/omniakid/internal/handler"
	"github.com/omniakid/omniakid/internal/loginaudit"
	"github.com/omniakid/omniakid/internal/master"
	"github.com/omniakid/omniakid/internal/registry"
	"github.com/omniakid/omniakid/internal/server"
)

const selectAdmin = `SELECT id, username, password, role, connection_string, status, last_login, created_at, updated_at FROM admins WHERE username = ? AND status = 'active' LIMIT 1`

type fixture struct {
	router     http.Handler
	masterMock sqlmock.Sqlmock
	tenantMock sqlmock.Sqlmock
	hash       string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	masterDB, masterMock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { masterDB.Close() })

	tenantDB, tenantMock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}

	reg := registry.New(registry.Options{
		Opener: func(string) (*sqlx.DB, error) {
			return sqlx.NewDb(tenantDB, "sqlmock"), nil
		},
		EvictInterval: time.Hour,
	})
	t.Cleanup(reg.Close)

	store := master.NewStore(master.NewHandle(sqlx.NewDb(masterDB, "sqlmock")))
	tokens, err := auth.NewTokens("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	audit := loginaudit.New("")

	hash, err := master.HashPassword("correct-pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	router := server.NewRouter(server.Deps{
		Auth:    handler.NewAuthHandler(store, tokens, audit),
		Content: handler.NewContentHandler(store, reg),
		System:  handler.NewSystemHandler(store, reg),
		Tokens:  tokens,
	})

	return &fixture{
		router:     router,
		masterMock: masterMock,
		tenantMock: tenantMock,
		hash:       hash,
	}
}

func (f *fixture) adminRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "username", "password", "role", "connection_string",
		"status", "last_login", "created_at", "updated_at",
	}).AddRow(int64(7), "alice", f.hash, master.RoleServant,
		"postgres://tenant-a/db", master.StatusActive, nil, now, now)
}

func (f *fixture) login(t *testing.T) string {
	t.Helper()

	f.masterMock.ExpectQuery(regexp.QuoteMeta(selectAdmin)).
		WithArgs("alice").
		WillReturnRows(f.adminRows())
	f.masterMock.ExpectExec(regexp.QuoteMeta(`UPDATE admins SET last_login = NOW() WHERE id = ?`)).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest(http.MethodPost, "/api/session",
		strings.NewReader(`{"username":"alice","password":"correct-pw"}`))
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("login response unparsable: %s", rr.Body.String())
	}
	return resp.Token
}

func TestLogin_WrongPasswordGeneric(t *testing.T) {
	f := newFixture(t)

	f.masterMock.ExpectQuery(regexp.QuoteMeta(selectAdmin)).
		WithArgs("alice").
		WillReturnRows(f.adminRows())

	req := httptest.NewRequest(http.MethodPost, "/api/session",
		strings.NewReader(`{"username":"alice","password":"wrong"}`))
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "invalid credentials") {
		t.Fatalf("body = %s, want generic message", rr.Body.String())
	}
}

func TestLoginThenListArticles(t *testing.T) {
	f := newFixture(t)
	token := f.login(t)

	// Tenant resolution re-reads the admin row, then the tenant DB serves
	// the article query.
	f.masterMock.ExpectQuery(regexp.QuoteMeta(selectAdmin)).
		WithArgs("alice").
		WillReturnRows(f.adminRows())

	now := time.Now()
	f.tenantMock.ExpectQuery(regexp.QuoteMeta(`SELECT id, title, slug, body`)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "slug", "body", "category_id", "author_id",
			"published", "created_at", "updated_at",
		}).AddRow(int64(1), "Hello", "hello", "…", nil, nil, true, now, now))

	req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"title":"Hello"`) {
		t.Fatalf("article missing from body: %s", rr.Body.String())
	}
}

func TestListArticles_NoToken(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestRegistryReset_RequiresMasterRole(t *testing.T) {
	f := newFixture(t)
	token := f.login(t) // alice is a servant

	req := httptest.NewRequest(http.MethodPost, "/api/registry/reset", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rr.Code)
	}
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	f := newFixture(t)
	token := f.login(t)

	f.masterMock.ExpectQuery(regexp.QuoteMeta(selectAdmin)).
		WithArgs("alice").
		WillReturnRows(f.adminRows())

	req := httptest.NewRequest(http.MethodPost, "/api/password",
		strings.NewReader(`{"current_password":"nope","new_password":"next"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "current password is incorrect") {
		t.Fatalf("body = %s", rr.Body.String())
	}
}
