// internal/server/router_test.go

package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/omniakid/omniakid/internal/auth"
	"github.com/omniakid/omniakid/internal/handler"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	tokens, err := auth.NewTokens("router-test-secret", time.Hour)
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}
	return NewRouter(Deps{
		Auth:    handler.NewAuthHandler(nil, tokens, nil),
		Content: handler.NewContentHandler(nil, nil),
		System:  handler.NewSystemHandler(nil, nil),
		Tokens:  tokens,
	})
}

// Unauthenticated requests to protected routes must be rejected before any
// handler runs; a 404 here would mean the route is not mounted at all.
func TestProtectedRoutesMounted(t *testing.T) {
	r := testRouter(t)

	paths := []string{
		"/api/articles",
		"/api/articles/7",
		"/api/categories",
		"/api/categories/7",
		"/api/authors",
		"/api/authors/7",
		"/api/settings",
	}
	for _, p := range paths {
		req := httptest.NewRequest(http.MethodGet, p, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s = %d, want 401", p, rec.Code)
		}
	}
}

func TestServerTimeouts(t *testing.T) {
	srv := New(":0", testRouter(t))
	if srv.ReadTimeout != 10*time.Second {
		t.Errorf("ReadTimeout = %v", srv.ReadTimeout)
	}
	if srv.WriteTimeout != 15*time.Second {
		t.Errorf("WriteTimeout = %v", srv.WriteTimeout)
	}
	if srv.IdleTimeout != 60*time.Second {
		t.Errorf("IdleTimeout = %v", srv.IdleTimeout)
	}
}
