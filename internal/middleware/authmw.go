// internal/middleware/authmw.go
//
// Bearer-token authentication for the admin API.
//
// Context
// -------
// The login endpoint issues a JWT; every other /api route presents it as
// `Authorization: Bearer <token>`.  On success the decoded principal is
// attached to the request context; on failure a 401 JSON body is returned
// without detail about why the token failed.
//
// RequireRole guards master-only routes such as the registry reset.
package middleware

import (
	"net/http"
	"strings"

	"github.com/omniakid/omniakid/internal/auth"
)

// Authenticate validates the Bearer token and attaches the principal.
func Authenticate(tokens *auth.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeAuthError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			p, err := tokens.Validate(token)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
		})
	}
}

// MaybeAuthenticate attaches the principal when a valid Bearer token is
// present but never rejects the request.  Used on open routes (health)
// that enrich their response for authenticated callers.
func MaybeAuthenticate(tokens *auth.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
				if p, err := tokens.Validate(token); err == nil {
					r = r.WithContext(auth.WithPrincipal(r.Context(), p))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole enforces a role after Authenticate in the chain.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := auth.PrincipalFrom(r.Context())
			if !ok || p.Role != role {
				writeAuthError(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}
