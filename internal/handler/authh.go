// internal/handler/authh.go
//
// Login and password-change endpoints.
//
// Context
// -------
// Login verifies credentials against the master store and issues a JWT;
// the failure body is the same generic message for every cause, so the
// form cannot probe for usernames.  Password change runs in-session, where
// revealing "current password is incorrect" is acceptable.
//
// Each login attempt is logged with best-effort client metadata (UA and
// geo); the password itself never reaches a log line.
package handler

import (
	"net/http"
	"time"

	"github.com/omniakid/omniakid/internal/auth"
	"github.com/omniakid/omniakid/internal/fault"
	"github.com/omniakid/omniakid/internal/loginaudit"
	"github.com/omniakid/omniakid/internal/master"
	"github.com/omniakid/omniakid/internal/metrics"

	"go.uber.org/zap"
)

// AuthHandler serves /api/session and /api/password.
type AuthHandler struct {
	store  *master.Store
	tokens *auth.Tokens
	audit  *loginaudit.Auditor
}

// NewAuthHandler wires the credential endpoints.
func NewAuthHandler(store *master.Store, tokens *auth.Tokens, audit *loginaudit.Auditor) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens, audit: audit}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
	AdminID   int64     `json:"admin_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
}

// Login authenticates an admin and returns a session token.
// POST /api/session
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, fault.Validation("invalid request body"))
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, r, fault.Validation("username and password are required"))
		return
	}

	info := h.audit.FromRequest(r)

	rec, err := h.store.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginTotal.WithLabelValues("failure").Inc()
		zap.S().Infow("login rejected",
			"username", req.Username,
			"ip", ipString(info),
			"browser", info.Browser,
			"bot", info.IsBot,
		)
		writeError(w, r, err)
		return
	}

	p := auth.Principal{AdminID: rec.ID, Username: rec.Username, Role: rec.Role}
	token, exp, err := h.tokens.Issue(p)
	if err != nil {
		writeError(w, r, fault.Upstream(err, "issue token"))
		return
	}

	metrics.LoginTotal.WithLabelValues("success").Inc()
	zap.S().Infow("login ok",
		"username", rec.Username,
		"role", rec.Role,
		"ip", ipString(info),
		"country", info.CountryISO,
		"browser", info.Browser,
		"os", info.OS,
		"device", info.Device,
	)

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: exp,
		AdminID:   rec.ID,
		Username:  rec.Username,
		Role:      rec.Role,
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword rotates the caller's own password.
// POST /api/password  (authenticated)
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, r, fault.Authentication())
		return
	}

	var req changePasswordRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, fault.Validation("invalid request body"))
		return
	}

	err := h.store.ChangePassword(r.Context(), p.Username, req.CurrentPassword, req.NewPassword)
	if err != nil {
		// The caller is already authenticated, so name the failing field.
		if fault.IsKind(err, fault.KindAuthentication) {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "current password is incorrect"})
			return
		}
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func ipString(info loginaudit.Info) string {
	if info.IP == nil {
		return ""
	}
	return info.IP.String()
}
