// internal/auth/token.go
//
// Session tokens for the admin UI.
//
// The login endpoint issues an HS256 JWT carrying the admin id, username,
// and role; every subsequent request presents it as a Bearer token.  The
// signing secret comes from config (optionally Vault-resolved) and never
// appears in logs.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/omniakid/omniakid/internal/fault"
)

// DefaultTTL applies when config leaves token_ttl unset.
const DefaultTTL = 12 * time.Hour

// Tokens issues and validates admin session tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens builds a token service.  ttl <= 0 falls back to DefaultTTL.
func NewTokens(secret string, ttl time.Duration) (*Tokens, error) {
	if secret == "" {
		return nil, errors.New("auth: signing secret must not be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Tokens{secret: []byte(secret), ttl: ttl}, nil
}

type claims struct {
	Username string `json:"usr"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs a token for the given principal.
func (t *Tokens) Issue(p Principal) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(t.ttl)
	c := claims{
		Username: p.Username,
		Role:     p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", p.AdminID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			Issuer:    "omniakid",
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Validate parses and verifies a token, returning the principal it names.
// Expired, malformed, or foreign-signed tokens all fail with the generic
// authentication error.
func (t *Tokens) Validate(token string) (Principal, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Principal{}, fault.Authentication()
	}

	var id int64
	if _, err := fmt.Sscanf(c.Subject, "%d", &id); err != nil {
		return Principal{}, fault.Authentication()
	}
	return Principal{AdminID: id, Username: c.Username, Role: c.Role}, nil
}
