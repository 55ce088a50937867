// internal/master/store.go
//
// Master credential store.
//
// Context
// -------
// The master database holds the `admins` table: one row per administrator
// with a bcrypt password hash and, for servant admins, the connection
// string of the tenant site they operate.  This store owns the only
// connection to that database; tenant queries never travel through it, and
// master queries never travel through a tenant handle (the Handle types
// are distinct and do not convert).
//
// Authentication failures are deliberately uniform: unknown username,
// inactive account, and wrong password all surface the same generic error
// so the login form cannot be used for username enumeration.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package master

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/omniakid/omniakid/internal/fault"
)

// Handle wraps the master pool.  It is a distinct named type from
// registry.TenantHandle so master and tenant queries cannot be swapped at
// compile time.
type Handle struct {
	db *sqlx.DB
}

// NewHandle adopts an already-opened master pool.
func NewHandle(db *sqlx.DB) *Handle { return &Handle{db: db} }

// DB exposes the pool for health checks and migrations.
func (h *Handle) DB() *sqlx.DB { return h.db }

// Store performs credential operations against the master database.
type Store struct {
	h *Handle
}

// NewStore builds a Store over the master handle.
func NewStore(h *Handle) *Store { return &Store{h: h} }

const adminColumns = `id, username, password, role, connection_string,
       status, last_login, created_at, updated_at`

// byUsername fetches one active admin row.  sql.ErrNoRows is passed
// through so callers can fold it into the generic credential failure.
//
// Queries here are written with `?` placeholders and rebound per driver:
// the master database is Postgres on new installs but MySQL on legacy
// ones, and this store avoids any construct that differs between the two.
func (s *Store) byUsername(ctx context.Context, username string) (*Admin, error) {
	const q = `
	    SELECT ` + adminColumns + `
	    FROM   admins
	    WHERE  username = ?
	      AND  status   = 'active'
	    LIMIT  1`
	var rec Admin
	if err := s.h.db.GetContext(ctx, &rec, s.h.db.Rebind(q), username); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Admin fetches the active admin record for an already-authenticated
// session, e.g. to resolve the tenant connection string per request.  A
// missing or deactivated account surfaces as the generic credential
// failure so stale sessions die quietly.
func (s *Store) Admin(ctx context.Context, username string) (*Admin, error) {
	rec, err := s.byUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fault.Authentication()
		}
		return nil, fault.Upstream(err, "admin lookup")
	}
	return rec, nil
}

// Authenticate verifies username and password against the master database.
// On success it returns the admin record and bumps last_login best-effort;
// a failed bump is logged and does not fail the login.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*Admin, error) {
	rec, err := s.byUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Burn a comparison so the unknown-user path is not cheaper
			// than the wrong-password path.
			verifyPassword(string(dummyHash), password)
			return nil, fault.Authentication()
		}
		return nil, fault.Upstream(err, "admin lookup")
	}

	if !verifyPassword(rec.PasswordHash, password) {
		return nil, fault.Authentication()
	}

	const bump = `UPDATE admins SET last_login = NOW() WHERE id = ?`
	if _, err := s.h.db.ExecContext(ctx, s.h.db.Rebind(bump), rec.ID); err != nil {
		zap.S().Warnw("last_login update failed", "admin_id", rec.ID, "err", err)
	}

	return rec, nil
}

// ChangePassword re-authenticates with the current password, then replaces
// the stored hash with a fresh bcrypt hash of the new password and bumps
// updated_at.  The current-password check reuses the same verification as
// Authenticate and fails with the same generic error.
func (s *Store) ChangePassword(ctx context.Context, username, current, next string) error {
	if next == "" {
		return fault.Validation("new password must not be empty")
	}

	rec, err := s.byUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			verifyPassword(string(dummyHash), current)
			return fault.Authentication()
		}
		return fault.Upstream(err, "admin lookup")
	}
	if !verifyPassword(rec.PasswordHash, current) {
		return fault.Authentication()
	}

	hash, err := HashPassword(next)
	if err != nil {
		return fault.Upstream(err, "hash password")
	}

	const q = `
	    UPDATE admins
	    SET    password   = ?,
	           updated_at = NOW()
	    WHERE  id = ?`
	if _, err := s.h.db.ExecContext(ctx, s.h.db.Rebind(q), hash, rec.ID); err != nil {
		return fault.Upstream(err, "store password")
	}

	zap.S().Infow("admin password changed", "admin_id", rec.ID)
	return nil
}

// Ping verifies the master database is reachable.  Bootstrap fails fast on
// error; the health endpoint reports it as degraded.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.h.db.PingContext(ctx); err != nil {
		return fault.Upstream(err, "master ping")
	}
	return nil
}
