// internal/master/store_test.go
//
// Unit-tests for the master credential store using sqlmock.
//
// Run: go test ./internal/master -v

package master

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/omniakid/omniakid/internal/fault"
)

// sqlmock's driver has no registered bindvar type, so Rebind leaves the
// `?` placeholders untouched and expectations match the written form.
const selectAdmin = `SELECT id, username, password, role, connection_string, status, last_login, created_at, updated_at FROM admins WHERE username = ? AND status = 'active' LIMIT 1`

func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(NewHandle(sqlx.NewDb(db, "sqlmock"))), mock
}

func adminRows(t *testing.T, username, password, role, connString string) *sqlmock.Rows {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "username", "password", "role", "connection_string",
		"status", "last_login", "created_at", "updated_at",
	}).AddRow(int64(7), username, hash, role, connString, StatusActive, nil, now, now)
}

func TestAuthenticate_Success(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectAdmin)).
		WithArgs("alice").
		WillReturnRows(adminRows(t, "alice", "correct-pw", RoleServant, "postgres://tenant-a/db"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE admins SET last_login = NOW() WHERE id = ?`)).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec, err := s.Authenticate(context.Background(), "alice", "correct-pw")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if rec.Username != "alice" || rec.Role != RoleServant {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.ConnectionString != "postgres://tenant-a/db" {
		t.Fatalf("connection string not returned")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestAuthenticate_WrongPasswordGeneric(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectAdmin)).
		WithArgs("alice").
		WillReturnRows(adminRows(t, "alice", "correct-pw", RoleServant, "dsn"))

	_, err := s.Authenticate(context.Background(), "alice", "wrong-pw")
	if err == nil {
		t.Fatalf("expected failure for wrong password")
	}
	if !fault.IsKind(err, fault.KindAuthentication) {
		t.Fatalf("kind = %v, want authentication", fault.KindOf(err))
	}

	mock.ExpectQuery(regexp.QuoteMeta(selectAdmin)).
		WithArgs("unknown").
		WillReturnError(sql.ErrNoRows)

	_, err2 := s.Authenticate(context.Background(), "unknown", "x")
	if err2 == nil {
		t.Fatalf("expected failure for unknown user")
	}

	// Same externally visible message for both failure modes.
	if err.Error() != err2.Error() {
		t.Fatalf("messages differ: %q vs %q", err, err2)
	}
}

func TestAuthenticate_InactiveAccount(t *testing.T) {
	s, mock := newTestStore(t)

	// The active-only predicate filters the row in SQL, so an inactive
	// account with a matching password is indistinguishable from a missing
	// one.
	mock.ExpectQuery(regexp.QuoteMeta(selectAdmin)).
		WithArgs("bob").
		WillReturnError(sql.ErrNoRows)

	_, err := s.Authenticate(context.Background(), "bob", "correct-pw")
	if !fault.IsKind(err, fault.KindAuthentication) {
		t.Fatalf("kind = %v, want authentication", fault.KindOf(err))
	}
}

func TestAuthenticate_LastLoginFailureTolerated(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectAdmin)).
		WithArgs("alice").
		WillReturnRows(adminRows(t, "alice", "correct-pw", RoleServant, "dsn"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE admins SET last_login = NOW() WHERE id = ?`)).
		WithArgs(int64(7)).
		WillReturnError(sql.ErrConnDone)

	rec, err := s.Authenticate(context.Background(), "alice", "correct-pw")
	if err != nil {
		t.Fatalf("login must survive a failed last_login bump: %v", err)
	}
	if rec == nil || rec.Username != "alice" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestChangePassword_Success(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectAdmin)).
		WithArgs("alice").
		WillReturnRows(adminRows(t, "alice", "old", RoleServant, "dsn"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE admins SET password = ?, updated_at = NOW() WHERE id = ?`)).
		WithArgs(sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.ChangePassword(context.Background(), "alice", "old", "new"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestChangePassword_WrongCurrentLeavesHashAlone(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectAdmin)).
		WithArgs("alice").
		WillReturnRows(adminRows(t, "alice", "old", RoleServant, "dsn"))
	// No UPDATE expectation: the stored hash must stay untouched.

	err := s.ChangePassword(context.Background(), "alice", "wrong-old", "new")
	if !fault.IsKind(err, fault.KindAuthentication) {
		t.Fatalf("kind = %v, want authentication", fault.KindOf(err))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected SQL executed: %v", err)
	}
}

func TestChangePassword_EmptyNewPassword(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.ChangePassword(context.Background(), "alice", "old", "")
	if !fault.IsKind(err, fault.KindValidation) {
		t.Fatalf("kind = %v, want validation", fault.KindOf(err))
	}
}

func TestQueriesRebindForDollarDrivers(t *testing.T) {
	// A Postgres-style driver gets numbered placeholders; the written
	// `?` form must never reach the wire.
	sqlx.BindDriver("pgmock", sqlx.DOLLAR)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	s := NewStore(NewHandle(sqlx.NewDb(db, "pgmock")))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, password, role, connection_string, status, last_login, created_at, updated_at FROM admins WHERE username = $1 AND status = 'active' LIMIT 1`)).
		WithArgs("alice").
		WillReturnRows(adminRows(t, "alice", "correct-pw", RoleServant, "dsn"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE admins SET last_login = NOW() WHERE id = $1`)).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if _, err := s.Authenticate(context.Background(), "alice", "correct-pw"); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestHashPassword_SaltUniqueness(t *testing.T) {
	h1, err := HashPassword("shared-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h2, err := HashPassword("shared-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same password must differ")
	}
	if !verifyPassword(h1, "shared-password") || !verifyPassword(h2, "shared-password") {
		t.Fatalf("hashes must both verify")
	}
	if verifyPassword(h1, "other") {
		t.Fatalf("wrong password verified")
	}
}
