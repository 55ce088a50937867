// Package database centralises sqlx connection helpers.  The default driver
// is jackc/pgx (Postgres); tenant sites still hosted on legacy MySQL remain
// reachable because DriverFor infers the driver from the DSN form.
//
// Public entry points:
//
//	Open(dsn)                      – pings before returning; bootstrap path.
//	OpenWithOptions(dsn, opts)     – fine-grained pool control, also pings.
//	OpenLazy(dsn, opts)            – no ping; used by the connection
//	                                 registry so handle creation is cheap
//	                                 and cannot fail from network state.
//
// Callers should Close() the returned *sqlx.DB when no longer needed.
package database

import (
	"context"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// Options tunes the pool for one *sqlx.DB.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultOptions suits a process-wide pool such as the master connection.
var DefaultOptions = Options{
	MaxOpenConns:    15,
	MaxIdleConns:    5,
	ConnMaxLifetime: 30 * time.Minute,
}

// TenantOptions keeps per-tenant resource usage small; there may be many
// tenant pools alive at once.
var TenantOptions = Options{
	MaxOpenConns:    5,
	MaxIdleConns:    2,
	ConnMaxLifetime: 30 * time.Minute,
}

// DriverFor infers the sql driver from the DSN shape.  URL-style strings
// (postgres://, postgresql://) use pgx; everything else is treated as a
// classic MySQL DSN ("user:pw@tcp(host)/db").
func DriverFor(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "pgx"
	}
	return "mysql"
}

// Open returns a pinged *sqlx.DB with default pool sizes.  Suitable for
// process-wide pools or test setups.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	return OpenWithOptions(ctx, dsn, DefaultOptions)
}

// OpenWithOptions opens and pings, failing fast when the database is
// unreachable.  Used for the master pool during bootstrap.
func OpenWithOptions(ctx context.Context, dsn string, opts Options) (*sqlx.DB, error) {
	db, err := OpenLazy(dsn, opts)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// OpenLazy opens without pinging.  The underlying driver defers network
// connection establishment to the first query.
func OpenLazy(dsn string, opts Options) (*sqlx.DB, error) {
	db, err := sqlx.Open(DriverFor(dsn), dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	return db, nil
}
