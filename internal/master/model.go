package master

import "time"

// Role names used in the `admins` table.  A servant admin operates a single
// tenant site through that tenant's connection string; a master admin
// manages accounts and has no tenant of its own.
const (
	RoleServant = "servant"
	RoleMaster  = "master"
)

// Statuses for the `admins.status` column.  Inactive accounts fail
// authentication even with a correct password.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Admin mirrors one row in the master `admins` table.  PasswordHash is a
// bcrypt hash (per-call random salt, so equal passwords never share a
// stored value); ConnectionString is a tenant credential and is excluded
// from JSON along with the hash.
type Admin struct {
	ID               int64      `db:"id" json:"id"`
	Username         string     `db:"username" json:"username"`
	PasswordHash     string     `db:"password" json:"-"`
	Role             string     `db:"role" json:"role"`
	ConnectionString string     `db:"connection_string" json:"-"`
	Status           string     `db:"status" json:"status"`
	LastLogin        *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}
