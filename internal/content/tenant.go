// internal/content/tenant.go
//
// Tenant handle acquisition.
//
// Context
// -------
// Everything in this package reads and writes one tenant site's database:
// articles, categories, authors, and site settings.  The handle comes from
// the connection registry via the connection string stored on the admin's
// master record; master queries cannot be issued here because the package
// only accepts *registry.TenantHandle.
//
// The separation of master and tenant data is the principal invariant of
// the whole system: no query in this package ever touches the master
// database, and concurrent requests for different tenants operate on
// independent handles.
package content

import (
	"github.com/go-playground/validator/v10"

	"github.com/omniakid/omniakid/internal/fault"
	"github.com/omniakid/omniakid/internal/master"
	"github.com/omniakid/omniakid/internal/registry"
)

// validate checks input structs before any SQL runs.
var validate = validator.New()

// WithTenant resolves the tenant handle for a servant admin.  A servant
// record without a connection string is a data-integrity problem in the
// master database, not a user error.
func WithTenant(reg *registry.Registry, adm *master.Admin) (*registry.TenantHandle, error) {
	if adm.Role != master.RoleServant {
		return nil, fault.Validation("admin %q is not tenant-scoped", adm.Username)
	}
	if adm.ConnectionString == "" {
		return nil, fault.Configuration("servant admin %q has no connection string", adm.Username)
	}
	return reg.Resolve(adm.ConnectionString)
}
