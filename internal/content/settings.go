// internal/content/settings.go
//
// Key-value site settings for one tenant (site title, active theme name,
// social links, and similar).  The whole map is small; the admin UI loads
// it at once and writes back individual keys.
package content

import (
	"context"

	"github.com/omniakid/omniakid/internal/fault"
	"github.com/omniakid/omniakid/internal/registry"
)

// Settings returns the full map for the tenant.
func Settings(ctx context.Context, h *registry.TenantHandle) (map[string]string, error) {
	const q = `
	    SELECT key, value
	    FROM   site_settings`
	rows := make([]struct {
		Key   string `db:"key"`
		Value string `db:"value"`
	}, 0, 16)

	if err := h.DB().SelectContext(ctx, &rows, q); err != nil {
		return nil, fault.Upstream(err, "load settings")
	}

	cfg := make(map[string]string, len(rows))
	for _, r := range rows {
		cfg[r.Key] = r.Value
	}
	return cfg, nil
}

// PutSetting inserts or updates one key.
func PutSetting(ctx context.Context, h *registry.TenantHandle, key, value string) error {
	if key == "" {
		return fault.Validation("setting key must not be empty")
	}

	const q = `
	    INSERT INTO site_settings (key, value)
	    VALUES ($1, $2)
	    ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := h.DB().ExecContext(ctx, q, key, value); err != nil {
		return fault.Upstream(err, "store setting")
	}
	return nil
}
