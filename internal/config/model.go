// internal/config/model.go
//
// Typed configuration model for the OmniaKid admin backend.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                         – dotenv values,
//   • `conf/omnia.yaml`                       – primary static file,
//   • `OMNIA_`-prefixed environment overrides – highest precedence.
//
// Any string value beginning with the prefix `vault:` is resolved through
// the Vault client *after* unmarshalling, so secrets such as the master DSN
// password never sit in flat files or git history.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.

package config

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
}

//
// Database section
//

// Database locates the master database.  MasterDSN is the full Postgres
// connection string; its password portion may be the literal `vault:<path>#<key>`
// so the secret stays in Vault.
type Database struct {
	MasterDSN string `koanf:"master_dsn" validate:"required"`
}

//
// Auth section
//

// Auth holds session-token settings.  Secret may also be `vault:`-prefixed.
type Auth struct {
	Secret   string `koanf:"secret"    validate:"required"`
	TokenTTL int    `koanf:"token_ttl" validate:"gte=0"` // minutes; 0 = default
}

//
// Registry section
//

// Registry tunes the tenant connection registry.
type Registry struct {
	IdleTTLMinutes int `koanf:"idle_ttl_minutes" validate:"gte=0"` // 0 = default
	MaxHandles     int `koanf:"max_handles"      validate:"gte=0"` // 0 = default
}

//
// GeoIP section (optional)
//

// GeoIP points at a MaxMind database used for best-effort login audit.
// Empty path disables geo lookups.
type GeoIP struct {
	MMDBPath string `koanf:"mmdb_path"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.  The loader
// discovers `Root` (repo root or OMNIA_ROOT override) so later code can
// build absolute file paths.
type Paths struct {
	Root string // OMNIA_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	Auth     Auth     `koanf:"auth"`
	Registry Registry `koanf:"registry"`
	GeoIP    GeoIP    `koanf:"geoip"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}
