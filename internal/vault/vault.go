// internal/vault/vault.go
//
// Vault client wrapper for OmniaKid.
//
// Context
// -------
//   - Concurrency-safe wrapper around the HashiCorp Vault Go SDK.
//   - Adds simple KV-v2 helpers and per-key caching so the config loader
//     can resolve `vault:<path>#<key>` values without hammering Vault.
//   - Secrets are returned to the caller and never logged.
//
// Public workflow
// ---------------
//  1. cli, err := vault.New(ctx)                  // during boot.
//  2. val, err := cli.Resolve(ctx, "vault:secret/omnia/master#password")
//
// Environment expectations
// ------------------------
// • VAULT_ADDR   – scheme and host of the Vault server.
// • VAULT_TOKEN  – initial token (falls back to ~/.vault-token).
package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	vault "github.com/hashicorp/vault/api"
)

// Prefix marks a config value that must be resolved through Vault.
const Prefix = "vault:"

// Client is safe for concurrent use.  Create once at startup and inject it.
// Zero value is invalid.
type Client struct {
	api *vault.Client

	cacheMu sync.RWMutex
	cache   map[string]cached // canonical path#key → value + expiry
}

type cached struct {
	val string
	exp time.Time
}

// New constructs a Vault client from the standard environment.
func New(ctx context.Context) (*Client, error) {
	cfg := vault.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault env cfg: %w", err)
	}

	apiCli, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault api: %w", err)
	}
	if tok := os.Getenv("VAULT_TOKEN"); tok != "" {
		apiCli.SetToken(tok)
	}

	return &Client{api: apiCli, cache: make(map[string]cached)}, nil
}

// IsRef reports whether a config value needs Vault resolution.
func IsRef(v string) bool { return strings.HasPrefix(v, Prefix) }

// Resolve turns "vault:<mount>/<path>#<key>" into the secret value.  Plain
// strings are returned unchanged so callers can pass every config value
// through without branching.
func (c *Client) Resolve(ctx context.Context, v string) (string, error) {
	if !IsRef(v) {
		return v, nil
	}
	ref := strings.TrimPrefix(v, Prefix)
	path, key, ok := strings.Cut(ref, "#")
	if !ok || path == "" || key == "" {
		return "", errors.New("vault ref must be vault:<path>#<key>")
	}
	return c.GetKV(ctx, path, key, 5*time.Minute)
}

// GetKV fetches a single key from a KV-v2 secret.  If ttl > 0 the result is
// cached for that duration.
func (c *Client) GetKV(ctx context.Context, secretPath, key string, ttl time.Duration) (string, error) {
	if secretPath == "" || key == "" {
		return "", errors.New("secret path and key must be non-empty")
	}

	canonical := secretPath + "#" + key

	if ttl > 0 {
		c.cacheMu.RLock()
		if cv, ok := c.cache[canonical]; ok && time.Now().Before(cv.exp) {
			c.cacheMu.RUnlock()
			return cv.val, nil
		}
		c.cacheMu.RUnlock()
	}

	mount, rel := splitMount(secretPath)
	sec, err := c.api.KVv2(mount).Get(ctx, rel)
	if err != nil {
		return "", fmt.Errorf("vault get %s: %w", secretPath, err)
	}

	raw, ok := sec.Data[key]
	if !ok {
		return "", fmt.Errorf("key %q not found in secret %q", key, secretPath)
	}
	sval, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("value at %s#%s is not a string", secretPath, key)
	}

	if ttl > 0 {
		c.cacheMu.Lock()
		c.cache[canonical] = cached{val: sval, exp: time.Now().Add(ttl)}
		c.cacheMu.Unlock()
	}

	return sval, nil
}

// splitMount separates "secret/omnia/master" into mount "secret" and the
// relative path "omnia/master".
func splitMount(p string) (mount, rel string) {
	parts := strings.SplitN(p, "/", 2)
	mount = parts[0]
	if len(parts) == 2 {
		rel = parts[1]
	}
	return mount, rel
}
