// cmd/admin/main.go
//
// OmniaKid admin backend – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (jail-wide file → .env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Load config; resolve `vault:` secrets when present.
//
//  4. Open the master DB (fail-fast ping) and log the active-admin count.
//
//  5. Build the tenant connection registry (lazy, handle per connection
//     string).
//
//  6. Wire token service, login auditor, handlers, and the chi router;
//     serve with hardened timeouts until SIGINT/SIGTERM.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/omniakid/omniakid/internal/auth"
	"github.com/omniakid/omniakid/internal/config"
	"github.com/omniakid/omniakid/internal/database"
	"github.com/omniakid/omniakid/internal/handler"
	"github.com/omniakid/omniakid/internal/logger"
	"github.com/omniakid/omniakid/internal/loginaudit"
	"github.com/omniakid/omniakid/internal/master"
	"github.com/omniakid/omniakid/internal/registry"
	"github.com/omniakid/omniakid/internal/server"
	"github.com/omniakid/omniakid/internal/vault"
)

const serverEnvPath = "/usr/local/etc/omniakid/global.env"

// loadEnv prefers the jail-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	//
	// ── 1.  Config (and Vault secrets when referenced) ─────────────────
	//
	cfg, err := config.Load()
	if err != nil {
		logOut.Fatalf("load config: %v", err)
	}
	if vault.IsRef(cfg.Database.MasterDSN) || vault.IsRef(cfg.Auth.Secret) {
		cli, err := vault.New(ctx)
		if err != nil {
			logOut.Fatalf("vault client: %v", err)
		}
		if err := config.ResolveSecrets(ctx, cfg, cli); err != nil {
			logOut.Fatalf("resolve secrets: %v", err)
		}
	}

	//
	// ── 2.  Master DB connect ──────────────────────────────────────────
	//
	logOut.Info("connecting to master DB …")
	masterDB, err := database.Open(ctx, cfg.Database.MasterDSN)
	if err != nil {
		logOut.Fatalf("connect master DB: %v", err)
	}
	defer masterDB.Close()
	logOut.Info("master DB online")

	store := master.NewStore(master.NewHandle(masterDB))

	// Log active-admin count as an early sanity check.
	var active int
	_ = masterDB.GetContext(ctx, &active,
		`SELECT COUNT(*) FROM admins WHERE status = 'active'`)
	logOut.Infof("%d active admin(s) found", active)

	//
	// ── 3.  Tenant connection registry ─────────────────────────────────
	//
	reg := registry.New(registry.Options{
		IdleTTL:    time.Duration(cfg.Registry.IdleTTLMinutes) * time.Minute,
		MaxHandles: cfg.Registry.MaxHandles,
	})
	defer reg.Close()

	//
	// ── 4.  Token service and login auditor ────────────────────────────
	//
	tokens, err := auth.NewTokens(cfg.Auth.Secret,
		time.Duration(cfg.Auth.TokenTTL)*time.Minute)
	if err != nil {
		logOut.Fatalf("token service: %v", err)
	}
	audit := loginaudit.New(cfg.GeoIP.MMDBPath)
	defer audit.Close()

	//
	// ── 5.  Router and hardened HTTP server ────────────────────────────
	//
	router := server.NewRouter(server.Deps{
		Auth:    handler.NewAuthHandler(store, tokens, audit),
		Content: handler.NewContentHandler(store, reg),
		System:  handler.NewSystemHandler(store, reg),
		Tokens:  tokens,
	})

	srv := server.New(cfg.HTTP.ListenAddr, router)

	go func() {
		logOut.Infof("listening on %s", cfg.HTTP.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logOut.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logOut.Info("shutting down …")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logOut.Errorf("shutdown: %v", err)
	}
}
