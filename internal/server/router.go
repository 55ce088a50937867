// internal/server/router.go
//
// Router assembly for the admin API.
//
// Middleware order matters: request ID first so every later log line can
// correlate, then request logging, then security headers.  Authentication
// wraps only the routes that need it; login and metrics stay open.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/omniakid/omniakid/internal/auth"
	"github.com/omniakid/omniakid/internal/handler"
	"github.com/omniakid/omniakid/internal/master"
	"github.com/omniakid/omniakid/internal/middleware"
)

// Deps carries everything the router mounts.
type Deps struct {
	Auth    *handler.AuthHandler
	Content *handler.ContentHandler
	System  *handler.SystemHandler
	Tokens  *auth.Tokens
}

// NewRouter builds the chi router for the admin API.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Security)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Post("/session", d.Auth.Login)
		api.With(middleware.MaybeAuthenticate(d.Tokens)).
			Get("/health", d.System.Health)

		// Everything below requires a valid session token.
		api.Group(func(priv chi.Router) {
			priv.Use(middleware.Authenticate(d.Tokens))

			priv.Post("/password", d.Auth.ChangePassword)

			priv.Route("/articles", func(ar chi.Router) {
				ar.Get("/", d.Content.ListArticles)
				ar.Post("/", d.Content.CreateArticle)
				ar.Get("/{id}", d.Content.GetArticle)
				ar.Put("/{id}", d.Content.UpdateArticle)
				ar.Delete("/{id}", d.Content.DeleteArticle)
				ar.Post("/{id}/publish", d.Content.PublishArticle)
			})

			priv.Route("/categories", func(cr chi.Router) {
				cr.Get("/", d.Content.ListCategories)
				cr.Post("/", d.Content.CreateCategory)
				cr.Get("/{id}", d.Content.GetCategory)
				cr.Put("/{id}", d.Content.UpdateCategory)
				cr.Delete("/{id}", d.Content.DeleteCategory)
			})

			priv.Route("/authors", func(au chi.Router) {
				au.Get("/", d.Content.ListAuthors)
				au.Post("/", d.Content.CreateAuthor)
				au.Get("/{id}", d.Content.GetAuthor)
				au.Put("/{id}", d.Content.UpdateAuthor)
				au.Delete("/{id}", d.Content.DeleteAuthor)
			})

			priv.Get("/settings", d.Content.GetSettings)
			priv.Put("/settings", d.Content.PutSettings)

			priv.With(middleware.RequireRole(master.RoleMaster)).
				Post("/registry/reset", d.System.ResetRegistry)
		})
	})

	return r
}

// New wraps the router in an *http.Server.  Timeouts are sized for the
// admin workload: bodies are small JSON documents and responses a page of
// rows at most, with no uploads or long polls, so slow readers and writers
// can be cut off early.  Keep-alives stay open longer since the admin UI
// issues bursts of requests from one browser session.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
