// Copyright (c) 2026 ScholarHub. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/scholarhub/api/internal/auth"
	"github.com/scholarhub/api/internal/catalog"
	"github.com/scholarhub/api/internal/platform/config"
	"github.com/scholarhub/api/internal/platform/constants"
	"github.com/scholarhub/api/internal/platform/middleware"
	"github.com/scholarhub/api/internal/platform/respond"
	"github.com/scholarhub/api/internal/platform/sec"
	"github.com/scholarhub/api/internal/publication"
	"github.com/scholarhub/api/internal/stats"
	"github.com/scholarhub/api/internal/users"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles login, refresh, logout, and the /me profile.
	Auth *auth.Handler

	// Users handles admin account management.
	Users *users.Handler

	// Publications handles research-publication records.
	Publications *publication.Handler

	// Stats handles the dashboard aggregation endpoints.
	Stats *stats.Handler

	// Catalog serves the read-only college hierarchy for filter panels.
	Catalog *catalog.Catalog
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())

		// The hierarchy catalog is static and safe to serve to any
		// authenticated client; filter panels build themselves from it.
		api.Group(func(authenticated chi.Router) {
			authenticated.Use(middleware.RequireAuth)
			authenticated.Mount("/me", h.Auth.MeRoutes())
			authenticated.Mount("/publications", h.Publications.Routes())
			authenticated.Get("/catalog", func(writer http.ResponseWriter, request *http.Request) {
				respond.OK(writer, h.Catalog.Colleges())
			})
		})

		// Admin surfaces: account management and the dashboards.
		api.Group(func(admin chi.Router) {
			admin.Use(middleware.RequireRole(sec.RoleCampusAdmin))
			admin.Mount("/users", h.Users.Routes())
			admin.Mount("/stats", h.Stats.Routes())
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
