// Devroster - Developer Roster Service with JWT Authentication
// Copyright 2026 Devroster Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/devroster/devroster

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/devroster/devroster/internal/auth"
	"github.com/devroster/devroster/internal/authz"
	"github.com/devroster/devroster/internal/middleware"
	"github.com/devroster/devroster/internal/rbac"
)

// RouterConfig holds everything the route tree needs.
type RouterConfig struct {
	Handler *Handler

	// Authn is the request authentication middleware.
	Authn *auth.Middleware

	// Authz guards routes with permission checks.
	Authz *authz.Middleware

	// CORSOrigins lists allowed origins. Empty means same-origin only.
	CORSOrigins []string

	// Rate limiting, keyed by client IP.
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// NewRouter assembles the route tree.
//
// The authentication middleware runs on every /api/v1 route and passes
// tokenless requests through unauthenticated; it is the authorization
// middleware on each guarded route that turns a missing identity into
// a denial. Login, logout, health and metrics stay public.
func NewRouter(cfg *RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if cfg.RateLimitEnabled {
		r.Use(httprate.LimitByIP(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	r.Get("/healthz", cfg.Handler.Healthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", cfg.Handler.Login)
		r.Post("/logout", cfg.Handler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(cfg.Authn.Authenticate)
			r.Get("/me", cfg.Handler.Me)
		})
	})

	r.Route("/api/v1/developers", func(r chi.Router) {
		r.Use(cfg.Authn.Authenticate)

		read := cfg.Authz.RequirePermission(rbac.PermissionDevelopersRead)
		write := cfg.Authz.RequirePermission(rbac.PermissionDevelopersWrite)

		r.With(read).Get("/", cfg.Handler.ListDevelopers)
		r.With(read).Get("/{id}", cfg.Handler.GetDeveloper)
		r.With(write).Post("/", cfg.Handler.CreateDeveloper)
		r.With(write).Delete("/{id}", cfg.Handler.DeleteDeveloper)
	})

	return r
}
