// Devroster - Developer Roster Service with JWT Authentication
// Copyright 2026 Devroster Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/devroster/devroster

// Package main is the entry point for the Devroster server.
//
// Devroster exposes a developer roster behind stateless JWT
// authentication and role-based authorization. Startup order:
//
//  1. Configuration: Koanf v2 layered load (defaults, YAML file, env)
//  2. Logging: zerolog, JSON or console format
//  3. Registry validation: every role must map to permissions
//  4. User store: static in-memory or BadgerDB, seeded from config
//  5. Enforcer: Casbin policy generated from the registry
//  6. HTTP server: Chi router under Suture supervision
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting connections and waits for in-flight requests up to
// server.shutdown_timeout.
//
// Minimal production configuration:
//
//	export JWT_SECRET=$(openssl rand -base64 32)
//	export CONFIG_PATH=/etc/devroster/config.yaml  # seeded users live here
//	./devroster
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/devroster/devroster/internal/api"
	"github.com/devroster/devroster/internal/auth"
	"github.com/devroster/devroster/internal/authz"
	"github.com/devroster/devroster/internal/config"
	"github.com/devroster/devroster/internal/logging"
	"github.com/devroster/devroster/internal/rbac"
	"github.com/devroster/devroster/internal/store"
	"github.com/devroster/devroster/internal/supervisor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("token_source", cfg.Security.TokenSource).
		Str("store_backend", cfg.Store.Backend).
		Msg("Configuration loaded")

	if err := rbac.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("Role registry validation failed")
	}

	encoder := auth.NewEncoder(cfg.Security.BcryptCost)

	seeded, err := auth.SeedUsers(cfg.Store.Users, encoder)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to prepare seeded users")
	}

	var users store.UserStore
	switch cfg.Store.Backend {
	case config.StoreBackendBadger:
		badgerStore, err := store.OpenBadger(cfg.Store.Path)
		if err != nil {
			logging.Fatal().Err(err).Str("path", cfg.Store.Path).Msg("Failed to open badger store")
		}
		defer func() {
			if err := badgerStore.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing badger store")
			}
		}()
		if err := badgerStore.Seed(context.Background(), seeded); err != nil {
			logging.Fatal().Err(err).Msg("Failed to seed badger store")
		}
		users = badgerStore
	default:
		staticStore, err := store.NewStatic(seeded)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to build static store")
		}
		users = staticStore
	}
	logging.Info().Int("users", len(seeded)).Msg("User store ready")

	var codec *auth.Codec
	if cfg.Security.TokenSource == config.TokenSourceHeader {
		codec, err = auth.NewCodec(&cfg.Security)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to create token codec")
		}
		logging.Info().Dur("token_ttl", codec.TTL()).Msg("Token codec ready")
	}

	authn, err := auth.NewMiddleware(&auth.MiddlewareConfig{
		TokenSource: cfg.Security.TokenSource,
		Header:      cfg.Security.TokenHeader,
		Codec:       codec,
		Resolver:    auth.NewResolver(users),
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create authentication middleware")
	}

	enforcer, err := authz.NewEnforcer(&authz.EnforcerConfig{
		CacheEnabled: cfg.Security.Authz.CacheEnabled,
		CacheTTL:     cfg.Security.Authz.CacheTTL,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create authorization enforcer")
	}
	defer enforcer.Close()

	handler := api.NewHandler(codec, encoder, users, api.NewDefaultRoster())

	router := api.NewRouter(&api.RouterConfig{
		Handler:           handler,
		Authn:             authn,
		Authz:             authz.NewMiddleware(enforcer),
		CORSOrigins:       cfg.Security.CORSOrigins,
		RateLimitEnabled:  !cfg.Security.RateLimitDisabled,
		RateLimitRequests: cfg.Security.RateLimitReqs,
		RateLimitWindow:   cfg.Security.RateLimitWindow,
	})

	server := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.Add(supervisor.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	logging.Info().Msg("Server stopped gracefully")
}
