// Devroster - Developer Roster Service with JWT Authentication
// Copyright 2026 Devroster Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/devroster/devroster

// Package config loads and validates the Devroster configuration.
//
// Configuration is layered via Koanf v2 (highest priority wins):
//  1. Built-in defaults
//  2. Optional YAML config file (CONFIG_PATH or well-known paths)
//  3. Environment variables (JWT_SECRET, TOKEN_TTL, ...)
//
// Validation failures are fatal at startup: the server never degrades
// into allow-all or deny-all because of a missing secret or an unknown
// role.
package config

import (
	"fmt"
	"time"

	"github.com/devroster/devroster/internal/rbac"
)

// Token source modes for the request authenticator.
const (
	TokenSourceHeader = "header"
	TokenSourceNone   = "none"
)

// User store backends.
const (
	StoreBackendStatic = "static"
	StoreBackendBadger = "badger"
)

// Config is the root configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Store    StoreConfig    `koanf:"store"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the listen address in host:port form.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SecurityConfig holds authentication and authorization settings.
// JWTSecret, TokenTTL and TokenHeader are immutable after load.
type SecurityConfig struct {
	// JWTSecret is the symmetric HMAC-SHA256 signing key. Required,
	// minimum 32 characters.
	JWTSecret string `koanf:"jwt_secret"`

	// TokenTTL is the validity window of issued tokens.
	TokenTTL time.Duration `koanf:"token_ttl"`

	// TokenHeader is the request header carrying the bearer token.
	TokenHeader string `koanf:"token_header"`

	// TokenSource selects how the authenticator obtains tokens:
	// "header" or "none" (authentication disabled, all requests pass
	// through unauthenticated).
	TokenSource string `koanf:"token_source"`

	// BcryptCost is the bcrypt work factor for password hashing.
	BcryptCost int `koanf:"bcrypt_cost"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	CORSOrigins []string `koanf:"cors_origins"`

	Authz AuthzConfig `koanf:"authz"`
}

// AuthzConfig holds authorization enforcer settings.
type AuthzConfig struct {
	// CacheEnabled enables enforcement decision caching.
	CacheEnabled bool `koanf:"cache_enabled"`

	// CacheTTL is how long to cache decisions.
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// StoreConfig holds user store settings.
type StoreConfig struct {
	// Backend selects the user store: "static" or "badger".
	Backend string `koanf:"backend"`

	// Path is the badger data directory (badger backend only).
	Path string `koanf:"path"`

	// Users seeds the store at startup.
	Users []UserConfig `koanf:"users"`
}

// UserConfig describes one seeded user. Either Password (hashed at load)
// or PasswordHash (stored verbatim) must be set.
type UserConfig struct {
	Email        string `koanf:"email"`
	Password     string `koanf:"password"`
	PasswordHash string `koanf:"password_hash"`
	FirstName    string `koanf:"first_name"`
	LastName     string `koanf:"last_name"`
	Role         string `koanf:"role"`
	Active       bool   `koanf:"active"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all defaults applied. Defaults are
// loaded first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8090,
			ShutdownTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			JWTSecret:         "",
			TokenTTL:          time.Hour,
			TokenHeader:       "Authorization",
			TokenSource:       TokenSourceHeader,
			BcryptCost:        12,
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
			Authz: AuthzConfig{
				CacheEnabled: true,
				CacheTTL:     5 * time.Minute,
			},
		},
		Store: StoreConfig{
			Backend: StoreBackendStatic,
			Path:    "/data/users",
			Users:   nil,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the configuration. Any error here is fatal at startup.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	if c.Security.TokenSource != TokenSourceHeader && c.Security.TokenSource != TokenSourceNone {
		return fmt.Errorf("security.token_source must be %q or %q, got %q",
			TokenSourceHeader, TokenSourceNone, c.Security.TokenSource)
	}

	if c.Security.TokenSource == TokenSourceHeader {
		if c.Security.JWTSecret == "" {
			return fmt.Errorf("security.jwt_secret is required")
		}
		if len(c.Security.JWTSecret) < 32 {
			return fmt.Errorf("security.jwt_secret must be at least 32 characters, got %d", len(c.Security.JWTSecret))
		}
	}

	if c.Security.TokenTTL <= 0 {
		return fmt.Errorf("security.token_ttl must be positive, got %v", c.Security.TokenTTL)
	}
	if c.Security.TokenHeader == "" {
		return fmt.Errorf("security.token_header is required")
	}
	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("security.bcrypt_cost %d out of bcrypt range [4,31]", c.Security.BcryptCost)
	}

	switch c.Store.Backend {
	case StoreBackendStatic:
	case StoreBackendBadger:
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the badger backend")
		}
	default:
		return fmt.Errorf("store.backend must be %q or %q, got %q",
			StoreBackendStatic, StoreBackendBadger, c.Store.Backend)
	}

	for i, u := range c.Store.Users {
		if u.Email == "" {
			return fmt.Errorf("store.users[%d]: email is required", i)
		}
		if u.Password == "" && u.PasswordHash == "" {
			return fmt.Errorf("store.users[%d] (%s): password or password_hash is required", i, u.Email)
		}
		if _, err := rbac.ParseRole(u.Role); err != nil {
			return fmt.Errorf("store.users[%d] (%s): %w", i, u.Email, err)
		}
	}

	return nil
}
