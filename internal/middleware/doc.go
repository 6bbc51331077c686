// Devroster - Developer Roster Service with JWT Authentication
// Copyright 2026 Devroster Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/devroster/devroster

// Package middleware provides HTTP middleware shared by all routes:
// request ID propagation and Prometheus request instrumentation.
// Authentication and authorization middleware live in internal/auth
// and internal/authz.
package middleware
