// Devroster - Developer Roster Service with JWT Authentication
// Copyright 2026 Devroster Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/devroster/devroster

// Package api provides the HTTP surface: Chi routing, login and logout
// handlers, the authenticated /me endpoint, and the guarded developer
// roster CRUD. Authentication and authorization decisions are made by
// the middleware from internal/auth and internal/authz; handlers here
// only consume the resulting request context.
package api
