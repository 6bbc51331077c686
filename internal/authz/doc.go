// Devroster - Developer Roster Service with JWT Authentication
// Copyright 2026 Devroster Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/devroster/devroster

// Package authz enforces permission checks using Casbin. Policy rules
// are generated from the rbac registry at startup, so the enforcer and
// the registry cannot drift. Decisions are optionally cached.
//
// The package answers exactly one question: may this identity perform
// this permission's action on this permission's resource. Who the
// identity is and which role it holds is established upstream by
// internal/auth; nothing here reads tokens or user records.
package authz
