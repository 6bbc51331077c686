// Devroster - Developer Roster Service with JWT Authentication
// Copyright 2026 Devroster Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/devroster/devroster

// Package auth implements the stateless authentication core: bcrypt
// credential encoding, HMAC-SHA256 token issuance and verification,
// identity resolution against the user store, and the request
// authentication middleware.
//
// Tokens prove identity and freshness only. Role and permissions are
// re-derived from the user store on every request; the role claim
// embedded in a token is carried for convenience and audit and is never
// consulted by authorization. Revocation before natural expiry is
// unsupported: a token becomes invalid purely by time.
//
// The resolved Identity travels in the request context, populated by the
// Authenticate middleware and discarded with the request. There is no
// process-wide authentication state.
package auth
