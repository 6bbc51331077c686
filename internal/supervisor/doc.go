// Devroster - Developer Roster Service with JWT Authentication
// Copyright 2026 Devroster Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/devroster/devroster

// Package supervisor runs the HTTP server under Suture supervision.
// A crashed server is restarted with exponential backoff; shutdown is
// driven by canceling the context passed to Serve.
package supervisor
