// Devroster - Developer Roster Service with JWT Authentication
// Copyright 2026 Devroster Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/devroster/devroster

package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels shared by the authentication metrics.
const (
	OutcomeSuccess         = "success"
	OutcomeFailure         = "failure"
	OutcomeMalformed       = "malformed"
	OutcomeBadSignature    = "bad_signature"
	OutcomeExpired         = "expired"
	OutcomeSubjectNotFound = "subject_not_found"
	OutcomeError           = "error"
)

var (
	// loginAttempts counts login attempts by outcome.
	loginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"outcome"},
	)

	// tokenVerifications counts bearer token verifications by outcome.
	tokenVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_token_verifications_total",
			Help: "Total number of bearer token verifications",
		},
		[]string{"outcome"},
	)
)

// RecordLogin records a login attempt outcome.
func RecordLogin(outcome string) {
	loginAttempts.WithLabelValues(outcome).Inc()
}

// RecordTokenVerification records a token verification outcome.
func RecordTokenVerification(outcome string) {
	tokenVerifications.WithLabelValues(outcome).Inc()
}
