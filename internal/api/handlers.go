// Devroster - Developer Roster Service with JWT Authentication
// Copyright 2026 Devroster Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/devroster/devroster

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/devroster/devroster/internal/auth"
	"github.com/devroster/devroster/internal/logging"
	"github.com/devroster/devroster/internal/store"
)

// loginFailedMessage is uniform across unknown email, wrong password
// and deactivated accounts so responses leak nothing about which check
// failed. Failed logins return 403, matching the behavior clients of
// the original service already depend on.
const loginFailedMessage = "Invalid email or password"

// Handler carries the dependencies shared by all HTTP handlers.
type Handler struct {
	codec    *auth.Codec
	encoder  *auth.Encoder
	users    store.UserStore
	roster   *Roster
	validate *validator.Validate
}

// NewHandler creates the API handler set.
func NewHandler(codec *auth.Codec, encoder *auth.Encoder, users store.UserStore, roster *Roster) *Handler {
	return &Handler{
		codec:    codec,
		encoder:  encoder,
		users:    users,
		roster:   roster,
		validate: validator.New(),
	}
}

// Login authenticates an email/password pair and issues a token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeAndValidate(r, h.validate, &req); err != nil {
		auth.RecordLogin(auth.OutcomeFailure)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.users.FindBySubject(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			auth.RecordLogin(auth.OutcomeError)
			logging.Ctx(r.Context()).Error().Err(err).Msg("login lookup failed")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		// Burn a bcrypt comparison anyway so a missing account costs
		// the same wall time as a wrong password.
		h.encoder.Verify(req.Password, "")
		h.rejectLogin(w, r, req.Email)
		return
	}

	if !user.Active || !h.encoder.Verify(req.Password, user.PasswordHash) {
		h.rejectLogin(w, r, req.Email)
		return
	}

	token, err := h.codec.Issue(user.Subject, user.Role, time.Now())
	if err != nil {
		auth.RecordLogin(auth.OutcomeError)
		logging.Ctx(r.Context()).Error().Err(err).Msg("token issuance failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	auth.RecordLogin(auth.OutcomeSuccess)
	logging.Ctx(r.Context()).Info().Str("subject", user.Subject).Msg("login successful")
	respondJSON(w, r, http.StatusOK, loginResponse{Email: user.Subject, Token: token})
}

func (h *Handler) rejectLogin(w http.ResponseWriter, r *http.Request, email string) {
	auth.RecordLogin(auth.OutcomeFailure)
	logging.Ctx(r.Context()).Warn().Str("email", email).Msg("login rejected")
	http.Error(w, loginFailedMessage, http.StatusForbidden)
}

// Logout is a stateless no-op kept for client symmetry. Tokens cannot
// be revoked; they expire on their own.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"message": "logout successful"})
}

// Me returns the authenticated identity.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id := auth.IdentityFromContext(r.Context())
	if id == nil {
		http.Error(w, "Unauthorized: authentication required", http.StatusUnauthorized)
		return
	}
	respondJSON(w, r, http.StatusOK, id)
}

// Healthz reports process liveness.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// respondJSON writes a JSON response body with proper headers.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to encode JSON response")
	}
}
