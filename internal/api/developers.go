// Devroster - Developer Roster Service with JWT Authentication
// Copyright 2026 Devroster Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/devroster/devroster

package api

import (
	"net/http"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/devroster/devroster/internal/logging"
)

// Developer is one roster entry, the resource guarded by the
// developers:read and developers:write permissions.
type Developer struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Roster is an in-memory developer roster. Safe for concurrent use.
type Roster struct {
	mu         sync.RWMutex
	developers map[string]Developer
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{
		developers: make(map[string]Developer),
	}
}

// NewDefaultRoster creates a roster pre-populated with the initial
// developer entries, so a fresh server has data to serve before the
// first write.
func NewDefaultRoster() *Roster {
	ro := NewRoster()
	ro.Add("anton@devroster.dev", "Anton", "Klenin")
	ro.Add("vlad@devroster.dev", "Vlad", "Zhuravlev")
	ro.Add("kirill@devroster.dev", "Kirill", "Brykin")
	return ro
}

// List returns all entries ordered by email.
func (ro *Roster) List() []Developer {
	ro.mu.RLock()
	defer ro.mu.RUnlock()

	out := make([]Developer, 0, len(ro.developers))
	for _, d := range ro.developers {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out
}

// Get returns the entry with the given ID.
func (ro *Roster) Get(id string) (Developer, bool) {
	ro.mu.RLock()
	defer ro.mu.RUnlock()
	d, ok := ro.developers[id]
	return d, ok
}

// Add inserts a new entry and returns it with a generated ID.
func (ro *Roster) Add(email, firstName, lastName string) Developer {
	ro.mu.Lock()
	defer ro.mu.Unlock()

	d := Developer{
		ID:        uuid.New().String(),
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	}
	ro.developers[d.ID] = d
	return d
}

// Remove deletes the entry with the given ID.
func (ro *Roster) Remove(id string) bool {
	ro.mu.Lock()
	defer ro.mu.Unlock()

	if _, ok := ro.developers[id]; !ok {
		return false
	}
	delete(ro.developers, id)
	return true
}

// ListDevelopers handles GET /api/v1/developers.
func (h *Handler) ListDevelopers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, h.roster.List())
}

// GetDeveloper handles GET /api/v1/developers/{id}.
func (h *Handler) GetDeveloper(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, ok := h.roster.Get(id)
	if !ok {
		http.Error(w, "Developer not found", http.StatusNotFound)
		return
	}
	respondJSON(w, r, http.StatusOK, d)
}

// CreateDeveloper handles POST /api/v1/developers.
func (h *Handler) CreateDeveloper(w http.ResponseWriter, r *http.Request) {
	var req developerRequest
	if err := decodeAndValidate(r, h.validate, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	d := h.roster.Add(req.Email, req.FirstName, req.LastName)
	logging.Ctx(r.Context()).Info().Str("developer_id", d.ID).Str("email", d.Email).Msg("developer added")
	respondJSON(w, r, http.StatusCreated, d)
}

// DeleteDeveloper handles DELETE /api/v1/developers/{id}.
func (h *Handler) DeleteDeveloper(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.roster.Remove(id) {
		http.Error(w, "Developer not found", http.StatusNotFound)
		return
	}
	logging.Ctx(r.Context()).Info().Str("developer_id", id).Msg("developer removed")
	w.WriteHeader(http.StatusNoContent)
}
