// Devroster - Developer Roster Service with JWT Authentication
// Copyright 2026 Devroster Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/devroster/devroster

package api

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// loginRequest is the POST /api/v1/auth/login payload.
type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// loginResponse echoes the authenticated email with the issued token.
type loginResponse struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// developerRequest is the POST /api/v1/developers payload.
type developerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// decodeAndValidate decodes the JSON body into dst and runs struct
// validation. Returns a client-facing error message on failure.
func decodeAndValidate(r *http.Request, validate *validator.Validate, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body")
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("validation failed: %s", validationSummary(err))
	}
	return nil
}

// validationSummary flattens validator errors into one line.
func validationSummary(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	out := ""
	for i, fe := range verrs {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s is %s", fe.Field(), fe.Tag())
	}
	return out
}
