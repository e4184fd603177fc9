// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

/*
Package auth implements sign-in for condominium accounts.

It defines the user entity, its repository and the endpoints that open and
close sessions, describe the caller and hand out anti-forgery tokens.

# Architecture

Session state, bearer token verification and rate limiting live in the
security package. This package only creates what the pipeline later
verifies: the session record, the signed token and the first CSRF token.
*/
package auth

import (
	"time"

	"github.com/condominio/condoadmin/internal/platform/sec"
)

// # Domain Entities

// User is an account able to sign in.
type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Explicitly omitted from JSON for security.
	Nombre       string     `json:"nombre"`
	Rol          sec.Role   `json:"rol"`
	CondominioID *int64     `json:"condominio_id,omitempty"`
	Activo       bool       `json:"activo"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Principal projects the account onto the identity carried by sessions and tokens.
func (user *User) Principal() *sec.Principal {
	return &sec.Principal{
		ID:            sec.FormatUserID(user.ID),
		Role:          user.Rol,
		CondominiumID: user.CondominioID,
		DisplayName:   user.Nombre,
	}
}

// # Field Identifiers

const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldAccessToken     = "access_token"
	FieldTokenType       = "token_type"
	FieldExpiresIn       = "expires_in"
	FieldUser            = "user"
	FieldCSRFToken       = "csrf_token"

	// FieldBearerCSRFToken carries a token bound to the user scope, for
	// clients that authenticate with the bearer token only.
	FieldBearerCSRFToken = "bearer_csrf_token"
)
