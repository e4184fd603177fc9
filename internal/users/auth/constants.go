// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the bearer token lifetime used when none is configured.
	AccessTokenTTL = time.Hour

	// TokenType is the scheme clients put in front of the access token.
	TokenType = "Bearer"

	// MinPasswordLength applies to password changes.
	MinPasswordLength = 8

	// MaxPasswordLength is the bcrypt input limit.
	MaxPasswordLength = 72
)

// # CSRF Renderings

const (
	FormatJSON  = "json"
	FormatMeta  = "meta"
	FormatField = "field"

	// ActionChangePassword scopes the anti-forgery token of POST /change-password.
	ActionChangePassword = "change_password"
)
