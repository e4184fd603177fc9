// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound when no row matches
	*/
	FindByID(context context.Context, id int64) (*User, error)

	/*
		FindByEmail returns the account registered under the email,
		compared case-insensitively.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound when no row matches
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	// TouchLastLogin stamps a successful sign-in.
	TouchLastLogin(context context.Context, id int64, at time.Time) error

	// UpdatePassword replaces only the user's password hash.
	UpdatePassword(context context.Context, id int64, passwordHash string) error
}
