// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

// Package sec provides cryptographic primitives, roles and the principal type.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, encryption, token
// signing) from the domain logic. It has no dependency on HTTP or storage.
package sec

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the payload embedded in a bearer token.
//
// Field names follow the wire contract consumed by the token authenticator
// and by existing browser clients.
type TokenClaims struct {
	jwt.RegisteredClaims

	UserID       string `json:"user_id"`
	UserType     string `json:"user_type"`
	Rol          string `json:"rol,omitempty"`
	CondominioID *int64 `json:"condominio_id,omitempty"`
	UserName     string `json:"user_name,omitempty"`
}

// TokenIssuer signs bearer tokens with HMAC-SHA256 under a shared secret.
type TokenIssuer struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewTokenIssuer creates a new TokenIssuer.
func NewTokenIssuer(secret, issuer string) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("sec: token secret is empty")
	}
	return &TokenIssuer{secret: []byte(secret), issuer: issuer, now: time.Now}, nil
}

// WithClock overrides the time source. Used by tests.
func (issuer *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	issuer.now = now
	return issuer
}

// Issue creates a signed token for the principal valid for timeToLive.
func (issuer *TokenIssuer) Issue(principal *Principal, timeToLive time.Duration) (string, error) {
	currentTime := issuer.now()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.ID,
			Issuer:    issuer.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID:       principal.ID,
		UserType:     principal.Role.String(),
		Rol:          principal.Role.String(),
		CondominioID: principal.CondominiumID,
		UserName:     principal.DisplayName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(issuer.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// FormatUserID renders a numeric user id the way tokens and sessions store it.
func FormatUserID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// ParseUserID is the inverse of FormatUserID.
func ParseUserID(id string) (int64, error) {
	parsed, err := strconv.ParseInt(id, 10, 64)
	if err != nil || parsed <= 0 {
		return 0, fmt.Errorf("sec: invalid user id %q", id)
	}
	return parsed, nil
}
