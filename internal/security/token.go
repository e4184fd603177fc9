// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/condominio/condoadmin/internal/platform/constants"
	"github.com/condominio/condoadmin/internal/platform/sec"
)

// tokenPayload is the subset of claims the authenticator reads. user_id and
// condominio_id arrive as numbers or strings depending on the issuer.
type tokenPayload struct {
	UserID       any    `json:"user_id"`
	UserType     string `json:"user_type"`
	Rol          string `json:"rol"`
	CondominioID any    `json:"condominio_id"`
	UserName     string `json:"user_name"`
	Exp          *int64 `json:"exp"`
}

// TokenAuthenticator verifies stateless HMAC-SHA256 bearer tokens.
type TokenAuthenticator struct {
	secret []byte
	now    func() time.Time
}

// NewTokenAuthenticator creates a new TokenAuthenticator.
func NewTokenAuthenticator(secret string, now func() time.Time) *TokenAuthenticator {
	if now == nil {
		now = time.Now
	}
	return &TokenAuthenticator{secret: []byte(secret), now: now}
}

/*
Verify validates an Authorization header value ("Bearer <token>").

The checks run in a fixed order: bearer prefix, segment count, signature,
payload decoding, expiry. A token is not revoked server-side and may be
replayed until it expires.
*/
func (authenticator *TokenAuthenticator) Verify(authorization string) (*sec.Principal, error) {

	// 1. Bearer prefix
	raw, found := cutBearer(authorization)
	if !found || raw == "" {
		return nil, Fail(KindNoToken, "Bearer token required")
	}

	// 2. Shape
	segments := strings.Split(raw, ".")
	if len(segments) != 3 {
		return nil, Fail(KindMalformedToken, "Malformed token")
	}

	// 3. Signature, compared in constant time. Checked before decoding so
	// any edit to a signed segment reports INVALID_SIGNATURE.
	if !authenticator.validSignature(segments[0]+"."+segments[1], segments[2]) {
		return nil, Fail(KindInvalidSignature, "Invalid token signature")
	}

	// 4. Payload
	payloadJSON, err := decodeSegment(segments[1])
	if err != nil {
		return nil, Fail(KindMalformedToken, "Malformed token payload")
	}

	var payload tokenPayload
	if err := json.Unmarshal(payloadJSON, &payload); err != nil {
		return nil, Fail(KindMalformedToken, "Malformed token payload")
	}

	// 5. Expiry
	if payload.Exp != nil && *payload.Exp < authenticator.now().Unix() {
		return nil, Fail(KindTokenExpired, "Token expired")
	}

	// A token without a role still authenticates; role checks reject it later.
	userID := claimString(payload.UserID)
	if userID == "" {
		return nil, Fail(KindMalformedToken, "Token has no user claims")
	}

	var condominiumID *int64
	if id, ok := sec.ParseCondominiumID(payload.CondominioID); ok {
		condominiumID = &id
	}

	return buildPrincipal(userID, payload.UserType, payload.Rol, condominiumID, payload.UserName), nil
}

func (authenticator *TokenAuthenticator) validSignature(signingInput, signature string) bool {
	mac := hmac.New(sha256.New, authenticator.secret)
	mac.Write([]byte(signingInput))
	expected := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))

	// Padded or standard-alphabet signatures are normalized first.
	candidate := strings.TrimRight(signature, "=")
	candidate = strings.NewReplacer("+", "-", "/", "_").Replace(candidate)

	return hmac.Equal([]byte(expected), []byte(candidate))
}

// cutBearer strips the case-insensitive "Bearer " scheme.
func cutBearer(authorization string) (string, bool) {
	prefixLength := len(constants.BearerPrefix)
	if len(authorization) < prefixLength || !strings.EqualFold(authorization[:prefixLength], constants.BearerPrefix) {
		return "", false
	}
	return strings.TrimSpace(authorization[prefixLength:]), true
}

// decodeSegment accepts both base64url (JWT) and standard base64.
func decodeSegment(segment string) ([]byte, error) {
	trimmed := strings.TrimRight(segment, "=")
	if decoded, err := base64.RawURLEncoding.DecodeString(trimmed); err == nil {
		return decoded, nil
	}
	return base64.RawStdEncoding.DecodeString(trimmed)
}

func claimString(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case float64:
		return sec.FormatUserID(int64(typed))
	case json.Number:
		return typed.String()
	default:
		return ""
	}
}
