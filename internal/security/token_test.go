// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package security_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condominio/condoadmin/internal/platform/sec"
	"github.com/condominio/condoadmin/internal/security"
)

// signRaw builds a token from a literal payload, the way non-JWT issuers do.
func signRaw(secret, payload string) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	body := base64.RawURLEncoding.EncodeToString([]byte(payload))

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(header + "." + body))
	return header + "." + body + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

/*
TestTokenAuthenticator_RoundTrip verifies issued tokens until they expire.
*/
func TestTokenAuthenticator_RoundTrip(t *testing.T) {
	clock := newFakeClock()
	authenticator := security.NewTokenAuthenticator(testSecret, clock.Now)

	token := signRaw(testSecret, `{"user_id":1,"exp":`+itoa(clock.Now().Add(60*time.Second).Unix())+`}`)

	// Stateless: the same token verifies on every call.
	for range 3 {
		principal, err := authenticator.Verify("Bearer " + token)
		require.NoError(t, err)
		assert.Equal(t, "1", principal.ID)
	}

	clock.Advance(61 * time.Second)

	_, err := authenticator.Verify("Bearer " + token)
	requireKind(t, err, security.KindTokenExpired)
}

/*
TestTokenAuthenticator_IssuedClaims checks claims written by sec.TokenIssuer.
*/
func TestTokenAuthenticator_IssuedClaims(t *testing.T) {
	h := newHarness(t, nil)
	authenticator := security.NewTokenAuthenticator(testSecret, h.clock.Now)

	token := h.issueToken(t, principalOf("42", sec.RoleResidente, 3), time.Hour)

	principal, err := authenticator.Verify("bearer " + token)
	require.NoError(t, err)

	assert.Equal(t, "42", principal.ID)
	assert.Equal(t, sec.RoleResidente, principal.Role)
	assert.Equal(t, int64(3), principal.Condominium())
	assert.Equal(t, "Test 42", principal.DisplayName)
}

/*
TestTokenAuthenticator_Tampering flips every byte of the payload segment.
*/
func TestTokenAuthenticator_Tampering(t *testing.T) {
	h := newHarness(t, nil)
	authenticator := security.NewTokenAuthenticator(testSecret, h.clock.Now)

	token := h.issueToken(t, principalOf("42", sec.RoleResidente, 3), time.Hour)
	segments := strings.Split(token, ".")
	require.Len(t, segments, 3)

	for index := range len(segments[1]) {
		replacement := byte('A')
		if segments[1][index] == 'A' {
			replacement = 'B'
		}
		payload := segments[1][:index] + string(replacement) + segments[1][index+1:]
		tampered := segments[0] + "." + payload + "." + segments[2]

		_, err := authenticator.Verify("Bearer " + tampered)
		requireKind(t, err, security.KindInvalidSignature)
	}
}

/*
TestTokenAuthenticator_Failures covers the remaining rejection kinds.
*/
func TestTokenAuthenticator_Failures(t *testing.T) {
	clock := newFakeClock()
	authenticator := security.NewTokenAuthenticator(testSecret, clock.Now)

	tests := []struct {
		name          string
		authorization string
		kind          security.Kind
	}{
		{"empty_header", "", security.KindNoToken},
		{"basic_scheme", "Basic dXNlcjpwYXNz", security.KindNoToken},
		{"bearer_without_token", "Bearer ", security.KindNoToken},
		{"two_segments", "Bearer abc.def", security.KindMalformedToken},
		{"four_segments", "Bearer a.b.c.d", security.KindMalformedToken},
		{"wrong_secret", "Bearer " + signRaw("another-secret", `{"user_id":1}`), security.KindInvalidSignature},
		{"payload_not_json", "Bearer " + signRaw(testSecret, `not-json`), security.KindMalformedToken},
		{"no_user_id", "Bearer " + signRaw(testSecret, `{"rol":"ADMIN"}`), security.KindMalformedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := authenticator.Verify(tt.authorization)
			requireKind(t, err, tt.kind)
		})
	}
}

/*
TestTokenAuthenticator_PaddedSignature accepts standard base64 signatures.
*/
func TestTokenAuthenticator_PaddedSignature(t *testing.T) {
	clock := newFakeClock()
	authenticator := security.NewTokenAuthenticator(testSecret, clock.Now)

	token := signRaw(testSecret, `{"user_id":"9","user_type":"EMPLEADO","condominio_id":"4"}`)
	segments := strings.Split(token, ".")
	signature, err := base64.RawURLEncoding.DecodeString(segments[2])
	require.NoError(t, err)

	padded := segments[0] + "." + segments[1] + "." + base64.StdEncoding.EncodeToString(signature)

	principal, err := authenticator.Verify("Bearer " + padded)
	require.NoError(t, err)
	assert.Equal(t, sec.RoleEmpleado, principal.Role)
	assert.Equal(t, int64(4), principal.Condominium())
}

func itoa(value int64) string {
	return sec.FormatUserID(value)
}
