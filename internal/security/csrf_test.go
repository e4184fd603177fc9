// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package security_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condominio/condoadmin/internal/security"
)

func newCSRFGuard(h *harness) *security.CSRFGuard {
	return security.NewCSRFGuard(h.store, h.settings.CSRF, h.clock.Now)
}

/*
TestCSRFGuard_SingleUse ensures a token validates exactly once.
*/
func TestCSRFGuard_SingleUse(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)
	guard := newCSRFGuard(h)

	token, err := guard.Issue(ctx, "scope-a", "crear_empleado")
	require.NoError(t, err)
	assert.Len(t, token, 64)

	require.NoError(t, guard.Verify(ctx, "scope-a", token, "crear_empleado"))

	err = guard.Verify(ctx, "scope-a", token, "crear_empleado")
	requireKind(t, err, security.KindCSRFNotFound)
}

/*
TestCSRFGuard_Reusable keeps the token when single-use mode is off.
*/
func TestCSRFGuard_Reusable(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, func(settings *security.Settings) {
		settings.CSRF.RegenerateOnUse = false
	})
	guard := newCSRFGuard(h)

	token, err := guard.Issue(ctx, "scope-a", "")
	require.NoError(t, err)

	require.NoError(t, guard.Verify(ctx, "scope-a", token, ""))
	require.NoError(t, guard.Verify(ctx, "scope-a", token, "default"))
}

/*
TestCSRFGuard_Expiry rejects an exact match once the token is too old.
*/
func TestCSRFGuard_Expiry(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)
	guard := newCSRFGuard(h)

	token, err := guard.Issue(ctx, "scope-a", "")
	require.NoError(t, err)

	h.clock.Advance(h.settings.CSRF.ExpireTime + time.Second)

	err = guard.Verify(ctx, "scope-a", token, "")
	requireKind(t, err, security.KindCSRFExpired)

	// Expired tokens are purged.
	err = guard.Verify(ctx, "scope-a", token, "")
	requireKind(t, err, security.KindCSRFNotFound)
}

/*
TestCSRFGuard_Mismatch covers wrong, empty and cross-scope candidates.
*/
func TestCSRFGuard_Mismatch(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)
	guard := newCSRFGuard(h)

	token, err := guard.Issue(ctx, "scope-a", "editar")
	require.NoError(t, err)

	requireKind(t, guard.Verify(ctx, "scope-a", "forged", "editar"), security.KindCSRFMismatch)
	requireKind(t, guard.Verify(ctx, "scope-a", "", "editar"), security.KindCSRFMismatch)
	requireKind(t, guard.Verify(ctx, "scope-b", token, "editar"), security.KindCSRFNotFound)
	requireKind(t, guard.Verify(ctx, "scope-a", token, "borrar"), security.KindCSRFNotFound)

	// A mismatch does not burn the real token.
	assert.NoError(t, guard.Verify(ctx, "scope-a", token, "editar"))
}

/*
TestCSRFGuard_Inspect verifies the diagnostic check consumes nothing.
*/
func TestCSRFGuard_Inspect(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)
	guard := newCSRFGuard(h)

	token, err := guard.Issue(ctx, "scope-a", "")
	require.NoError(t, err)

	require.NoError(t, guard.Inspect(ctx, "scope-a", token, ""))
	require.NoError(t, guard.Inspect(ctx, "scope-a", token, ""))
	require.NoError(t, guard.Verify(ctx, "scope-a", token, ""))
}

/*
TestCSRFGuard_Sweep drops expired tokens of other actions on issue.
*/
func TestCSRFGuard_Sweep(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)
	guard := newCSRFGuard(h)

	old, err := guard.Issue(ctx, "scope-a", "old")
	require.NoError(t, err)

	h.clock.Advance(h.settings.CSRF.ExpireTime + time.Second)

	_, err = guard.Issue(ctx, "scope-a", "new")
	require.NoError(t, err)

	// Swept, so the record is gone rather than expired.
	requireKind(t, guard.Verify(ctx, "scope-a", old, "old"), security.KindCSRFNotFound)
}

/*
TestCSRFGuard_Applies checks the method and exclusion rules.
*/
func TestCSRFGuard_Applies(t *testing.T) {
	h := newHarness(t, nil)
	guard := newCSRFGuard(h)

	tests := []struct {
		method   string
		route    string
		expected bool
	}{
		{http.MethodGet, "/api/casas", false},
		{http.MethodHead, "/api/casas", false},
		{http.MethodPost, "/api/casas", true},
		{http.MethodPut, "/api/casas/1", true},
		{http.MethodPatch, "/api/casas/1", true},
		{http.MethodDelete, "/api/casas/1", true},
		{http.MethodPost, "/api/auth/login", false},
		{http.MethodPost, "/api/webhooks/pagos", false},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.route, func(t *testing.T) {
			assert.Equal(t, tt.expected, guard.Applies(tt.method, tt.route))
		})
	}
}

/*
TestCSRFGuard_VerifyReferrer validates same-origin requests.
*/
func TestCSRFGuard_VerifyReferrer(t *testing.T) {
	h := newHarness(t, func(settings *security.Settings) {
		settings.CSRF.ValidateReferrer = true
	})
	guard := newCSRFGuard(h)

	sameOrigin := httptest.NewRequest(http.MethodPost, "http://condo.example/api/casas", nil)
	sameOrigin.Header.Set("Origin", "http://condo.example")
	assert.NoError(t, guard.VerifyReferrer(sameOrigin))

	crossSite := httptest.NewRequest(http.MethodPost, "http://condo.example/api/casas", nil)
	crossSite.Header.Set("Referer", "https://evil.example/form")
	requireKind(t, guard.VerifyReferrer(crossSite), security.KindCSRFInvalidReferrer)

	missing := httptest.NewRequest(http.MethodPost, "http://condo.example/api/casas", nil)
	requireKind(t, guard.VerifyReferrer(missing), security.KindCSRFInvalidReferrer)
}

/*
TestCSRF_Rendering escapes the token in HTML helpers.
*/
func TestCSRF_Rendering(t *testing.T) {
	assert.Equal(t, `<input type="hidden" name="_token" value="a&lt;b">`, security.HiddenField("a<b"))
	assert.Equal(t, `<meta name="csrf-token" content="abc">`, security.MetaTag("abc"))

	h := newHarness(t, nil)
	descriptor := newCSRFGuard(h).Descriptor("abc")
	assert.Equal(t, "X-CSRF-TOKEN", descriptor.HeaderName)
	assert.Equal(t, "_token", descriptor.FieldName)
}
