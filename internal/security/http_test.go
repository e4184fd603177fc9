// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package security_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condominio/condoadmin/internal/platform/constants"
	"github.com/condominio/condoadmin/internal/platform/sec"
	"github.com/condominio/condoadmin/internal/security"
)

func newAdminRouter(h *harness) http.Handler {
	router := chi.NewRouter()
	router.Route("/api/security", security.NewHandler(h.pipeline).RegisterRoutes)
	return router
}

/*
TestHandler_Report simulates a request and lists every stage outcome.
*/
func TestHandler_Report(t *testing.T) {
	h := newHarness(t, nil)
	router := newAdminRouter(h)
	sessionID, _ := h.login(t, principalOf("1", sec.RoleAdmin, 0))

	request := httptest.NewRequest(http.MethodGet, "/api/security/report?method=post&route=/api/empleados&roles=EMPLEADO", nil)
	request.AddCookie(sessionCookie(h, sessionID))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	data := decodeBody(t, recorder)["data"].(map[string]any)
	assert.Equal(t, false, data["authorized"])

	stages := data["stages"].([]any)
	require.Len(t, stages, 5)

	csrf := stages[2].(map[string]any)
	assert.Equal(t, security.StageCSRF, csrf["stage"])
	assert.Equal(t, "CSRF_TOKEN_NOT_FOUND", csrf["code"])

	role := stages[3].(map[string]any)
	assert.Equal(t, true, role["passed"])
}

/*
TestHandler_ReportAfterRotation reports on the session id the guard just rotated.
*/
func TestHandler_ReportAfterRotation(t *testing.T) {
	h := newHarness(t, nil)
	router := newAdminRouter(h)
	sessionID, _ := h.login(t, principalOf("1", sec.RoleAdmin, 0))

	h.clock.Advance(301 * time.Second)

	request := httptest.NewRequest(http.MethodGet, "/api/security/report?route=/api/casas", nil)
	request.AddCookie(sessionCookie(h, sessionID))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var rotated string
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == h.settings.Session.CookieName {
			rotated = cookie.Value
		}
	}
	require.NotEmpty(t, rotated)
	assert.NotEqual(t, sessionID, rotated)

	data := decodeBody(t, recorder)["data"].(map[string]any)
	assert.Equal(t, true, data["authorized"])

	authentication := data["stages"].([]any)[0].(map[string]any)
	assert.Equal(t, security.StageAuthentication, authentication["stage"])
	assert.Equal(t, true, authentication["passed"])

	// The rotated id is still the live one.
	_, err := h.pipeline.Sessions().Get(context.Background(), rotated)
	assert.NoError(t, err)
}

/*
TestHandler_ReportRejectsInvalidRoute validates the simulated route.
*/
func TestHandler_ReportRejectsInvalidRoute(t *testing.T) {
	h := newHarness(t, nil)
	router := newAdminRouter(h)
	sessionID, _ := h.login(t, principalOf("1", sec.RoleAdmin, 0))

	request := httptest.NewRequest(http.MethodGet, "/api/security/report?route=casas", nil)
	request.AddCookie(sessionCookie(h, sessionID))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

/*
TestHandler_AdminOnly keeps residents out of the diagnostics.
*/
func TestHandler_AdminOnly(t *testing.T) {
	h := newHarness(t, nil)
	router := newAdminRouter(h)
	sessionID, _ := h.login(t, principalOf("12", sec.RoleResidente, 3))

	request := httptest.NewRequest(http.MethodGet, "/api/security/rate-limits/login/203.0.113.7", nil)
	request.AddCookie(sessionCookie(h, sessionID))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, "INSUFFICIENT_ROLE", decodeBody(t, recorder)["code"])
}

/*
TestHandler_RateLimits reads and clears a bucket.
*/
func TestHandler_RateLimits(t *testing.T) {
	h := newHarness(t, nil)
	router := newAdminRouter(h)
	ctx := context.Background()
	sessionID, scope := h.login(t, principalOf("1", sec.RoleAdmin, 0))

	for range 2 {
		_, err := h.pipeline.Limiter().Consume(ctx, "203.0.113.7", security.BucketLogin)
		require.NoError(t, err)
	}

	// 1. Stats
	request := httptest.NewRequest(http.MethodGet, "/api/security/rate-limits/login/203.0.113.7", nil)
	request.AddCookie(sessionCookie(h, sessionID))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	stats := decodeBody(t, recorder)["data"].(map[string]any)
	assert.EqualValues(t, 2, stats["count"])
	assert.EqualValues(t, 3, stats["remaining_attempts"])

	// 2. Reset is a mutation and needs an anti-forgery token
	token, err := h.pipeline.CSRF().Issue(ctx, scope, "")
	require.NoError(t, err)

	request = httptest.NewRequest(http.MethodDelete, "/api/security/rate-limits/login/203.0.113.7", nil)
	request.AddCookie(sessionCookie(h, sessionID))
	request.Header.Set(constants.HeaderCSRFToken, token)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusNoContent, recorder.Code, recorder.Body.String())

	after, err := h.pipeline.Limiter().Stats(ctx, "203.0.113.7", security.BucketLogin)
	require.NoError(t, err)
	assert.Zero(t, after.Count)

	// 3. Unknown buckets are not addressable
	request = httptest.NewRequest(http.MethodGet, "/api/security/rate-limits/bogus/203.0.113.7", nil)
	request.AddCookie(sessionCookie(h, sessionID))
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
