// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package security_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condominio/condoadmin/internal/platform/kv"
	"github.com/condominio/condoadmin/internal/platform/sec"
	"github.com/condominio/condoadmin/internal/security"
)

func newSessionAuthenticator(h *harness) *security.SessionAuthenticator {
	return security.NewSessionAuthenticator(h.pipeline.Sessions(), h.settings.Session, h.clock.Now)
}

/*
TestSessionAuthenticator_Expiry ensures an idle session is rejected and destroyed.
*/
func TestSessionAuthenticator_Expiry(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)
	authenticator := newSessionAuthenticator(h)

	sessionID, _ := h.login(t, principalOf("12", sec.RoleResidente, 3))

	h.clock.Advance(h.settings.Session.Lifetime + time.Second)

	_, _, err := authenticator.Verify(ctx, sessionID)
	requireKind(t, err, security.KindSessionExpired)

	// The session is gone afterwards.
	_, _, err = authenticator.Verify(ctx, sessionID)
	requireKind(t, err, security.KindNoSession)

	_, err = h.pipeline.Sessions().Get(ctx, sessionID)
	assert.ErrorIs(t, err, security.ErrSessionNotFound)
}

/*
TestSessionAuthenticator_Rotation checks id rotation after the regenerate interval.
*/
func TestSessionAuthenticator_Rotation(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates_after_interval", func(t *testing.T) {
		h := newHarness(t, nil)
		authenticator := newSessionAuthenticator(h)
		sessionID, scope := h.login(t, principalOf("12", sec.RoleResidente, 3))

		_, first, err := authenticator.Verify(ctx, sessionID)
		require.NoError(t, err)

		h.clock.Advance(301 * time.Second)

		_, second, err := authenticator.Verify(ctx, first.ID)
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, scope, second.Scope, "scope survives rotation")
		assert.Equal(t, h.clock.Now(), second.LastRegeneration)

		_, err = h.pipeline.Sessions().Get(ctx, first.ID)
		assert.ErrorIs(t, err, security.ErrSessionNotFound)
	})

	t.Run("keeps_id_within_interval", func(t *testing.T) {
		h := newHarness(t, nil)
		authenticator := newSessionAuthenticator(h)
		sessionID, _ := h.login(t, principalOf("12", sec.RoleResidente, 3))

		_, first, err := authenticator.Verify(ctx, sessionID)
		require.NoError(t, err)

		h.clock.Advance(100 * time.Second)

		_, second, err := authenticator.Verify(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, h.clock.Now(), second.LastActivity)
	})
}

/*
TestSessionAuthenticator_Claims covers missing claims and principal defaults.
*/
func TestSessionAuthenticator_Claims(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)
	authenticator := newSessionAuthenticator(h)

	t.Run("empty_id", func(t *testing.T) {
		_, _, err := authenticator.Verify(ctx, "")
		requireKind(t, err, security.KindNoSession)
	})

	t.Run("missing_user_type", func(t *testing.T) {
		session := &security.Session{UserID: "5", LastActivity: h.clock.Now(), LastRegeneration: h.clock.Now()}
		id, err := h.pipeline.Sessions().Create(ctx, session)
		require.NoError(t, err)

		_, _, err = authenticator.Verify(ctx, id)
		requireKind(t, err, security.KindNoSession)
	})

	t.Run("default_display_name", func(t *testing.T) {
		principal := principalOf("7", sec.RoleEmpleado, 2)
		principal.DisplayName = ""
		id, _ := h.login(t, principal)

		resolved, _, err := authenticator.Verify(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Usuario", resolved.DisplayName)
		assert.Equal(t, sec.RoleEmpleado, resolved.Role)
		assert.Equal(t, int64(2), resolved.Condominium())
	})

	t.Run("store_outage", func(t *testing.T) {
		broken := security.NewSessionAuthenticator(
			security.NewKVSessionStore(unavailableStore{}, time.Hour), h.settings.Session, h.clock.Now)

		_, _, err := broken.Verify(ctx, "abc")
		requireKind(t, err, security.KindInternal)
		assert.ErrorIs(t, err, kv.ErrUnavailable)
	})
}

/*
TestKVSessionStore_Destroy verifies logout removes the record.
*/
func TestKVSessionStore_Destroy(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)
	id, _ := h.login(t, principalOf("1", sec.RoleAdmin, 0))

	require.NoError(t, h.pipeline.Sessions().Destroy(ctx, id))

	_, err := h.pipeline.Sessions().Get(ctx, id)
	assert.ErrorIs(t, err, security.ErrSessionNotFound)
}

/*
TestSessionAuthenticator_Inspect leaves the stored session untouched.
*/
func TestSessionAuthenticator_Inspect(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)
	authenticator := newSessionAuthenticator(h)
	sessionID, _ := h.login(t, principalOf("12", sec.RoleResidente, 3))

	before, err := h.pipeline.Sessions().Get(ctx, sessionID)
	require.NoError(t, err)

	h.clock.Advance(301 * time.Second)

	principal, session, err := authenticator.Inspect(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, "12", principal.ID)
	assert.Equal(t, sessionID, session.ID)

	after, err := h.pipeline.Sessions().Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, before.LastActivity, after.LastActivity)
	assert.Equal(t, before.LastRegeneration, after.LastRegeneration)

	// Expired sessions are reported but not destroyed.
	h.clock.Advance(h.settings.Session.Lifetime)
	_, _, err = authenticator.Inspect(ctx, sessionID)
	requireKind(t, err, security.KindSessionExpired)

	_, err = h.pipeline.Sessions().Get(ctx, sessionID)
	assert.NoError(t, err)
}
