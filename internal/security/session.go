// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/condominio/condoadmin/internal/platform/constants"
	"github.com/condominio/condoadmin/internal/platform/kv"
	"github.com/condominio/condoadmin/internal/platform/sec"
)

// sessionIDBytes is the entropy of a session identifier before hex encoding.
const sessionIDBytes = 32

// ErrSessionNotFound is returned by a [SessionStore] for unknown ids.
var ErrSessionNotFound = errors.New("security: session not found")

// # Session Model

// Session is the server-side authentication state behind the session cookie.
type Session struct {
	// ID is the current store key. It changes on rotation.
	ID string `json:"-"`

	// Scope is fixed for the life of the session and survives rotation.
	// CSRF tokens are bound to it.
	Scope string `json:"scope"`

	UserID           string    `json:"user_id"`
	UserType         string    `json:"user_type"`
	Rol              string    `json:"rol,omitempty"`
	CondominioID     *int64    `json:"condominio_id,omitempty"`
	Name             string    `json:"name,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	LastActivity     time.Time `json:"last_activity"`
	LastRegeneration time.Time `json:"last_regeneration"`
}

// NewSession stamps a fresh session for a logged-in principal.
func NewSession(principal *sec.Principal, now time.Time) *Session {
	return &Session{
		UserID:           principal.ID,
		UserType:         principal.Role.String(),
		Rol:              principal.Role.String(),
		CondominioID:     principal.CondominiumID,
		Name:             principal.DisplayName,
		CreatedAt:        now,
		LastActivity:     now,
		LastRegeneration: now,
	}
}

// Principal builds the request principal from the session claims.
func (session *Session) Principal() *sec.Principal {
	return buildPrincipal(session.UserID, session.UserType, session.Rol, session.CondominioID, session.Name)
}

// buildPrincipal normalizes claims shared by sessions and tokens. The
// explicit `rol` claim wins over `user_type`.
func buildPrincipal(userID, userType, rol string, condominiumID *int64, name string) *sec.Principal {
	roleName := rol
	if roleName == "" {
		roleName = userType
	}

	if name == "" {
		name = constants.DefaultDisplayName
	}

	return &sec.Principal{
		ID:            userID,
		Role:          sec.ParseRole(roleName),
		CondominiumID: condominiumID,
		DisplayName:   name,
	}
}

// # Session Store

// SessionStore persists sessions by opaque id.
type SessionStore interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, id string, session *Session) error
	Destroy(ctx context.Context, id string) error

	// Regenerate moves the session to a fresh id and returns it.
	Regenerate(ctx context.Context, id string) (string, error)
}

// KVSessionStore keeps sessions in a [kv.Store] under "session:<id>".
type KVSessionStore struct {
	store kv.Store
	ttl   time.Duration
}

// NewKVSessionStore creates a session store. Records outlive the session
// lifetime so that an expired session is still observable (and destroyed)
// on its next use rather than silently vanishing.
func NewKVSessionStore(store kv.Store, lifetime time.Duration) *KVSessionStore {
	return &KVSessionStore{store: store, ttl: 2 * lifetime}
}

// Create stores a session under a new random id and assigns its scope.
func (repository *KVSessionStore) Create(ctx context.Context, session *Session) (string, error) {
	id, err := sec.GenerateSecureToken(sessionIDBytes)
	if err != nil {
		return "", err
	}

	if session.Scope == "" {
		scope, err := sec.GenerateSecureToken(sessionIDBytes / 2)
		if err != nil {
			return "", err
		}
		session.Scope = scope
	}

	if err := repository.Save(ctx, id, session); err != nil {
		return "", err
	}
	session.ID = id
	return id, nil
}

// Get implements [SessionStore].
func (repository *KVSessionStore) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := repository.store.Get(ctx, sessionKey(id))
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session_get_failed: %w", err)
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("session_decode_failed: %w", err)
	}
	session.ID = id
	if session.Scope == "" {
		session.Scope = id
	}
	return &session, nil
}

// Save implements [SessionStore].
func (repository *KVSessionStore) Save(ctx context.Context, id string, session *Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("session_encode_failed: %w", err)
	}
	if err := repository.store.Set(ctx, sessionKey(id), raw, repository.ttl); err != nil {
		return fmt.Errorf("session_save_failed: %w", err)
	}
	return nil
}

// Destroy implements [SessionStore].
func (repository *KVSessionStore) Destroy(ctx context.Context, id string) error {
	if err := repository.store.Delete(ctx, sessionKey(id)); err != nil {
		return fmt.Errorf("session_destroy_failed: %w", err)
	}
	return nil
}

// Regenerate implements [SessionStore].
func (repository *KVSessionStore) Regenerate(ctx context.Context, id string) (string, error) {
	newID, err := sec.GenerateSecureToken(sessionIDBytes)
	if err != nil {
		return "", err
	}

	err = repository.store.Rename(ctx, sessionKey(id), sessionKey(newID))
	if errors.Is(err, kv.ErrNotFound) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("session_regenerate_failed: %w", err)
	}
	return newID, nil
}

func sessionKey(id string) string {
	return constants.KVPrefixSession + id
}

// # Session Authenticator

// SessionAuthenticator validates the session behind a cookie.
type SessionAuthenticator struct {
	store    SessionStore
	settings SessionSettings
	now      func() time.Time
}

// NewSessionAuthenticator creates a new SessionAuthenticator.
func NewSessionAuthenticator(store SessionStore, settings SessionSettings, now func() time.Time) *SessionAuthenticator {
	if now == nil {
		now = time.Now
	}
	return &SessionAuthenticator{store: store, settings: settings, now: now}
}

/*
Verify loads and validates the session.

Description: Destroys expired sessions. Rotates the id once the regenerate
interval has elapsed and always refreshes the activity stamp.

Returns:
  - *sec.Principal: The principal built from the session claims
  - *Session: The refreshed session; its ID differs from sessionID after rotation
  - error: NO_SESSION, SESSION_EXPIRED or an internal error
*/
func (authenticator *SessionAuthenticator) Verify(ctx context.Context, sessionID string) (*sec.Principal, *Session, error) {
	session, err := authenticator.load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	now := authenticator.now()

	// 1. Idle expiry
	if authenticator.idle(session, now) {
		if err := authenticator.store.Destroy(ctx, sessionID); err != nil {
			return nil, nil, errInternal(err)
		}
		return nil, nil, Fail(KindSessionExpired, "Session expired")
	}

	// 2. Periodic id rotation against fixation
	session.ID = sessionID
	if now.Sub(session.LastRegeneration) > authenticator.settings.RegenerateInterval {
		rotatedID, err := authenticator.store.Regenerate(ctx, sessionID)
		if err != nil {
			return nil, nil, errInternal(err)
		}
		session.ID = rotatedID
		session.LastRegeneration = now
	}

	// 3. Activity refresh
	session.LastActivity = now
	if err := authenticator.store.Save(ctx, session.ID, session); err != nil {
		return nil, nil, errInternal(err)
	}

	return session.Principal(), session, nil
}

// Inspect validates the session without writing to the store. The id is
// never rotated, activity is not refreshed and an expired session is kept.
func (authenticator *SessionAuthenticator) Inspect(ctx context.Context, sessionID string) (*sec.Principal, *Session, error) {
	session, err := authenticator.load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if authenticator.idle(session, authenticator.now()) {
		return nil, nil, Fail(KindSessionExpired, "Session expired")
	}

	session.ID = sessionID
	return session.Principal(), session, nil
}

// load fetches the session and checks its required claims.
func (authenticator *SessionAuthenticator) load(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, Fail(KindNoSession, "No active session")
	}

	session, err := authenticator.store.Get(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, Fail(KindNoSession, "No active session")
	}
	if err != nil {
		return nil, errInternal(err)
	}

	if session.UserID == "" || session.UserType == "" {
		return nil, Fail(KindNoSession, "Session has no authenticated user")
	}
	return session, nil
}

func (authenticator *SessionAuthenticator) idle(session *Session, now time.Time) bool {
	return now.Sub(session.LastActivity) > authenticator.settings.Lifetime
}
