// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/condominio/condoadmin/internal/platform/apperr"
	"github.com/condominio/condoadmin/internal/platform/kv"
	"github.com/condominio/condoadmin/internal/platform/sec"
	"github.com/condominio/condoadmin/internal/security"
	"github.com/condominio/condoadmin/internal/users/auth"
)

const (
	testSecret   = "auth-test-secret-0123456789abcdef"
	testPassword = "correct horse battery"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// fakeUserRepository keeps accounts in memory keyed by id.
type fakeUserRepository struct {
	mu         sync.Mutex
	users      map[int64]*auth.User
	lastLogins map[int64]time.Time
}

func newFakeUserRepository(users ...*auth.User) *fakeUserRepository {
	repository := &fakeUserRepository{users: map[int64]*auth.User{}, lastLogins: map[int64]time.Time{}}
	for _, user := range users {
		repository.users[user.ID] = user
	}
	return repository
}

func (repository *fakeUserRepository) FindByID(_ context.Context, id int64) (*auth.User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	user, ok := repository.users[id]
	if !ok {
		return nil, apperr.NotFound("Usuario")
	}
	copied := *user
	return &copied, nil
}

func (repository *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, user := range repository.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Usuario")
}

func (repository *fakeUserRepository) TouchLastLogin(_ context.Context, id int64, at time.Time) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.lastLogins[id] = at
	return nil
}

func (repository *fakeUserRepository) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	user, ok := repository.users[id]
	if !ok {
		return apperr.NotFound("Usuario")
	}
	user.PasswordHash = passwordHash
	return nil
}

type fixture struct {
	service  *auth.Service
	pipeline *security.Pipeline
	users    *fakeUserRepository
	settings security.Settings
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newUser(t *testing.T, id int64, email string, role sec.Role, condominium int64) *auth.User {
	t.Helper()

	hash, err := sec.HashPassword(testPassword)
	require.NoError(t, err)

	user := &auth.User{
		ID:           id,
		Email:        email,
		PasswordHash: hash,
		Nombre:       "Usuario " + email,
		Rol:          role,
		Activo:       true,
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}
	if condominium > 0 {
		user.CondominioID = &condominium
	}
	return user
}

// newFixture wires the service to a real pipeline over an in-memory store.
func newFixture(t *testing.T, users ...*auth.User) *fixture {
	t.Helper()
	return newFixtureWith(t, nil, users...)
}

// newFixtureWith lets a test adjust the security settings before wiring.
func newFixtureWith(t *testing.T, mutate func(*security.Settings), users ...*auth.User) *fixture {
	t.Helper()

	clock := func() time.Time { return testNow }

	settings := security.DefaultSettings()
	settings.Token.Secret = testSecret
	if mutate != nil {
		mutate(&settings)
	}

	store, err := kv.NewMemoryStore(256)
	require.NoError(t, err)
	store.WithClock(clock)

	pipeline, err := security.NewPipeline(settings, store, discardLogger(), nil, clock)
	require.NoError(t, err)

	issuer, err := sec.NewTokenIssuer(testSecret, "condoadmin")
	require.NoError(t, err)
	issuer.WithClock(clock)

	repository := newFakeUserRepository(users...)
	service := auth.NewService(repository, pipeline.Sessions(), issuer, settings.Token.TTL, pipeline.Limiter(), discardLogger(), clock)

	return &fixture{service: service, pipeline: pipeline, users: repository, settings: settings}
}
