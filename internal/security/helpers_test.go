// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package security_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/condominio/condoadmin/internal/platform/kv"
	"github.com/condominio/condoadmin/internal/platform/sec"
	"github.com/condominio/condoadmin/internal/security"
)

const testSecret = "test-secret-with-enough-entropy-0123456789"

// fakeClock is a manually advanced time source shared by the store and
// every component under test.
type fakeClock struct {
	mu      sync.Mutex
	current time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (clock *fakeClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.current
}

func (clock *fakeClock) Advance(duration time.Duration) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.current = clock.current.Add(duration)
}

// spyRecorder counts pipeline outcomes.
type spyRecorder struct {
	mu        sync.Mutex
	decisions map[string]int
	failOpen  map[string]int
}

func newSpyRecorder() *spyRecorder {
	return &spyRecorder{decisions: map[string]int{}, failOpen: map[string]int{}}
}

func (recorder *spyRecorder) RecordDecision(stage, outcome string) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.decisions[stage+"/"+outcome]++
}

func (recorder *spyRecorder) RecordFailOpen(bucket string) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.failOpen[bucket]++
}

func (recorder *spyRecorder) decision(stage, outcome string) int {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return recorder.decisions[stage+"/"+outcome]
}

// unavailableStore fails every operation like a Redis outage would.
type unavailableStore struct{}

func (unavailableStore) Get(context.Context, string) ([]byte, error) { return nil, kv.ErrUnavailable }
func (unavailableStore) Set(context.Context, string, []byte, time.Duration) error {
	return kv.ErrUnavailable
}
func (unavailableStore) Delete(context.Context, ...string) error      { return kv.ErrUnavailable }
func (unavailableStore) Take(context.Context, string) ([]byte, error) { return nil, kv.ErrUnavailable }
func (unavailableStore) Rename(context.Context, string, string) error { return kv.ErrUnavailable }
func (unavailableStore) Ping(context.Context) error                   { return kv.ErrUnavailable }

type harness struct {
	pipeline *security.Pipeline
	store    *kv.MemoryStore
	clock    *fakeClock
	recorder *spyRecorder
	settings security.Settings
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSettings() security.Settings {
	settings := security.DefaultSettings()
	settings.Token.Secret = testSecret
	return settings
}

// newHarness builds a pipeline over an in-memory store. mutate may adjust
// the default settings first.
func newHarness(t *testing.T, mutate func(*security.Settings)) *harness {
	t.Helper()

	settings := testSettings()
	if mutate != nil {
		mutate(&settings)
	}

	clock := newFakeClock()
	store, err := kv.NewMemoryStore(1024)
	require.NoError(t, err)
	store.WithClock(clock.Now)

	recorder := newSpyRecorder()
	pipeline, err := security.NewPipeline(settings, store, discardLogger(), recorder, clock.Now)
	require.NoError(t, err)

	return &harness{pipeline: pipeline, store: store, clock: clock, recorder: recorder, settings: settings}
}

func principalOf(id string, role sec.Role, condominium int64) *sec.Principal {
	principal := &sec.Principal{ID: id, Role: role, DisplayName: "Test " + id}
	if condominium > 0 {
		principal.CondominiumID = &condominium
	}
	return principal
}

// login creates a session for principal and returns its id and scope.
func (h *harness) login(t *testing.T, principal *sec.Principal) (string, string) {
	t.Helper()

	session := security.NewSession(principal, h.clock.Now())
	id, err := h.pipeline.Sessions().Create(context.Background(), session)
	require.NoError(t, err)
	return id, session.Scope
}

func (h *harness) issueToken(t *testing.T, principal *sec.Principal, ttl time.Duration) string {
	t.Helper()

	issuer, err := sec.NewTokenIssuer(testSecret, "condoadmin")
	require.NoError(t, err)
	token, err := issuer.WithClock(h.clock.Now).Issue(principal, ttl)
	require.NoError(t, err)
	return token
}

func requireKind(t *testing.T, err error, kind security.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, security.KindOf(err), "unexpected failure: %v", err)
}
