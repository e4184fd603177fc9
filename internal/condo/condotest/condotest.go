// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

// Package condotest provides a real security pipeline and request helpers
// for the entity service and handler tests.
package condotest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/condominio/condoadmin/internal/platform/constants"
	"github.com/condominio/condoadmin/internal/platform/kv"
	"github.com/condominio/condoadmin/internal/platform/sec"
	"github.com/condominio/condoadmin/internal/security"
)

// Env is a pipeline over an in-memory store.
type Env struct {
	Pipeline *security.Pipeline
	Settings security.Settings
}

// Logger discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewEnv builds a pipeline with the default settings.
func NewEnv(t testing.TB) *Env {
	t.Helper()

	settings := security.DefaultSettings()
	settings.Token.Secret = "condotest-secret-0123456789"

	store, err := kv.NewMemoryStore(512)
	require.NoError(t, err)

	pipeline, err := security.NewPipeline(settings, store, Logger(), nil, nil)
	require.NoError(t, err)

	return &Env{Pipeline: pipeline, Settings: settings}
}

// Principal builds a principal; condominium 0 means unassigned.
func Principal(id string, role sec.Role, condominium int64) *sec.Principal {
	principal := &sec.Principal{ID: id, Role: role, DisplayName: "Usuario " + id}
	if condominium > 0 {
		principal.CondominiumID = &condominium
	}
	return principal
}

// Client is a logged-in caller.
type Client struct {
	env    *Env
	cookie *http.Cookie
	scope  string
}

// Login opens a session for principal.
func (env *Env) Login(t testing.TB, principal *sec.Principal) *Client {
	t.Helper()

	session := security.NewSession(principal, env.Pipeline.Now())
	id, err := env.Pipeline.Sessions().Create(context.Background(), session)
	require.NoError(t, err)

	return &Client{
		env:    env,
		cookie: &http.Cookie{Name: env.Settings.Session.CookieName, Value: id},
		scope:  session.Scope,
	}
}

// Do sends a request through router. Mutations carry a fresh CSRF token.
// body is encoded as JSON when not nil.
func (client *Client) Do(t testing.TB, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	}

	request := httptest.NewRequest(method, path, reader)
	request.AddCookie(client.cookie)
	if body != nil {
		request.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	}

	if security.MutatingMethods[method] {
		token, err := client.env.Pipeline.CSRF().Issue(context.Background(), client.scope, "")
		require.NoError(t, err)
		request.Header.Set(constants.HeaderCSRFToken, token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

// Decode unmarshals a response envelope.
func Decode(t testing.TB, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body), recorder.Body.String())
	return body
}
