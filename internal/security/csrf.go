// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package security

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/condominio/condoadmin/internal/platform/constants"
	"github.com/condominio/condoadmin/internal/platform/kv"
	"github.com/condominio/condoadmin/internal/platform/sec"
)

// csrfRecord is the stored token of one (session, action) pair.
type csrfRecord struct {
	Token    string    `json:"token"`
	IssuedAt time.Time `json:"timestamp"`
}

// Descriptor is the JSON rendering of a token for script-driven clients.
type Descriptor struct {
	Token      string `json:"token"`
	FieldName  string `json:"field_name"`
	HeaderName string `json:"header_name"`
}

// CSRFGuard issues and verifies per-session, per-action anti-forgery tokens.
type CSRFGuard struct {
	store    kv.Store
	settings CSRFSettings
	now      func() time.Time
}

// NewCSRFGuard creates a new CSRFGuard.
func NewCSRFGuard(store kv.Store, settings CSRFSettings, now func() time.Time) *CSRFGuard {
	if now == nil {
		now = time.Now
	}
	if settings.TokenBytes < 32 {
		settings.TokenBytes = 32
	}
	return &CSRFGuard{store: store, settings: settings, now: now}
}

// Enabled reports whether verification is active.
func (guard *CSRFGuard) Enabled() bool {
	return guard.settings.Enabled
}

// Applies reports whether a request needs a CSRF token.
func (guard *CSRFGuard) Applies(method, route string) bool {
	if !guard.settings.Enabled || !MutatingMethods[method] {
		return false
	}
	return !matchesPrefix(route, guard.settings.ExcludedRoutes)
}

/*
Issue creates a new token for (scope, action), replacing any previous one.

Description: Expired tokens of other actions in the same scope are swept
on the way.

Parameters:
  - scope: See [CSRFScope]
  - action: Form or operation key; empty means "default"
*/
func (guard *CSRFGuard) Issue(ctx context.Context, scope, action string) (string, error) {
	action = normalizeAction(action)

	token, err := sec.GenerateSecureToken(guard.settings.TokenBytes)
	if err != nil {
		return "", err
	}

	raw, err := json.Marshal(csrfRecord{Token: token, IssuedAt: guard.now()})
	if err != nil {
		return "", err
	}
	if err := guard.store.Set(ctx, csrfKey(scope, action), raw, guard.recordTTL()); err != nil {
		return "", fmt.Errorf("csrf_issue_failed: %w", err)
	}

	if err := guard.sweep(ctx, scope, action); err != nil {
		return "", err
	}

	return token, nil
}

/*
Verify checks a submitted token against the stored one.

Returns:
  - error: CSRF_TOKEN_NOT_FOUND, CSRF_TOKEN_EXPIRED, CSRF_TOKEN_MISMATCH or an internal error
*/
func (guard *CSRFGuard) Verify(ctx context.Context, scope, candidate, action string) error {
	key := csrfKey(scope, normalizeAction(action))

	if err := guard.compare(ctx, key, candidate, true); err != nil {
		return err
	}

	if !guard.settings.RegenerateOnUse {
		return nil
	}

	// Single use: only the verifier that deletes the record wins.
	raw, err := guard.store.Take(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return Fail(KindCSRFNotFound, "CSRF token not found")
	}
	if err != nil {
		return errInternal(err)
	}

	var taken csrfRecord
	if err := json.Unmarshal(raw, &taken); err != nil || !tokensEqual(taken.Token, candidate) {
		return Fail(KindCSRFNotFound, "CSRF token not found")
	}

	return nil
}

// Inspect runs the same checks as [CSRFGuard.Verify] without consuming or
// purging anything. Used by diagnostic reports.
func (guard *CSRFGuard) Inspect(ctx context.Context, scope, candidate, action string) error {
	return guard.compare(ctx, csrfKey(scope, normalizeAction(action)), candidate, false)
}

func (guard *CSRFGuard) compare(ctx context.Context, key, candidate string, purge bool) error {
	record, err := guard.load(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return Fail(KindCSRFNotFound, "CSRF token not found")
	}
	if err != nil {
		return errInternal(err)
	}

	if guard.expired(record) {
		if purge {
			if err := guard.store.Delete(ctx, key); err != nil {
				return errInternal(err)
			}
		}
		return Fail(KindCSRFExpired, "CSRF token expired")
	}

	if !tokensEqual(record.Token, candidate) {
		return Fail(KindCSRFMismatch, "CSRF token mismatch")
	}

	return nil
}

// VerifyReferrer rejects cross-site mutating requests when referrer
// validation is enabled. Origin is preferred over Referer.
func (guard *CSRFGuard) VerifyReferrer(request *http.Request) error {
	if !guard.settings.ValidateReferrer {
		return nil
	}

	source := request.Header.Get(constants.HeaderOrigin)
	if source == "" || source == "null" {
		source = request.Header.Get(constants.HeaderReferer)
	}
	if source == "" {
		return Fail(KindCSRFInvalidReferrer, "Missing request origin")
	}

	parsed, err := url.Parse(source)
	if err != nil || !strings.EqualFold(parsed.Host, request.Host) {
		return Fail(KindCSRFInvalidReferrer, "Cross-site request rejected")
	}

	return nil
}

// Descriptor describes a token for JavaScript clients.
func (guard *CSRFGuard) Descriptor(token string) Descriptor {
	return Descriptor{
		Token:      token,
		FieldName:  constants.CSRFFieldName,
		HeaderName: constants.HeaderCSRFToken,
	}
}

// HiddenField renders the token as a hidden form input.
func HiddenField(token string) string {
	return fmt.Sprintf(`<input type="hidden" name="%s" value="%s">`,
		constants.CSRFFieldName, html.EscapeString(token))
}

// MetaTag renders the token as a meta tag for script access.
func MetaTag(token string) string {
	return fmt.Sprintf(`<meta name="csrf-token" content="%s">`, html.EscapeString(token))
}

// CSRFScope binds tokens to the session, or to the principal for clients
// that authenticate with a bearer token only.
func CSRFScope(session *Session, principal *sec.Principal) string {
	if session != nil && session.Scope != "" {
		return session.Scope
	}
	if principal != nil {
		return principal.RateLimitIdentifier()
	}
	return ""
}

// # Internals

func (guard *CSRFGuard) expired(record csrfRecord) bool {
	return guard.now().Sub(record.IssuedAt) > guard.settings.ExpireTime
}

// recordTTL keeps expired tokens around long enough to report
// CSRF_TOKEN_EXPIRED instead of CSRF_TOKEN_NOT_FOUND.
func (guard *CSRFGuard) recordTTL() time.Duration {
	return 2 * guard.settings.ExpireTime
}

func (guard *CSRFGuard) load(ctx context.Context, key string) (csrfRecord, error) {
	var record csrfRecord

	raw, err := guard.store.Get(ctx, key)
	if err != nil {
		return record, err
	}
	if err := json.Unmarshal(raw, &record); err != nil {
		return record, fmt.Errorf("csrf_decode_failed: %w", err)
	}
	return record, nil
}

// sweep drops expired tokens of the scope and records the live actions.
func (guard *CSRFGuard) sweep(ctx context.Context, scope, issued string) error {
	indexKey := csrfIndexKey(scope)

	var actions []string
	if raw, err := guard.store.Get(ctx, indexKey); err == nil {
		_ = json.Unmarshal(raw, &actions)
	} else if !errors.Is(err, kv.ErrNotFound) {
		return fmt.Errorf("csrf_index_load_failed: %w", err)
	}

	live := []string{issued}
	for _, action := range actions {
		if action == issued || slices.Contains(live, action) {
			continue
		}

		key := csrfKey(scope, action)
		record, err := guard.load(ctx, key)
		switch {
		case errors.Is(err, kv.ErrNotFound):
		case err != nil || guard.expired(record):
			if err := guard.store.Delete(ctx, key); err != nil {
				return fmt.Errorf("csrf_sweep_failed: %w", err)
			}
		default:
			live = append(live, action)
		}
	}

	raw, err := json.Marshal(live)
	if err != nil {
		return err
	}
	if err := guard.store.Set(ctx, indexKey, raw, guard.recordTTL()); err != nil {
		return fmt.Errorf("csrf_index_save_failed: %w", err)
	}
	return nil
}

func tokensEqual(stored, candidate string) bool {
	if candidate == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

func normalizeAction(action string) string {
	if action == "" {
		return constants.DefaultCSRFAction
	}
	return action
}

func csrfKey(scope, action string) string {
	return constants.KVPrefixCSRF + scope + ":" + action
}

func csrfIndexKey(scope string) string {
	return constants.KVPrefixCSRF + scope + "#index"
}

func matchesPrefix(route string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(route, prefix) {
			return true
		}
	}
	return false
}
