// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package security

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/condominio/condoadmin/internal/platform/apperr"
	"github.com/condominio/condoadmin/internal/platform/constants"
	"github.com/condominio/condoadmin/internal/platform/ctxutil"
	requestutil "github.com/condominio/condoadmin/internal/platform/request"
	"github.com/condominio/condoadmin/internal/platform/respond"
	"github.com/condominio/condoadmin/internal/platform/sec"
)

// # Guard Options

type guardOptions struct {
	roles  []sec.Role
	bucket string
	action string
}

// GuardOption customizes a single route group.
type GuardOption func(*guardOptions)

// RequireRoles restricts the route to the given roles. Route mappings in
// [RoleSettings] win over this list.
func RequireRoles(roles ...sec.Role) GuardOption {
	return func(options *guardOptions) { options.roles = roles }
}

// WithBucket selects the rate limit bucket when no route mapping applies.
func WithBucket(bucket string) GuardOption {
	return func(options *guardOptions) { options.bucket = bucket }
}

// GuardFunc has the shape of [Pipeline.Guard]. Route handlers take one so
// they can be mounted without the whole pipeline.
type GuardFunc func(options ...GuardOption) func(http.Handler) http.Handler

// WithCSRFAction binds the anti-forgery check to a named action.
func WithCSRFAction(action string) GuardOption {
	return func(options *guardOptions) { options.action = action }
}

/*
Guard adapts the pipeline to a chi middleware.

Description: On success the principal, session id, CSRF scope and a logger
tagged with user_id are stored in the request context. A rotated session id
is written back as a cookie, an expired one is cleared.
*/
func (pipeline *Pipeline) Guard(options ...GuardOption) func(http.Handler) http.Handler {
	config := guardOptions{}
	for _, option := range options {
		option(&config)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			securityRequest, err := pipeline.fromHTTP(writer, request, config)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			result, err := pipeline.Execute(request.Context(), securityRequest)
			if err != nil {
				if KindOf(err) == KindSessionExpired {
					ClearSessionCookie(writer, pipeline.settings.Session)
				}
				respond.Error(writer, request, err)
				return
			}

			if result.SessionID != "" && result.SessionID != securityRequest.SessionID {
				SetSessionCookie(writer, pipeline.settings.Session, result.SessionID)
			}
			writeRateLimitHeaders(writer, result.RateLimit)

			ctx := request.Context()
			if result.Principal != nil {
				ctx = ctxutil.WithPrincipal(ctx, result.Principal)
				ctx = ctxutil.WithCSRFScope(ctx, result.CSRFScope)
				ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.String("user_id", result.Principal.ID)))
			}
			if result.SessionID != "" {
				ctx = ctxutil.WithSessionID(ctx, result.SessionID)
			}

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// CheckHTTP runs the soft check against an HTTP request.
func (pipeline *Pipeline) CheckHTTP(writer http.ResponseWriter, request *http.Request, options ...GuardOption) (Report, error) {
	config := guardOptions{}
	for _, option := range options {
		option(&config)
	}

	securityRequest, err := pipeline.fromHTTP(writer, request, config)
	if err != nil {
		return Report{}, err
	}
	return pipeline.Check(request.Context(), securityRequest), nil
}

/*
fromHTTP collects the pipeline input from an HTTP request.

Description: JSON and form bodies are buffered up to
[constants.MaxPayloadBytes] and restored so handlers can decode them again.
The anti-forgery token is taken from the `_token` form field, then the
X-CSRF-TOKEN header, then the `_token` JSON field.
*/
func (pipeline *Pipeline) fromHTTP(writer http.ResponseWriter, request *http.Request, options guardOptions) (Request, error) {
	payload, bodyToken, err := readPayload(writer, request)
	if err != nil {
		return Request{}, err
	}

	securityRequest := Request{
		Method:        request.Method,
		Route:         request.URL.RequestURI(),
		Authorization: request.Header.Get(constants.HeaderAuthorization),
		CSRFAction:    options.action,
		Bucket:        options.bucket,
		ClientIP:      requestutil.ClientIP(request),
		RequiredRoles: options.roles,
		Payload:       payload,
		HTTP:          request,
	}

	if cookie, err := request.Cookie(pipeline.settings.Session.CookieName); err == nil {
		securityRequest.SessionID = cookie.Value
	}

	switch {
	case request.PostForm.Get(constants.CSRFFieldName) != "":
		securityRequest.CSRFToken = request.PostForm.Get(constants.CSRFFieldName)
	case request.Header.Get(constants.HeaderCSRFToken) != "":
		securityRequest.CSRFToken = request.Header.Get(constants.HeaderCSRFToken)
	default:
		securityRequest.CSRFToken = bodyToken
	}

	return securityRequest, nil
}

// readPayload returns the decoded body fields and the JSON `_token` value.
func readPayload(writer http.ResponseWriter, request *http.Request) (map[string]any, string, error) {
	if request.Body == nil || request.Body == http.NoBody {
		return nil, "", nil
	}

	mediaType, _, _ := mime.ParseMediaType(request.Header.Get(constants.HeaderContentType))

	switch {
	case mediaType == constants.ContentTypeJSON:
		raw, err := io.ReadAll(http.MaxBytesReader(writer, request.Body, constants.MaxPayloadBytes))
		if err != nil {
			return nil, "", errPayloadTooLarge(err)
		}
		request.Body = io.NopCloser(bytes.NewReader(raw))

		var payload map[string]any
		if len(bytes.TrimSpace(raw)) == 0 || json.Unmarshal(raw, &payload) != nil {
			// Non-object bodies are the handler's problem.
			return nil, "", nil
		}
		token, _ := payload[constants.CSRFFieldName].(string)
		return payload, token, nil

	case mediaType == constants.ContentTypeForm, strings.HasPrefix(mediaType, constants.ContentTypeMultipart):
		request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxPayloadBytes)
		var err error
		if mediaType == constants.ContentTypeForm {
			err = request.ParseForm()
		} else {
			err = request.ParseMultipartForm(constants.MaxPayloadBytes)
		}
		if err != nil {
			return nil, "", errPayloadTooLarge(err)
		}

		payload := make(map[string]any, len(request.PostForm))
		for field, values := range request.PostForm {
			if len(values) > 0 {
				payload[field] = values[0]
			}
		}
		return payload, "", nil

	default:
		return nil, "", nil
	}
}

func errPayloadTooLarge(cause error) error {
	var maxBytesError *http.MaxBytesError
	if errors.As(cause, &maxBytesError) {
		return apperr.New("PAYLOAD_TOO_LARGE", "Request body too large", http.StatusRequestEntityTooLarge).WithCause(cause)
	}
	return apperr.ValidationError("Malformed request body").WithCause(cause)
}

// # Cookies

// SetSessionCookie writes the session cookie.
func SetSessionCookie(writer http.ResponseWriter, settings SessionSettings, sessionID string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     settings.CookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(settings.Lifetime.Seconds()),
		HttpOnly: true,
		Secure:   settings.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(writer http.ResponseWriter, settings SessionSettings) {
	http.SetCookie(writer, &http.Cookie{
		Name:     settings.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   settings.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func writeRateLimitHeaders(writer http.ResponseWriter, status RateLimitStatus) {
	if status.Limit == 0 {
		return
	}
	header := writer.Header()
	header.Set(constants.HeaderRateLimitLimit, strconv.Itoa(status.Limit))
	header.Set(constants.HeaderRateLimitLeft, strconv.Itoa(status.Remaining))
	header.Set(constants.HeaderRateLimitReset, strconv.FormatInt(status.ResetTime.Unix(), 10))
}
