// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package auth

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/condominio/condoadmin/internal/platform/apperr"
	"github.com/condominio/condoadmin/internal/platform/constants"
	"github.com/condominio/condoadmin/internal/platform/ctxutil"
	requestutil "github.com/condominio/condoadmin/internal/platform/request"
	"github.com/condominio/condoadmin/internal/platform/respond"
	"github.com/condominio/condoadmin/internal/platform/validate"
	"github.com/condominio/condoadmin/internal/security"
)

// # Definitions & Constructors

// CSRFIssuer mints anti-forgery tokens. [*security.CSRFGuard] satisfies it.
type CSRFIssuer interface {
	Issue(ctx context.Context, scope, action string) (string, error)
	Descriptor(token string) security.Descriptor
}

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
	guard       security.GuardFunc
	csrf        CSRFIssuer
	session     security.SessionSettings
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, guard security.GuardFunc, csrf CSRFIssuer, session security.SessionSettings) *Handler {
	return &Handler{authService: service, guard: guard, csrf: csrf, session: session}
}

// RegisterRoutes mounts the authentication endpoints.
//
// # Endpoints
//   - POST /login           : Opens a session, returns a bearer token.
//   - POST /logout          : Destroys the session.
//   - GET  /me              : Describes the caller.
//   - GET  /csrf-token      : Issues an anti-forgery token.
//   - POST /change-password : Rotates the caller's password.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.With(handler.guard(security.WithBucket(security.BucketLogin))).Post("/login", handler.login)

	router.Group(func(authenticated chi.Router) {
		authenticated.Use(handler.guard())
		authenticated.Post("/logout", handler.logout)
		authenticated.Get("/me", handler.me)
		authenticated.Get("/csrf-token", handler.csrfToken)
	})

	// Needs a token issued for ActionChangePassword, not the login one.
	router.With(handler.guard(security.WithCSRFAction(ActionChangePassword))).Post("/change-password", handler.changePassword)
}

// # Request Payloads

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

/*
Login authenticates credentials and opens a session.

POST /api/auth/login

Response:
  - 200: access_token, token_type, expires_in, csrf_token, bearer_csrf_token, user

Description: csrf_token is bound to the new session and only verifies on
requests that carry the session cookie. bearer_csrf_token is bound to the
user scope and verifies on bearer-only requests.
  - 401: Invalid credentials
  - 429: Too many attempts from this address
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
		ClientIP: requestutil.ClientIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	csrfToken, err := handler.csrf.Issue(request.Context(), result.Scope, constants.DefaultCSRFAction)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	bearerScope := security.CSRFScope(nil, result.User.Principal())
	bearerCSRFToken, err := handler.csrf.Issue(request.Context(), bearerScope, constants.DefaultCSRFAction)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	security.SetSessionCookie(writer, handler.session, result.SessionID)

	respond.OK(writer, map[string]any{
		FieldAccessToken:     result.AccessToken,
		FieldTokenType:       TokenType,
		FieldExpiresIn:       result.ExpiresIn,
		FieldCSRFToken:       csrfToken,
		FieldBearerCSRFToken: bearerCSRFToken,
		FieldUser:            result.User,
	})
}

/*
Logout destroys the current session and clears the cookie.

POST /api/auth/logout

Response:
  - 204: No Content
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if err := handler.authService.Logout(request.Context(), ctxutil.GetSessionID(request.Context())); err != nil {
		respond.Error(writer, request, err)
		return
	}

	security.ClearSessionCookie(writer, handler.session)
	respond.NoContent(writer)
}

/*
Me returns the resolved principal.

GET /api/auth/me
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, principal.Map())
}

/*
CSRFToken issues a token bound to the caller's session.

GET /api/auth/csrf-token?action=&format=json|meta|field

Description: "json" (default) returns the descriptor used by script
clients, "meta" and "field" return ready-to-embed HTML.
*/
func (handler *Handler) csrfToken(writer http.ResponseWriter, request *http.Request) {
	scope := ctxutil.GetCSRFScope(request.Context())
	if scope == "" {
		respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
		return
	}

	format := request.URL.Query().Get("format")
	if format == "" {
		format = FormatJSON
	}

	validator := &validate.Validator{}
	if err := validator.OneOf("format", format, FormatJSON, FormatMeta, FormatField).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.csrf.Issue(request.Context(), scope, request.URL.Query().Get("action"))
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	switch format {
	case FormatMeta:
		respond.HTML(writer, http.StatusOK, security.MetaTag(token))
	case FormatField:
		respond.HTML(writer, http.StatusOK, security.HiddenField(token))
	default:
		respond.OK(writer, handler.csrf.Descriptor(token))
	}
}

/*
ChangePassword rotates the caller's password.

POST /api/auth/change-password

Response:
  - 204: No Content
  - 401: Current password is incorrect
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.authService.ChangePassword(request.Context(), principal, ChangePasswordInput{
		CurrentPassword: input.CurrentPassword,
		NewPassword:     input.NewPassword,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
