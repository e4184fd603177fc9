// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/condominio/condoadmin/internal/platform/apperr"
	"github.com/condominio/condoadmin/internal/platform/sec"
	"github.com/condominio/condoadmin/internal/platform/validate"
	"github.com/condominio/condoadmin/internal/security"
)

// # Contracts & Types

// SessionManager opens and closes server-side sessions.
// [*security.KVSessionStore] satisfies it.
type SessionManager interface {
	Create(ctx context.Context, session *security.Session) (string, error)
	Destroy(ctx context.Context, id string) error
}

// TokenIssuer signs bearer tokens. [*sec.TokenIssuer] satisfies it.
type TokenIssuer interface {
	Issue(principal *sec.Principal, timeToLive time.Duration) (string, error)
}

// AttemptResetter clears a rate limit bucket. [*security.RateLimiter] satisfies it.
type AttemptResetter interface {
	Reset(ctx context.Context, identifier, bucket string) error
}

// errInvalidCredentials is deliberately identical for unknown emails and
// wrong passwords.
func errInvalidCredentials() *apperr.AppError {
	return apperr.Unauthorized("Invalid login credentials")
}

// Service implements sign-in use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing or login
// logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	sessions       SessionManager
	tokens         TokenIssuer
	tokenTTL       time.Duration
	attempts       AttemptResetter
	logger         *slog.Logger
	now            func() time.Time
}

// NewService constructs a new [Service]. A nil clock means time.Now and a
// non-positive tokenTTL means [AccessTokenTTL].
func NewService(
	userRepo UserRepository,
	sessions SessionManager,
	tokens TokenIssuer,
	tokenTTL time.Duration,
	attempts AttemptResetter,
	logger *slog.Logger,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}
	if tokenTTL <= 0 {
		tokenTTL = AccessTokenTTL
	}
	return &Service{
		userRepository: userRepo,
		sessions:       sessions,
		tokens:         tokens,
		tokenTTL:       tokenTTL,
		attempts:       attempts,
		logger:         logger,
		now:            now,
	}
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string

	// ClientIP identifies the login rate limit bucket to clear on success.
	ClientIP string
}

// LoginResult represents a successfully established user session.
type LoginResult struct {
	SessionID   string
	Scope       string
	AccessToken string
	ExpiresIn   int
	User        *User
}

/*
Login validates user credentials and opens a session.

Description: Verifies the password with bcrypt, stores a new session, signs
a bearer token for clients that do not keep cookies and clears the caller's
login attempts.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginResult: Session id, CSRF scope and signed token
  - err: Generic Unauthorized for bad credentials, Forbidden for disabled accounts
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByEmail(context, input.Email)
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.HTTPStatus == http.StatusNotFound {
			return nil, errInvalidCredentials()
		}
		return nil, err
	}

	// Constant-time comparison inside bcrypt
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		service.logger.InfoContext(context, "login_failed", slog.Int64("user_id", user.ID))
		return nil, errInvalidCredentials()
	}

	if !user.Activo {
		return nil, apperr.Forbidden("Account is disabled")
	}

	principal := user.Principal()
	currentTime := service.now()

	session := security.NewSession(principal, currentTime)
	sessionID, err := service.sessions.Create(context, session)
	if err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	accessToken, err := service.tokens.Issue(principal, service.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	if input.ClientIP != "" {
		if err := service.attempts.Reset(context, input.ClientIP, security.BucketLogin); err != nil {
			service.logger.WarnContext(context, "login_attempts_reset_failed", slog.Any("error", err))
		}
	}

	if err := service.userRepository.TouchLastLogin(context, user.ID, currentTime); err != nil {
		service.logger.WarnContext(context, "last_login_update_failed", slog.Any("error", err))
	} else {
		user.LastLoginAt = &currentTime
	}

	service.logger.InfoContext(context, "login_succeeded",
		slog.Int64("user_id", user.ID),
		slog.String("rol", user.Rol.String()),
	)

	return &LoginResult{
		SessionID:   sessionID,
		Scope:       session.Scope,
		AccessToken: accessToken,
		ExpiresIn:   int(service.tokenTTL / time.Second),
		User:        user,
	}, nil
}

// Logout destroys the session. Token-only callers have none, which is not an error.
func (service *Service) Logout(context context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := service.sessions.Destroy(context, sessionID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

// # Account Maintenance

// ChangePasswordInput carries a password rotation request.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

/*
ChangePassword replaces the caller's password after re-checking the current one.

Returns:
  - err: Unauthorized when the current password is wrong, validation errors otherwise
*/
func (service *Service) ChangePassword(context context.Context, principal *sec.Principal, input ChangePasswordInput) error {
	userID, err := strconv.ParseInt(principal.ID, 10, 64)
	if err != nil {
		return apperr.Unauthorized("Account not found")
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldCurrentPassword, input.CurrentPassword).
		Required(FieldNewPassword, input.NewPassword).
		MinLen(FieldNewPassword, input.NewPassword, MinPasswordLength).
		MaxLen(FieldNewPassword, input.NewPassword, MaxPasswordLength).
		Custom(FieldNewPassword, input.NewPassword != "" && input.NewPassword == input.CurrentPassword,
			"Must differ from the current password")
	if err := validator.Err(); err != nil {
		return err
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(input.CurrentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hash, err := sec.HashPassword(input.NewPassword)
	if err != nil {
		return fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, hash); err != nil {
		return err
	}

	service.logger.InfoContext(context, "password_changed", slog.Int64("user_id", userID))
	return nil
}

