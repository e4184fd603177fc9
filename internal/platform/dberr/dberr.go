// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/condominio/condoadmin/internal/platform/apperr"
)

// PostgreSQL SQLSTATE codes that map to client errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// resource names the entity in the client message (e.g. "Casa").
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 2. Constraint violations carry enough meaning to surface as 4xx
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case codeUniqueViolation:
			return apperr.Conflict(resource + " already exists").WithCause(err)
		case codeForeignKeyViolation:
			return apperr.ValidationError(resource+" references a missing record", apperr.FieldError{
				Field:   pgError.ColumnName,
				Message: "Referenced record does not exist",
			}).WithCause(err)
		case codeCheckViolation:
			return apperr.ValidationError(resource + " violates a data constraint").WithCause(err)
		}

		slog.Debug("postgres_error_unmapped",
			slog.String("sqlstate", pgError.Code),
			slog.String("constraint", pgError.ConstraintName),
		)
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}
