// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/condominio/condoadmin/internal/platform/database/schema"
	"github.com/condominio/condoadmin/internal/platform/dberr"
	"github.com/condominio/condoadmin/internal/platform/sec"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var userSelect = fmt.Sprintf(`
	SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
	FROM %s`,
	schema.UserUsuario.ID, schema.UserUsuario.Email, schema.UserUsuario.Password,
	schema.UserUsuario.Nombre, schema.UserUsuario.Rol, schema.UserUsuario.CondominioID,
	schema.UserUsuario.Activo, schema.UserUsuario.LastLoginAt, schema.UserUsuario.CreatedAt,
	schema.UserUsuario.UpdatedAt, schema.UserUsuario.Table,
)

func (repository *PostgresUserRepository) FindByID(context context.Context, id int64) (*User, error) {
	query := userSelect + fmt.Sprintf(` WHERE %s = $1`, schema.UserUsuario.ID)
	return repository.findOne(context, query, id)
}

func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := userSelect + fmt.Sprintf(` WHERE lower(%s) = lower($1)`, schema.UserUsuario.Email)
	return repository.findOne(context, query, email)
}

func (repository *PostgresUserRepository) findOne(context context.Context, query string, argument any) (*User, error) {
	user := &User{}
	var role string

	err := repository.pool.QueryRow(context, query, argument).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Nombre, &role, &user.CondominioID,
		&user.Activo, &user.LastLoginAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Usuario")
	}

	user.Rol = sec.ParseRole(role)
	return user, nil
}

func (repository *PostgresUserRepository) TouchLastLogin(context context.Context, id int64, at time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.UserUsuario.Table, schema.UserUsuario.LastLoginAt, schema.UserUsuario.ID)

	_, err := repository.pool.Exec(context, query, id, at)
	return dberr.Wrap(err, "Usuario")
}

func (repository *PostgresUserRepository) UpdatePassword(context context.Context, id int64, passwordHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.UserUsuario.Table, schema.UserUsuario.Password, schema.UserUsuario.UpdatedAt, schema.UserUsuario.ID)

	command, err := repository.pool.Exec(context, query, id, passwordHash)
	if err != nil {
		return dberr.Wrap(err, "Usuario")
	}
	if command.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Usuario")
	}
	return nil
}
