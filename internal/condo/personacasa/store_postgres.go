// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package personacasa

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/condominio/condoadmin/internal/platform/database/schema"
	"github.com/condominio/condoadmin/internal/platform/dberr"
)

const entityName = "Asignacion"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListByCasa(context context.Context, casaID int64) ([]*PersonaCasa, error) {
	query := fmt.Sprintf(`
		SELECT pc.%s, pc.%s, pc.%s, pc.%s, pc.%s, pc.%s, u.%s, u.%s
		FROM %s pc
		JOIN %s u ON u.%s = pc.%s
		WHERE pc.%s = $1
		ORDER BY pc.%s
	`,
		schema.CondoPersonaCasa.ID, schema.CondoPersonaCasa.CondominioID, schema.CondoPersonaCasa.CasaID,
		schema.CondoPersonaCasa.UsuarioID, schema.CondoPersonaCasa.Relacion, schema.CondoPersonaCasa.CreatedAt,
		schema.UserUsuario.Nombre, schema.UserUsuario.Email,
		schema.CondoPersonaCasa.Table,
		schema.UserUsuario.Table, schema.UserUsuario.ID, schema.CondoPersonaCasa.UsuarioID,
		schema.CondoPersonaCasa.CasaID,
		schema.CondoPersonaCasa.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, casaID)
	if err != nil {
		return nil, dberr.Wrap(err, entityName)
	}
	defer rows.Close()

	assignments := make([]*PersonaCasa, 0)
	for rows.Next() {
		a := &PersonaCasa{}
		if err := rows.Scan(&a.ID, &a.CondominioID, &a.CasaID, &a.UsuarioID, &a.Relacion, &a.CreatedAt, &a.Nombre, &a.Email); err != nil {
			return nil, dberr.Wrap(err, entityName)
		}
		assignments = append(assignments, a)
	}

	return assignments, dberr.Wrap(rows.Err(), entityName)
}

func (repository *PostgresRepository) GetAssignment(context context.Context, id int64) (*PersonaCasa, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.CondoPersonaCasa.ID, schema.CondoPersonaCasa.CondominioID, schema.CondoPersonaCasa.CasaID,
		schema.CondoPersonaCasa.UsuarioID, schema.CondoPersonaCasa.Relacion, schema.CondoPersonaCasa.CreatedAt,
		schema.CondoPersonaCasa.Table, schema.CondoPersonaCasa.ID,
	)

	a := &PersonaCasa{}
	err := repository.db.QueryRow(context, query, id).Scan(&a.ID, &a.CondominioID, &a.CasaID, &a.UsuarioID, &a.Relacion, &a.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, entityName)
	}
	return a, nil
}

func (repository *PostgresRepository) CreateAssignment(context context.Context, a *PersonaCasa) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING %s, %s
	`,
		schema.CondoPersonaCasa.Table, schema.CondoPersonaCasa.CondominioID, schema.CondoPersonaCasa.CasaID,
		schema.CondoPersonaCasa.UsuarioID, schema.CondoPersonaCasa.Relacion, schema.CondoPersonaCasa.CreatedAt,
		schema.CondoPersonaCasa.ID, schema.CondoPersonaCasa.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, a.CondominioID, a.CasaID, a.UsuarioID, a.Relacion).Scan(&a.ID, &a.CreatedAt)
	return dberr.Wrap(err, entityName)
}

func (repository *PostgresRepository) DeleteAssignment(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CondoPersonaCasa.Table, schema.CondoPersonaCasa.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, entityName)
	}
	if cmd.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, entityName)
	}
	return nil
}

func (repository *PostgresRepository) CasaCondominio(context context.Context, casaID int64) (int64, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.CondoCasa.CondominioID, schema.CondoCasa.Table, schema.CondoCasa.ID)

	var condominioID int64
	err := repository.db.QueryRow(context, query, casaID).Scan(&condominioID)
	return condominioID, dberr.Wrap(err, "Casa")
}

func (repository *PostgresRepository) UsuarioCondominio(context context.Context, usuarioID int64) (*int64, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.UserUsuario.CondominioID, schema.UserUsuario.Table, schema.UserUsuario.ID)

	var condominioID *int64
	err := repository.db.QueryRow(context, query, usuarioID).Scan(&condominioID)
	return condominioID, dberr.Wrap(err, "Usuario")
}
