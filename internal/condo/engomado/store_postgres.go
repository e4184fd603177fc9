// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package engomado

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/condominio/condoadmin/internal/condo"
	"github.com/condominio/condoadmin/internal/platform/database/schema"
	"github.com/condominio/condoadmin/internal/platform/dberr"
	"github.com/condominio/condoadmin/internal/security"
)

const entityName = "Engomado"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectColumns = fmt.Sprintf(`%s, %s, %s, %s, %s, %s, %s, %s, %s`,
	schema.CondoEngomado.ID, schema.CondoEngomado.CondominioID, schema.CondoEngomado.CasaID,
	schema.CondoEngomado.Placa, schema.CondoEngomado.Marca, schema.CondoEngomado.Color,
	schema.CondoEngomado.Activo, schema.CondoEngomado.CreatedAt, schema.CondoEngomado.UpdatedAt,
)

func (repository *PostgresRepository) ListEngomados(context context.Context, scope security.Predicate, f Filter, limit, offset int) ([]*Engomado, int, error) {
	where := condo.NewWhere(scope).
		AndIf(f.CondominioID > 0, schema.CondoEngomado.CondominioID+" = %s", f.CondominioID).
		AndIf(f.CasaID > 0, schema.CondoEngomado.CasaID+" = %s", f.CasaID).
		AndIf(f.Placa != "", schema.CondoEngomado.Placa+" LIKE %s", f.Placa+"%")

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, schema.CondoEngomado.Table, where)
	if err := repository.db.QueryRow(context, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, entityName)
	}

	page, args := where.Page(limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s`,
		selectColumns, schema.CondoEngomado.Table, where, schema.CondoEngomado.Placa) + page

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, entityName)
	}
	defer rows.Close()

	engomados := make([]*Engomado, 0)
	for rows.Next() {
		e, err := scanEngomado(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, entityName)
		}
		engomados = append(engomados, e)
	}

	return engomados, total, dberr.Wrap(rows.Err(), entityName)
}

func (repository *PostgresRepository) GetEngomado(context context.Context, id int64) (*Engomado, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, schema.CondoEngomado.Table, schema.CondoEngomado.ID)

	e, err := scanEngomado(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, entityName)
	}
	return e, nil
}

func (repository *PostgresRepository) CreateEngomado(context context.Context, e *Engomado) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.CondoEngomado.Table, schema.CondoEngomado.CondominioID, schema.CondoEngomado.CasaID,
		schema.CondoEngomado.Placa, schema.CondoEngomado.Marca, schema.CondoEngomado.Color,
		schema.CondoEngomado.Activo, schema.CondoEngomado.CreatedAt, schema.CondoEngomado.UpdatedAt,
		schema.CondoEngomado.ID, schema.CondoEngomado.CreatedAt, schema.CondoEngomado.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		e.CondominioID, e.CasaID, e.Placa, e.Marca, e.Color, e.Activo,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	return dberr.Wrap(err, entityName)
}

func (repository *PostgresRepository) UpdateEngomado(context context.Context, e *Engomado) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.CondoEngomado.Table, schema.CondoEngomado.CasaID, schema.CondoEngomado.Placa,
		schema.CondoEngomado.Marca, schema.CondoEngomado.Color, schema.CondoEngomado.Activo,
		schema.CondoEngomado.UpdatedAt, schema.CondoEngomado.ID,
		schema.CondoEngomado.CreatedAt, schema.CondoEngomado.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		e.ID, e.CasaID, e.Placa, e.Marca, e.Color, e.Activo,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	return dberr.Wrap(err, entityName)
}

func (repository *PostgresRepository) DeleteEngomado(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CondoEngomado.Table, schema.CondoEngomado.ID)

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

func scanEngomado(row pgx.Row) (*Engomado, error) {
	e := &Engomado{}
	err := row.Scan(
		&e.ID, &e.CondominioID, &e.CasaID, &e.Placa, &e.Marca,
		&e.Color, &e.Activo, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}
