// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package calle

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

const entityName = "Calle"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectColumns = fmt.Sprintf(`%s, %s, %s, %s, %s, %s`,
	schema.CondoCalle.ID, schema.CondoCalle.CondominioID, schema.CondoCalle.Nombre,
	schema.CondoCalle.Descripcion, schema.CondoCalle.CreatedAt, schema.CondoCalle.UpdatedAt,
)

func (repository *PostgresRepository) ListCalles(context context.Context, scope security.Predicate, f Filter, limit, offset int) ([]*Calle, int, error) {
	where := condo.NewWhere(scope).
		AndIf(f.CondominioID > 0, schema.CondoCalle.CondominioID+" = %s", f.CondominioID).
		AndIf(f.Query != "", schema.CondoCalle.Nombre+" ILIKE %s", "%"+f.Query+"%")

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, schema.CondoCalle.Table, where)

	var total int
	if err := repository.db.QueryRow(context, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, entityName)
	}

	page, args := where.Page(limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s ASC`,
		selectColumns, schema.CondoCalle.Table, where, schema.CondoCalle.Nombre) + page

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, entityName)
	}
	defer rows.Close()

	calles := make([]*Calle, 0)
	for rows.Next() {
		c, err := scanCalle(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, entityName)
		}
		calles = append(calles, c)
	}

	return calles, total, dberr.Wrap(rows.Err(), entityName)
}

func (repository *PostgresRepository) GetCalle(context context.Context, id int64) (*Calle, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, schema.CondoCalle.Table, schema.CondoCalle.ID)

	c, err := scanCalle(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, entityName)
	}
	return c, nil
}

func (repository *PostgresRepository) CreateCalle(context context.Context, c *Calle) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.CondoCalle.Table, schema.CondoCalle.CondominioID, schema.CondoCalle.Nombre,
		schema.CondoCalle.Descripcion, schema.CondoCalle.CreatedAt, schema.CondoCalle.UpdatedAt,
		schema.CondoCalle.ID, schema.CondoCalle.CreatedAt, schema.CondoCalle.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, c.CondominioID, c.Nombre, c.Descripcion).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return dberr.Wrap(err, entityName)
}

func (repository *PostgresRepository) UpdateCalle(context context.Context, c *Calle) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.CondoCalle.Table, schema.CondoCalle.Nombre, schema.CondoCalle.Descripcion,
		schema.CondoCalle.UpdatedAt, schema.CondoCalle.ID,
		schema.CondoCalle.CreatedAt, schema.CondoCalle.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, c.ID, c.Nombre, c.Descripcion).Scan(&c.CreatedAt, &c.UpdatedAt)
	return dberr.Wrap(err, entityName)
}

func (repository *PostgresRepository) DeleteCalle(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CondoCalle.Table, schema.CondoCalle.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, entityName)
	}
	if cmd.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, entityName)
	}
	return nil
}

func scanCalle(row pgx.Row) (*Calle, error) {
	c := &Calle{}
	err := row.Scan(&c.ID, &c.CondominioID, &c.Nombre, &c.Descripcion, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
