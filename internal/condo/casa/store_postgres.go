// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package casa

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

const entityName = "Casa"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectColumns = fmt.Sprintf(`%s, %s, %s, %s, %s, %s, %s`,
	schema.CondoCasa.ID, schema.CondoCasa.CondominioID, schema.CondoCasa.CalleID, schema.CondoCasa.Numero,
	schema.CondoCasa.Interior, schema.CondoCasa.CreatedAt, schema.CondoCasa.UpdatedAt,
)

func (repository *PostgresRepository) ListCasas(context context.Context, scope security.Predicate, f Filter, limit, offset int) ([]*Casa, int, error) {
	where := condo.NewWhere(scope).
		AndIf(f.CondominioID > 0, schema.CondoCasa.CondominioID+" = %s", f.CondominioID).
		AndIf(f.CalleID > 0, schema.CondoCasa.CalleID+" = %s", f.CalleID)

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, schema.CondoCasa.Table, where)
	if err := repository.db.QueryRow(context, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, entityName)
	}

	page, args := where.Page(limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s, %s`,
		selectColumns, schema.CondoCasa.Table, where, schema.CondoCasa.CalleID, schema.CondoCasa.Numero) + page

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, entityName)
	}
	defer rows.Close()

	casas := make([]*Casa, 0)
	for rows.Next() {
		c, err := scanCasa(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, entityName)
		}
		casas = append(casas, c)
	}

	return casas, total, dberr.Wrap(rows.Err(), entityName)
}

func (repository *PostgresRepository) GetCasa(context context.Context, id int64) (*Casa, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, schema.CondoCasa.Table, schema.CondoCasa.ID)

	c, err := scanCasa(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, entityName)
	}
	return c, nil
}

func (repository *PostgresRepository) CreateCasa(context context.Context, c *Casa) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.CondoCasa.Table, schema.CondoCasa.CondominioID, schema.CondoCasa.CalleID, schema.CondoCasa.Numero,
		schema.CondoCasa.Interior, schema.CondoCasa.CreatedAt, schema.CondoCasa.UpdatedAt,
		schema.CondoCasa.ID, schema.CondoCasa.CreatedAt, schema.CondoCasa.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, c.CondominioID, c.CalleID, c.Numero, c.Interior).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return dberr.Wrap(err, entityName)
}

func (repository *PostgresRepository) UpdateCasa(context context.Context, c *Casa) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.CondoCasa.Table, schema.CondoCasa.CalleID, schema.CondoCasa.Numero, schema.CondoCasa.Interior,
		schema.CondoCasa.UpdatedAt, schema.CondoCasa.ID, schema.CondoCasa.CreatedAt, schema.CondoCasa.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, c.ID, c.CalleID, c.Numero, c.Interior).Scan(&c.CreatedAt, &c.UpdatedAt)
	return dberr.Wrap(err, entityName)
}

func (repository *PostgresRepository) DeleteCasa(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CondoCasa.Table, schema.CondoCasa.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, entityName)
	}
	if cmd.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, entityName)
	}
	return nil
}

func (repository *PostgresRepository) CalleCondominio(context context.Context, calleID int64) (int64, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.CondoCalle.CondominioID, schema.CondoCalle.Table, schema.CondoCalle.ID)

	var condominioID int64
	err := repository.db.QueryRow(context, query, calleID).Scan(&condominioID)
	return condominioID, dberr.Wrap(err, "Calle")
}

func scanCasa(row pgx.Row) (*Casa, error) {
	c := &Casa{}
	err := row.Scan(&c.ID, &c.CondominioID, &c.CalleID, &c.Numero, &c.Interior, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
