// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package tag

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

const entityName = "Tag"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectColumns = fmt.Sprintf(`%s, %s, %s, %s, %s, %s, %s`,
	schema.CondoTag.ID, schema.CondoTag.CondominioID, schema.CondoTag.CasaID, schema.CondoTag.Codigo,
	schema.CondoTag.Activo, schema.CondoTag.CreatedAt, schema.CondoTag.UpdatedAt,
)

func (repository *PostgresRepository) ListTags(context context.Context, scope security.Predicate, f Filter, limit, offset int) ([]*Tag, int, error) {
	where := condo.NewWhere(scope).
		AndIf(f.CondominioID > 0, schema.CondoTag.CondominioID+" = %s", f.CondominioID).
		AndIf(f.CasaID > 0, schema.CondoTag.CasaID+" = %s", f.CasaID).
		AndIf(f.OnlyActive, schema.CondoTag.Activo+" = %s", true)

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, schema.CondoTag.Table, where)
	if err := repository.db.QueryRow(context, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, entityName)
	}

	page, args := where.Page(limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s`,
		selectColumns, schema.CondoTag.Table, where, schema.CondoTag.ID) + page

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, entityName)
	}
	defer rows.Close()

	tags := make([]*Tag, 0)
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, entityName)
		}
		tags = append(tags, t)
	}

	return tags, total, dberr.Wrap(rows.Err(), entityName)
}

func (repository *PostgresRepository) GetTag(context context.Context, id int64) (*Tag, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, schema.CondoTag.Table, schema.CondoTag.ID)

	t, err := scanTag(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, entityName)
	}
	return t, nil
}

func (repository *PostgresRepository) GetTagByCodigo(context context.Context, condominioID int64, codigo string) (*Tag, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		selectColumns, schema.CondoTag.Table, schema.CondoTag.CondominioID, schema.CondoTag.Codigo)

	t, err := scanTag(repository.db.QueryRow(context, query, condominioID, codigo))
	if err != nil {
		return nil, dberr.Wrap(err, entityName)
	}
	return t, nil
}

func (repository *PostgresRepository) CreateTag(context context.Context, t *Tag) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.CondoTag.Table, schema.CondoTag.CondominioID, schema.CondoTag.CasaID, schema.CondoTag.Codigo,
		schema.CondoTag.Activo, schema.CondoTag.CreatedAt, schema.CondoTag.UpdatedAt,
		schema.CondoTag.ID, schema.CondoTag.CreatedAt, schema.CondoTag.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, t.CondominioID, t.CasaID, t.Codigo, t.Activo).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	return dberr.Wrap(err, entityName)
}

func (repository *PostgresRepository) UpdateTag(context context.Context, t *Tag) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.CondoTag.Table, schema.CondoTag.CasaID, schema.CondoTag.Codigo, schema.CondoTag.Activo,
		schema.CondoTag.UpdatedAt, schema.CondoTag.ID, schema.CondoTag.CreatedAt, schema.CondoTag.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, t.ID, t.CasaID, t.Codigo, t.Activo).Scan(&t.CreatedAt, &t.UpdatedAt)
	return dberr.Wrap(err, entityName)
}

func (repository *PostgresRepository) DeleteTag(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CondoTag.Table, schema.CondoTag.ID)

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

func scanTag(row pgx.Row) (*Tag, error) {
	t := &Tag{}
	err := row.Scan(&t.ID, &t.CondominioID, &t.CasaID, &t.Codigo, &t.Activo, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}
