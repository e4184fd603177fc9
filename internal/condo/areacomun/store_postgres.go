// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package areacomun

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

const entityName = "Area comun"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectColumns = fmt.Sprintf(`%s, %s, %s, %s, %s, %s, %s, %s, %s, %s`,
	schema.CondoAreaComun.ID, schema.CondoAreaComun.CondominioID, schema.CondoAreaComun.Nombre,
	schema.CondoAreaComun.Descripcion, schema.CondoAreaComun.Capacidad, schema.CondoAreaComun.HoraApertura,
	schema.CondoAreaComun.HoraCierre, schema.CondoAreaComun.Activa, schema.CondoAreaComun.CreatedAt,
	schema.CondoAreaComun.UpdatedAt,
)

func (repository *PostgresRepository) ListAreas(context context.Context, scope security.Predicate, f Filter, limit, offset int) ([]*AreaComun, int, error) {
	where := condo.NewWhere(scope).
		AndIf(f.CondominioID > 0, schema.CondoAreaComun.CondominioID+" = %s", f.CondominioID).
		AndIf(f.Query != "", schema.CondoAreaComun.Nombre+" ILIKE %s", "%"+f.Query+"%").
		AndIf(f.OnlyActive, schema.CondoAreaComun.Activa+" = %s", true)

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, schema.CondoAreaComun.Table, where)
	if err := repository.db.QueryRow(context, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, entityName)
	}

	page, args := where.Page(limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s`,
		selectColumns, schema.CondoAreaComun.Table, where, schema.CondoAreaComun.Nombre) + page

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, entityName)
	}
	defer rows.Close()

	areas := make([]*AreaComun, 0)
	for rows.Next() {
		area, err := scanArea(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, entityName)
		}
		areas = append(areas, area)
	}

	return areas, total, dberr.Wrap(rows.Err(), entityName)
}

func (repository *PostgresRepository) GetArea(context context.Context, id int64) (*AreaComun, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, schema.CondoAreaComun.Table, schema.CondoAreaComun.ID)

	area, err := scanArea(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, entityName)
	}
	return area, nil
}

func (repository *PostgresRepository) CreateArea(context context.Context, area *AreaComun) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.CondoAreaComun.Table, schema.CondoAreaComun.CondominioID, schema.CondoAreaComun.Nombre,
		schema.CondoAreaComun.Descripcion, schema.CondoAreaComun.Capacidad, schema.CondoAreaComun.HoraApertura,
		schema.CondoAreaComun.HoraCierre, schema.CondoAreaComun.Activa, schema.CondoAreaComun.CreatedAt,
		schema.CondoAreaComun.UpdatedAt,
		schema.CondoAreaComun.ID, schema.CondoAreaComun.CreatedAt, schema.CondoAreaComun.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		area.CondominioID, area.Nombre, area.Descripcion, area.Capacidad, area.HoraApertura, area.HoraCierre, area.Activa,
	).Scan(&area.ID, &area.CreatedAt, &area.UpdatedAt)
	return dberr.Wrap(err, entityName)
}

func (repository *PostgresRepository) UpdateArea(context context.Context, area *AreaComun) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.CondoAreaComun.Table, schema.CondoAreaComun.Nombre, schema.CondoAreaComun.Descripcion,
		schema.CondoAreaComun.Capacidad, schema.CondoAreaComun.HoraApertura, schema.CondoAreaComun.HoraCierre,
		schema.CondoAreaComun.Activa, schema.CondoAreaComun.UpdatedAt, schema.CondoAreaComun.ID,
		schema.CondoAreaComun.CreatedAt, schema.CondoAreaComun.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		area.ID, area.Nombre, area.Descripcion, area.Capacidad, area.HoraApertura, area.HoraCierre, area.Activa,
	).Scan(&area.CreatedAt, &area.UpdatedAt)
	return dberr.Wrap(err, entityName)
}

func (repository *PostgresRepository) DeleteArea(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CondoAreaComun.Table, schema.CondoAreaComun.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, entityName)
	}
	if cmd.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, entityName)
	}
	return nil
}

func scanArea(row pgx.Row) (*AreaComun, error) {
	area := &AreaComun{}
	err := row.Scan(
		&area.ID, &area.CondominioID, &area.Nombre, &area.Descripcion, &area.Capacidad,
		&area.HoraApertura, &area.HoraCierre, &area.Activa, &area.CreatedAt, &area.UpdatedAt,
	)
	return area, err
}
