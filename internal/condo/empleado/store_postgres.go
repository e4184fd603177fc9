// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package empleado

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

const entityName = "Empleado"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectColumns = fmt.Sprintf(`%s, %s, %s, %s, %s, %s, %s, %s, %s`,
	schema.CondoEmpleado.ID, schema.CondoEmpleado.CondominioID, schema.CondoEmpleado.Nombre,
	schema.CondoEmpleado.Puesto, schema.CondoEmpleado.Email, schema.CondoEmpleado.Telefono,
	schema.CondoEmpleado.Activo, schema.CondoEmpleado.CreatedAt, schema.CondoEmpleado.UpdatedAt,
)

// ListEmpleados filters on plaintext columns only; encrypted contact fields
// cannot be searched.
func (repository *PostgresRepository) ListEmpleados(context context.Context, scope security.Predicate, f Filter, limit, offset int) ([]*Empleado, int, error) {
	where := condo.NewWhere(scope).
		AndIf(f.CondominioID > 0, schema.CondoEmpleado.CondominioID+" = %s", f.CondominioID).
		AndIf(f.Query != "", schema.CondoEmpleado.Nombre+" ILIKE %s", "%"+f.Query+"%").
		AndIf(f.Puesto != "", schema.CondoEmpleado.Puesto+" = %s", f.Puesto)

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, schema.CondoEmpleado.Table, where)
	if err := repository.db.QueryRow(context, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, entityName)
	}

	page, args := where.Page(limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s`,
		selectColumns, schema.CondoEmpleado.Table, where, schema.CondoEmpleado.Nombre) + page

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, entityName)
	}
	defer rows.Close()

	empleados := make([]*Empleado, 0)
	for rows.Next() {
		e, err := scanEmpleado(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, entityName)
		}
		empleados = append(empleados, e)
	}

	return empleados, total, dberr.Wrap(rows.Err(), entityName)
}

func (repository *PostgresRepository) GetEmpleado(context context.Context, id int64) (*Empleado, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, schema.CondoEmpleado.Table, schema.CondoEmpleado.ID)

	e, err := scanEmpleado(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, entityName)
	}
	return e, nil
}

func (repository *PostgresRepository) CreateEmpleado(context context.Context, e *Empleado) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.CondoEmpleado.Table, schema.CondoEmpleado.CondominioID, schema.CondoEmpleado.Nombre,
		schema.CondoEmpleado.Puesto, schema.CondoEmpleado.Email, schema.CondoEmpleado.Telefono,
		schema.CondoEmpleado.Activo, schema.CondoEmpleado.CreatedAt, schema.CondoEmpleado.UpdatedAt,
		schema.CondoEmpleado.ID, schema.CondoEmpleado.CreatedAt, schema.CondoEmpleado.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		e.CondominioID, e.Nombre, e.Puesto, e.Email, e.Telefono, e.Activo,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	return dberr.Wrap(err, entityName)
}

func (repository *PostgresRepository) UpdateEmpleado(context context.Context, e *Empleado) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.CondoEmpleado.Table, schema.CondoEmpleado.Nombre, schema.CondoEmpleado.Puesto,
		schema.CondoEmpleado.Email, schema.CondoEmpleado.Telefono, schema.CondoEmpleado.Activo,
		schema.CondoEmpleado.UpdatedAt, schema.CondoEmpleado.ID,
		schema.CondoEmpleado.CreatedAt, schema.CondoEmpleado.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		e.ID, e.Nombre, e.Puesto, e.Email, e.Telefono, e.Activo,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	return dberr.Wrap(err, entityName)
}

func (repository *PostgresRepository) DeleteEmpleado(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CondoEmpleado.Table, schema.CondoEmpleado.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, entityName)
	}
	if cmd.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, entityName)
	}
	return nil
}

func scanEmpleado(row pgx.Row) (*Empleado, error) {
	e := &Empleado{}
	err := row.Scan(
		&e.ID, &e.CondominioID, &e.Nombre, &e.Puesto, &e.Email,
		&e.Telefono, &e.Activo, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}
