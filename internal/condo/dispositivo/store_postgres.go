// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package dispositivo

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

const entityName = "Dispositivo"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectColumns = fmt.Sprintf(`%s, %s, %s, %s, %s, %s, %s, %s`,
	schema.CondoDispositivo.ID, schema.CondoDispositivo.CondominioID, schema.CondoDispositivo.Nombre,
	schema.CondoDispositivo.Tipo, schema.CondoDispositivo.Ubicacion, schema.CondoDispositivo.Activo,
	schema.CondoDispositivo.CreatedAt, schema.CondoDispositivo.UpdatedAt,
)

func (repository *PostgresRepository) ListDispositivos(context context.Context, f Filter) ([]*Dispositivo, error) {
	where := condo.NewWhere(security.Predicate{Clause: "1 = 1"}).
		AndIf(f.CondominioID > 0, schema.CondoDispositivo.CondominioID+" = %s", f.CondominioID).
		AndIf(len(f.Tipos) > 0, schema.CondoDispositivo.Tipo+" = ANY(%s)", f.Tipos).
		AndIf(f.OnlyActive, schema.CondoDispositivo.Activo+" = %s", true)

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s, %s`,
		selectColumns, schema.CondoDispositivo.Table, where,
		schema.CondoDispositivo.CondominioID, schema.CondoDispositivo.Nombre)

	rows, err := repository.db.Query(context, query, where.Args()...)
	if err != nil {
		return nil, dberr.Wrap(err, entityName)
	}
	defer rows.Close()

	dispositivos := make([]*Dispositivo, 0)
	for rows.Next() {
		d, err := scanDispositivo(rows)
		if err != nil {
			return nil, dberr.Wrap(err, entityName)
		}
		dispositivos = append(dispositivos, d)
	}

	return dispositivos, dberr.Wrap(rows.Err(), entityName)
}

func (repository *PostgresRepository) GetDispositivo(context context.Context, id int64) (*Dispositivo, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, schema.CondoDispositivo.Table, schema.CondoDispositivo.ID)

	d, err := scanDispositivo(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, entityName)
	}
	return d, nil
}

func (repository *PostgresRepository) CreateDispositivo(context context.Context, d *Dispositivo) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.CondoDispositivo.Table, schema.CondoDispositivo.CondominioID, schema.CondoDispositivo.Nombre,
		schema.CondoDispositivo.Tipo, schema.CondoDispositivo.Ubicacion, schema.CondoDispositivo.Activo,
		schema.CondoDispositivo.CreatedAt, schema.CondoDispositivo.UpdatedAt,
		schema.CondoDispositivo.ID, schema.CondoDispositivo.CreatedAt, schema.CondoDispositivo.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		d.CondominioID, d.Nombre, d.Tipo, d.Ubicacion, d.Activo,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	return dberr.Wrap(err, entityName)
}

func (repository *PostgresRepository) UpdateDispositivo(context context.Context, d *Dispositivo) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.CondoDispositivo.Table, schema.CondoDispositivo.Nombre, schema.CondoDispositivo.Tipo,
		schema.CondoDispositivo.Ubicacion, schema.CondoDispositivo.Activo, schema.CondoDispositivo.UpdatedAt,
		schema.CondoDispositivo.ID, schema.CondoDispositivo.CreatedAt, schema.CondoDispositivo.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		d.ID, d.Nombre, d.Tipo, d.Ubicacion, d.Activo,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	return dberr.Wrap(err, entityName)
}

func (repository *PostgresRepository) DeleteDispositivo(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CondoDispositivo.Table, schema.CondoDispositivo.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, entityName)
	}
	if cmd.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, entityName)
	}
	return nil
}

func scanDispositivo(row pgx.Row) (*Dispositivo, error) {
	d := &Dispositivo{}
	err := row.Scan(&d.ID, &d.CondominioID, &d.Nombre, &d.Tipo, &d.Ubicacion, &d.Activo, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}
