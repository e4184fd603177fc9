// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package blog

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

const entityName = "Post"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectColumns = fmt.Sprintf(`%s, %s, %s, %s, %s, %s, %s, %s, %s, %s`,
	schema.CondoBlogPost.ID, schema.CondoBlogPost.CondominioID, schema.CondoBlogPost.AutorID,
	schema.CondoBlogPost.Titulo, schema.CondoBlogPost.Slug, schema.CondoBlogPost.Contenido,
	schema.CondoBlogPost.Audiencia, schema.CondoBlogPost.Publicado, schema.CondoBlogPost.CreatedAt,
	schema.CondoBlogPost.UpdatedAt,
)

func (repository *PostgresRepository) ListPosts(context context.Context, scope security.Predicate, f Filter, limit, offset int) ([]*Post, int, error) {
	where := condo.NewWhere(scope).
		AndIf(f.CondominioID > 0, schema.CondoBlogPost.CondominioID+" = %s", f.CondominioID).
		AndIf(f.Query != "", schema.CondoBlogPost.Titulo+" ILIKE %s", "%"+f.Query+"%").
		AndIf(len(f.Audiences) > 0, schema.CondoBlogPost.Audiencia+" = ANY(%s)", f.Audiences).
		AndIf(f.OnlyPublished, schema.CondoBlogPost.Publicado+" = %s", true)

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, schema.CondoBlogPost.Table, where)
	if err := repository.db.QueryRow(context, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, entityName)
	}

	page, args := where.Page(limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s DESC`,
		selectColumns, schema.CondoBlogPost.Table, where, schema.CondoBlogPost.CreatedAt) + page

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, entityName)
	}
	defer rows.Close()

	posts := make([]*Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, entityName)
		}
		posts = append(posts, post)
	}

	return posts, total, dberr.Wrap(rows.Err(), entityName)
}

func (repository *PostgresRepository) GetPost(context context.Context, id int64) (*Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, schema.CondoBlogPost.Table, schema.CondoBlogPost.ID)

	post, err := scanPost(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, entityName)
	}
	return post, nil
}

func (repository *PostgresRepository) CreatePost(context context.Context, post *Post) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.CondoBlogPost.Table, schema.CondoBlogPost.CondominioID, schema.CondoBlogPost.AutorID,
		schema.CondoBlogPost.Titulo, schema.CondoBlogPost.Slug, schema.CondoBlogPost.Contenido,
		schema.CondoBlogPost.Audiencia, schema.CondoBlogPost.Publicado, schema.CondoBlogPost.CreatedAt,
		schema.CondoBlogPost.UpdatedAt,
		schema.CondoBlogPost.ID, schema.CondoBlogPost.CreatedAt, schema.CondoBlogPost.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		post.CondominioID, post.AutorID, post.Titulo, post.Slug, post.Contenido, post.Audiencia, post.Publicado,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	return dberr.Wrap(err, entityName)
}

func (repository *PostgresRepository) UpdatePost(context context.Context, post *Post) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.CondoBlogPost.Table, schema.CondoBlogPost.Titulo, schema.CondoBlogPost.Slug,
		schema.CondoBlogPost.Contenido, schema.CondoBlogPost.Audiencia, schema.CondoBlogPost.Publicado,
		schema.CondoBlogPost.UpdatedAt, schema.CondoBlogPost.ID,
		schema.CondoBlogPost.CreatedAt, schema.CondoBlogPost.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		post.ID, post.Titulo, post.Slug, post.Contenido, post.Audiencia, post.Publicado,
	).Scan(&post.CreatedAt, &post.UpdatedAt)
	return dberr.Wrap(err, entityName)
}

func (repository *PostgresRepository) DeletePost(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CondoBlogPost.Table, schema.CondoBlogPost.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, entityName)
	}
	if cmd.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, entityName)
	}
	return nil
}

func scanPost(row pgx.Row) (*Post, error) {
	post := &Post{}
	err := row.Scan(
		&post.ID, &post.CondominioID, &post.AutorID, &post.Titulo, &post.Slug,
		&post.Contenido, &post.Audiencia, &post.Publicado, &post.CreatedAt, &post.UpdatedAt,
	)
	return post, err
}
