// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package blog

import (
	"context"

	"github.com/condominio/condoadmin/internal/security"
)

type Repository interface {
	ListPosts(context context.Context, scope security.Predicate, f Filter, limit, offset int) ([]*Post, int, error)
	GetPost(context context.Context, id int64) (*Post, error)
	CreatePost(context context.Context, post *Post) error
	UpdatePost(context context.Context, post *Post) error
	DeletePost(context context.Context, id int64) error
}
