// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package blog

import (
	"context"
	"log/slog"

	"github.com/condominio/condoadmin/internal/condo"
	"github.com/condominio/condoadmin/internal/platform/apperr"
	"github.com/condominio/condoadmin/internal/platform/database/schema"
	"github.com/condominio/condoadmin/internal/platform/sec"
	"github.com/condominio/condoadmin/internal/platform/validate"
	"github.com/condominio/condoadmin/internal/security"
	"github.com/condominio/condoadmin/pkg/slug"
)

type Service struct {
	repo       Repository
	authorizer security.Authorizer
	logger     *slog.Logger
}

func NewService(repo Repository, authorizer security.Authorizer, logger *slog.Logger) *Service {
	return &Service{repo: repo, authorizer: authorizer, logger: logger}
}

// ListPosts returns the posts the caller's role may read.
func (service *Service) ListPosts(context context.Context, principal *sec.Principal, filter Filter, limit, offset int) ([]*Post, int, error) {
	if err := condo.Permit(service.authorizer, principal, condo.ActionRead, Resource); err != nil {
		return nil, 0, err
	}

	filter.Audiences = AudiencesFor(principal.Role)
	filter.OnlyPublished = !principal.IsAdmin()

	scope := service.authorizer.Predicate(principal, schema.CondoBlogPost.CondominioID, 1)
	return service.repo.ListPosts(context, scope, filter, limit, offset)
}

func (service *Service) GetPost(context context.Context, principal *sec.Principal, id int64) (*Post, error) {
	if err := condo.Permit(service.authorizer, principal, condo.ActionRead, Resource); err != nil {
		return nil, err
	}

	post, err := service.load(context, principal, id)
	if err != nil {
		return nil, err
	}

	// Drafts and posts for another audience do not exist for this caller.
	if !visibleTo(post, principal) {
		return nil, apperr.NotFound(entityName)
	}
	return post, nil
}

func (service *Service) CreatePost(context context.Context, principal *sec.Principal, post *Post) error {
	if err := condo.Permit(service.authorizer, principal, condo.ActionCreate, Resource); err != nil {
		return err
	}

	owner, err := condo.ResolveOwner(service.authorizer, principal, post.CondominioID)
	if err != nil {
		return err
	}

	authorID, err := sec.ParseUserID(principal.ID)
	if err != nil {
		return apperr.Unauthorized("Authentication required").WithCause(err)
	}

	post.CondominioID = owner
	post.AutorID = authorID
	normalize(post)

	if err := validatePost(post); err != nil {
		return err
	}

	if err := service.repo.CreatePost(context, post); err != nil {
		return err
	}

	service.logger.Info("blog_post_created",
		slog.Int64("post_id", post.ID),
		slog.String("slug", post.Slug),
		slog.Bool("published", post.Publicado),
	)
	return nil
}

func (service *Service) UpdatePost(context context.Context, principal *sec.Principal, id int64, post *Post) error {
	if err := condo.Permit(service.authorizer, principal, condo.ActionUpdate, Resource); err != nil {
		return err
	}

	existing, err := service.load(context, principal, id)
	if err != nil {
		return err
	}

	post.ID = id
	post.CondominioID = existing.CondominioID
	post.AutorID = existing.AutorID
	normalize(post)

	if err := validatePost(post); err != nil {
		return err
	}

	if err := service.repo.UpdatePost(context, post); err != nil {
		return err
	}

	if post.Publicado && !existing.Publicado {
		service.logger.Info("blog_post_published", slog.Int64("post_id", id))
	}
	return nil
}

func (service *Service) DeletePost(context context.Context, principal *sec.Principal, id int64) error {
	if err := condo.Permit(service.authorizer, principal, condo.ActionDelete, Resource); err != nil {
		return err
	}

	if _, err := service.load(context, principal, id); err != nil {
		return err
	}

	if err := service.repo.DeletePost(context, id); err != nil {
		return err
	}

	service.logger.Warn("blog_post_deleted", slog.Int64("post_id", id))
	return nil
}

func (service *Service) load(context context.Context, principal *sec.Principal, id int64) (*Post, error) {
	return condo.Load(service.authorizer, principal,
		func() (*Post, error) { return service.repo.GetPost(context, id) },
		func(post *Post) int64 { return post.CondominioID },
	)
}

func visibleTo(post *Post, principal *sec.Principal) bool {
	audiences := AudiencesFor(principal.Role)
	if audiences == nil {
		return true
	}
	if !post.Publicado {
		return false
	}
	for _, audience := range audiences {
		if post.Audiencia == audience {
			return true
		}
	}
	return false
}

// normalize fills the slug from the title and defaults the audience.
func normalize(post *Post) {
	if post.Slug == "" {
		post.Slug = slug.From(post.Titulo)
	}
	if post.Audiencia == "" {
		post.Audiencia = AudienceAll
	}
}

func validatePost(post *Post) error {
	validator := &validate.Validator{}
	return validator.
		Required(FieldTitulo, post.Titulo).
		MaxLen(FieldTitulo, post.Titulo, 200).
		Slug(FieldSlug, post.Slug).
		MaxLen(FieldSlug, post.Slug, 220).
		Required(FieldContenido, post.Contenido).
		OneOf(FieldAudiencia, post.Audiencia, AudienceAll, AudienceResidents, AudienceStaff).
		Err()
}
