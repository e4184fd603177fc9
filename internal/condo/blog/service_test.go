// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package blog_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condominio/condoadmin/internal/condo/blog"
	"github.com/condominio/condoadmin/internal/condo/condotest"
	"github.com/condominio/condoadmin/internal/platform/apperr"
	"github.com/condominio/condoadmin/internal/platform/sec"
	"github.com/condominio/condoadmin/internal/security"
)

type fakeRepository struct {
	nextID     int64
	posts      map[int64]*blog.Post
	lastFilter blog.Filter
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		nextID: 10,
		posts: map[int64]*blog.Post{
			1: {ID: 1, CondominioID: 3, AutorID: 1, Titulo: "Corte de agua", Slug: "corte-de-agua", Audiencia: blog.AudienceAll, Publicado: true},
			2: {ID: 2, CondominioID: 3, AutorID: 1, Titulo: "Asamblea", Slug: "asamblea", Audiencia: blog.AudienceResidents, Publicado: true},
			3: {ID: 3, CondominioID: 3, AutorID: 1, Titulo: "Turnos", Slug: "turnos", Audiencia: blog.AudienceStaff, Publicado: true},
			4: {ID: 4, CondominioID: 3, AutorID: 1, Titulo: "Borrador", Slug: "borrador", Audiencia: blog.AudienceAll},
		},
	}
}

func (repository *fakeRepository) ListPosts(_ context.Context, scope security.Predicate, f blog.Filter, _, _ int) ([]*blog.Post, int, error) {
	repository.lastFilter = f
	out := make([]*blog.Post, 0)
	for _, post := range repository.posts {
		if len(scope.Args) == 1 && post.CondominioID != scope.Args[0].(int64) {
			continue
		}
		if f.OnlyPublished && !post.Publicado {
			continue
		}
		if f.Audiences != nil && !contains(f.Audiences, post.Audiencia) {
			continue
		}
		out = append(out, post)
	}
	return out, len(out), nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func (repository *fakeRepository) GetPost(_ context.Context, id int64) (*blog.Post, error) {
	post, ok := repository.posts[id]
	if !ok {
		return nil, apperr.NotFound("Post")
	}
	copied := *post
	return &copied, nil
}

func (repository *fakeRepository) CreatePost(_ context.Context, post *blog.Post) error {
	repository.nextID++
	post.ID = repository.nextID
	stored := *post
	repository.posts[post.ID] = &stored
	return nil
}

func (repository *fakeRepository) UpdatePost(_ context.Context, post *blog.Post) error {
	stored := *post
	repository.posts[post.ID] = &stored
	return nil
}

func (repository *fakeRepository) DeletePost(_ context.Context, id int64) error {
	delete(repository.posts, id)
	return nil
}

/*
TestService_AudienceVisibility shows each role only the published posts addressed to it.
*/
func TestService_AudienceVisibility(t *testing.T) {
	env := condotest.NewEnv(t)
	repository := newFakeRepository()
	service := blog.NewService(repository, env.Pipeline, condotest.Logger())
	ctx := context.Background()

	tests := []struct {
		name    string
		role    sec.Role
		visible []string
	}{
		{"admin_sees_everything", sec.RoleAdmin, []string{"asamblea", "borrador", "corte-de-agua", "turnos"}},
		{"resident", sec.RoleResidente, []string{"asamblea", "corte-de-agua"}},
		{"employee", sec.RoleEmpleado, []string{"corte-de-agua", "turnos"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal := condotest.Principal("9", tt.role, 3)
			posts, _, err := service.ListPosts(ctx, principal, blog.Filter{}, 20, 0)
			require.NoError(t, err)

			slugs := make([]string, 0, len(posts))
			for _, post := range posts {
				slugs = append(slugs, post.Slug)
			}
			assert.ElementsMatch(t, tt.visible, slugs)
		})
	}

	// Direct reads follow the same rule
	_, err := service.GetPost(ctx, condotest.Principal("8", sec.RoleEmpleado, 3), 2)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)

	_, err = service.GetPost(ctx, condotest.Principal("7", sec.RoleResidente, 3), 4)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)

	post, err := service.GetPost(ctx, condotest.Principal("7", sec.RoleResidente, 3), 2)
	require.NoError(t, err)
	assert.Equal(t, "Asamblea", post.Titulo)
}

/*
TestService_CreatePost derives slug, author and audience.
*/
func TestService_CreatePost(t *testing.T) {
	env := condotest.NewEnv(t)
	repository := newFakeRepository()
	service := blog.NewService(repository, env.Pipeline, condotest.Logger())
	ctx := context.Background()
	resident := condotest.Principal("7", sec.RoleResidente, 3)

	post := &blog.Post{Titulo: "Fumigación del Jardín", Contenido: "El sábado a las 9."}
	require.NoError(t, service.CreatePost(ctx, resident, post))
	assert.Equal(t, "fumigacion-del-jardin", post.Slug)
	assert.Equal(t, int64(7), post.AutorID)
	assert.Equal(t, int64(3), post.CondominioID)
	assert.Equal(t, blog.AudienceAll, post.Audiencia)

	err := service.CreatePost(ctx, resident, &blog.Post{Titulo: "Aviso", Contenido: "x", Audiencia: "VECINOS"})
	require.Error(t, err)
	assert.Equal(t, blog.FieldAudiencia, apperr.As(err).Details[0].Field)

	err = service.CreatePost(ctx, condotest.Principal("8", sec.RoleEmpleado, 3), &blog.Post{Titulo: "Aviso", Contenido: "x"})
	assert.Equal(t, security.KindInsufficientRole, security.KindOf(err))

	// Updates keep the original author
	update := &blog.Post{Titulo: "Fumigación", Contenido: "Pospuesta", Publicado: true}
	require.NoError(t, service.UpdatePost(ctx, condotest.Principal("1", sec.RoleAdmin, 0), post.ID, update))
	assert.Equal(t, int64(7), update.AutorID)
	assert.Equal(t, "fumigacion", update.Slug)
}

/*
TestHandler_Create publishes through the guarded router.
*/
func TestHandler_Create(t *testing.T) {
	env := condotest.NewEnv(t)
	repository := newFakeRepository()
	handler := blog.NewHandler(blog.NewService(repository, env.Pipeline, condotest.Logger()), env.Pipeline.Guard)

	router := chi.NewRouter()
	router.Route("/api/blog", handler.RegisterRoutes)

	resident := env.Login(t, condotest.Principal("7", sec.RoleResidente, 3))
	recorder := resident.Do(t, router, http.MethodPost, "/api/blog", map[string]any{
		"titulo": "Reglamento 2026", "contenido": "Adjunto.", "audiencia": "RESIDENTES", "publicado": true,
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	assert.Equal(t, "reglamento-2026", condotest.Decode(t, recorder)["data"].(map[string]any)["slug"])

	employee := env.Login(t, condotest.Principal("8", sec.RoleEmpleado, 3))
	recorder = employee.Do(t, router, http.MethodGet, "/api/blog", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Len(t, condotest.Decode(t, recorder)["data"], 2)
}
