// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package tag_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condominio/condoadmin/internal/condo/condotest"
	"github.com/condominio/condoadmin/internal/condo/tag"
	"github.com/condominio/condoadmin/internal/platform/apperr"
	"github.com/condominio/condoadmin/internal/platform/sec"
	"github.com/condominio/condoadmin/internal/security"
)

type fakeRepository struct {
	nextID int64
	tags   map[int64]*tag.Tag
	casas  map[int64]int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		nextID: 10,
		tags: map[int64]*tag.Tag{
			1: {ID: 1, CondominioID: 3, CasaID: 1, Codigo: "04A1B2C3", Activo: true},
			2: {ID: 2, CondominioID: 4, CasaID: 5, Codigo: "04A1B2C3", Activo: true},
		},
		casas: map[int64]int64{1: 3, 5: 4},
	}
}

func (repository *fakeRepository) ListTags(_ context.Context, scope security.Predicate, _ tag.Filter, _, _ int) ([]*tag.Tag, int, error) {
	out := make([]*tag.Tag, 0)
	for _, t := range repository.tags {
		if len(scope.Args) == 1 && t.CondominioID != scope.Args[0].(int64) {
			continue
		}
		out = append(out, t)
	}
	return out, len(out), nil
}

func (repository *fakeRepository) GetTag(_ context.Context, id int64) (*tag.Tag, error) {
	t, ok := repository.tags[id]
	if !ok {
		return nil, apperr.NotFound("Tag")
	}
	copied := *t
	return &copied, nil
}

func (repository *fakeRepository) GetTagByCodigo(_ context.Context, condominioID int64, codigo string) (*tag.Tag, error) {
	for _, t := range repository.tags {
		if t.CondominioID == condominioID && t.Codigo == codigo {
			copied := *t
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Tag")
}

func (repository *fakeRepository) CreateTag(_ context.Context, t *tag.Tag) error {
	repository.nextID++
	t.ID = repository.nextID
	stored := *t
	repository.tags[t.ID] = &stored
	return nil
}

func (repository *fakeRepository) UpdateTag(_ context.Context, t *tag.Tag) error {
	stored := *t
	repository.tags[t.ID] = &stored
	return nil
}

func (repository *fakeRepository) DeleteTag(_ context.Context, id int64) error {
	delete(repository.tags, id)
	return nil
}

func (repository *fakeRepository) CasaCondominio(_ context.Context, casaID int64) (int64, error) {
	owner, ok := repository.casas[casaID]
	if !ok {
		return 0, apperr.NotFound("Casa")
	}
	return owner, nil
}

/*
TestNormalizeCode strips reader separators.
*/
func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "04A1B2C3", tag.NormalizeCode(" 04:a1:b2:c3 "))
	assert.Equal(t, "04A1B2C3", tag.NormalizeCode("04-a1-b2-c3"))
}

/*
TestService_CreateTag validates the serial and inherits the owner from the house.
*/
func TestService_CreateTag(t *testing.T) {
	env := condotest.NewEnv(t)
	repository := newFakeRepository()
	service := tag.NewService(repository, env.Pipeline, condotest.Logger())
	ctx := context.Background()
	resident := condotest.Principal("7", sec.RoleResidente, 3)

	created := &tag.Tag{CasaID: 1, Codigo: "de:ad:be:ef:00", Activo: true}
	require.NoError(t, service.CreateTag(ctx, resident, created))
	assert.Equal(t, "DEADBEEF00", created.Codigo)
	assert.Equal(t, int64(3), created.CondominioID)

	err := service.CreateTag(ctx, resident, &tag.Tag{CasaID: 1, Codigo: "not-hex!"})
	require.Error(t, err)
	assert.Equal(t, tag.FieldCodigo, apperr.As(err).Details[0].Field)

	err = service.CreateTag(ctx, resident, &tag.Tag{CasaID: 5, Codigo: "CAFEBABE"})
	assert.Equal(t, security.KindCrossCondominium, security.KindOf(err))
}

/*
TestHandler_FindByCodigo resolves a scanned serial within the caller's condominium.
*/
func TestHandler_FindByCodigo(t *testing.T) {
	env := condotest.NewEnv(t)
	repository := newFakeRepository()
	handler := tag.NewHandler(tag.NewService(repository, env.Pipeline, condotest.Logger()), env.Pipeline.Guard)

	router := chi.NewRouter()
	router.Route("/api/tags", handler.RegisterRoutes)

	guard := env.Login(t, condotest.Principal("8", sec.RoleEmpleado, 3))
	recorder := guard.Do(t, router, http.MethodGet, "/api/tags/codigo/04-a1-b2-c3", nil)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.EqualValues(t, 1, condotest.Decode(t, recorder)["data"].(map[string]any)["id"])

	// Admins have to say which condominium the reader belongs to
	admin := env.Login(t, condotest.Principal("1", sec.RoleAdmin, 0))
	recorder = admin.Do(t, router, http.MethodGet, "/api/tags/codigo/04A1B2C3", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = admin.Do(t, router, http.MethodGet, "/api/tags/codigo/04A1B2C3?condominio_id=4", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.EqualValues(t, 2, condotest.Decode(t, recorder)["data"].(map[string]any)["id"])
}
