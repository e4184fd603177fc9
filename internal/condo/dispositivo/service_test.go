// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package dispositivo_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condominio/condoadmin/internal/condo/condotest"
	"github.com/condominio/condoadmin/internal/condo/dispositivo"
	"github.com/condominio/condoadmin/internal/platform/apperr"
	"github.com/condominio/condoadmin/internal/platform/sec"
	"github.com/condominio/condoadmin/internal/security"
	"github.com/condominio/condoadmin/pkg/pointer"
)

type fakeRepository struct {
	nextID       int64
	dispositivos []*dispositivo.Dispositivo
	lastFilter   dispositivo.Filter
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		nextID: 10,
		dispositivos: []*dispositivo.Dispositivo{
			{ID: 1, CondominioID: 3, Nombre: "Lector acceso norte", Tipo: dispositivo.TipoLector, Activo: true},
			{ID: 2, CondominioID: 3, Nombre: "Pluma acceso norte", Tipo: dispositivo.TipoPluma, Activo: true},
			{ID: 3, CondominioID: 4, Nombre: "Camara caseta", Tipo: dispositivo.TipoCamara, Activo: true},
		},
	}
}

func (repository *fakeRepository) ListDispositivos(_ context.Context, f dispositivo.Filter) ([]*dispositivo.Dispositivo, error) {
	repository.lastFilter = f
	out := make([]*dispositivo.Dispositivo, 0, len(repository.dispositivos))
	for _, d := range repository.dispositivos {
		if f.CondominioID > 0 && d.CondominioID != f.CondominioID {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (repository *fakeRepository) GetDispositivo(_ context.Context, id int64) (*dispositivo.Dispositivo, error) {
	for _, d := range repository.dispositivos {
		if d.ID == id {
			copied := *d
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Dispositivo")
}

func (repository *fakeRepository) CreateDispositivo(_ context.Context, d *dispositivo.Dispositivo) error {
	repository.nextID++
	d.ID = repository.nextID
	stored := *d
	repository.dispositivos = append(repository.dispositivos, &stored)
	return nil
}

func (repository *fakeRepository) UpdateDispositivo(_ context.Context, d *dispositivo.Dispositivo) error {
	for i, existing := range repository.dispositivos {
		if existing.ID == d.ID {
			stored := *d
			repository.dispositivos[i] = &stored
		}
	}
	return nil
}

func (repository *fakeRepository) DeleteDispositivo(_ context.Context, id int64) error {
	for i, d := range repository.dispositivos {
		if d.ID == id {
			repository.dispositivos = append(repository.dispositivos[:i], repository.dispositivos[i+1:]...)
			break
		}
	}
	return nil
}

/*
TestService_ListPagesInMemory pages the filtered inventory.
*/
func TestService_ListPagesInMemory(t *testing.T) {
	env := condotest.NewEnv(t)
	service := dispositivo.NewService(newFakeRepository(), env.Pipeline, condotest.Logger())
	ctx := context.Background()
	admin := condotest.Principal("1", sec.RoleAdmin, 0)

	page, total, err := service.ListDispositivos(ctx, admin, dispositivo.Filter{}, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, page, 2)

	page, _, err = service.ListDispositivos(ctx, admin, dispositivo.Filter{}, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, int64(3), page[0].ID)

	page, total, err = service.ListDispositivos(ctx, admin, dispositivo.Filter{}, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, page)

	_, _, err = service.ListDispositivos(ctx, condotest.Principal("7", sec.RoleResidente, 3), dispositivo.Filter{}, 20, 0)
	assert.Equal(t, security.KindInsufficientRole, security.KindOf(err))
}

/*
TestService_CreateDispositivo requires a named condominium and a known type.
*/
func TestService_CreateDispositivo(t *testing.T) {
	env := condotest.NewEnv(t)
	service := dispositivo.NewService(newFakeRepository(), env.Pipeline, condotest.Logger())
	admin := condotest.Principal("1", sec.RoleAdmin, 0)

	err := service.CreateDispositivo(context.Background(), admin, &dispositivo.Dispositivo{Nombre: "Panel", Tipo: dispositivo.TipoPanel})
	require.Error(t, err)
	assert.Equal(t, "condominio_id", apperr.As(err).Details[0].Field)

	err = service.CreateDispositivo(context.Background(), admin, &dispositivo.Dispositivo{CondominioID: 3, Nombre: "Sirena", Tipo: "SIRENA"})
	require.Error(t, err)
	assert.Equal(t, dispositivo.FieldTipo, apperr.As(err).Details[0].Field)

	d := &dispositivo.Dispositivo{CondominioID: 3, Nombre: "Panel caseta", Tipo: dispositivo.TipoPanel, Ubicacion: pointer.To("Caseta principal")}
	require.NoError(t, service.CreateDispositivo(context.Background(), admin, d))
	assert.NotZero(t, d.ID)
}

/*
TestHandler_AdminOnly applies the route default even to reads.
*/
func TestHandler_AdminOnly(t *testing.T) {
	env := condotest.NewEnv(t)
	repository := newFakeRepository()
	handler := dispositivo.NewHandler(dispositivo.NewService(repository, env.Pipeline, condotest.Logger()), env.Pipeline.Guard)

	router := chi.NewRouter()
	router.Route("/api/dispositivos", handler.RegisterRoutes)

	resident := env.Login(t, condotest.Principal("7", sec.RoleResidente, 3))
	recorder := resident.Do(t, router, http.MethodGet, "/api/dispositivos", nil)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, "INSUFFICIENT_ROLE", condotest.Decode(t, recorder)["code"])

	admin := env.Login(t, condotest.Principal("1", sec.RoleAdmin, 0))
	recorder = admin.Do(t, router, http.MethodGet, "/api/dispositivos?tipo=lector,pluma&condominio_id=3", nil)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.Equal(t, []string{"LECTOR", "PLUMA"}, repository.lastFilter.Tipos)
	assert.Equal(t, int64(3), repository.lastFilter.CondominioID)
	assert.Len(t, condotest.Decode(t, recorder)["data"], 2)
}
