// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package engomado_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condominio/condoadmin/internal/condo/condotest"
	"github.com/condominio/condoadmin/internal/condo/engomado"
	"github.com/condominio/condoadmin/internal/platform/apperr"
	"github.com/condominio/condoadmin/internal/platform/sec"
	"github.com/condominio/condoadmin/internal/security"
)

type fakeRepository struct {
	nextID    int64
	engomados map[int64]*engomado.Engomado
	casas     map[int64]int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		engomados: map[int64]*engomado.Engomado{
			1: {ID: 1, CondominioID: 3, CasaID: 1, Placa: "ABC-123", Activo: true},
			2: {ID: 2, CondominioID: 4, CasaID: 5, Placa: "XYZ-987", Activo: true},
		},
		nextID: 10,
		// casa id -> condominium
		casas: map[int64]int64{1: 3, 2: 3, 5: 4},
	}
}

func (repository *fakeRepository) ListEngomados(_ context.Context, scope security.Predicate, f engomado.Filter, _, _ int) ([]*engomado.Engomado, int, error) {
	out := make([]*engomado.Engomado, 0)
	for _, e := range repository.engomados {
		if len(scope.Args) == 1 && e.CondominioID != scope.Args[0].(int64) {
			continue
		}
		if f.Placa != "" && !strings.HasPrefix(e.Placa, f.Placa) {
			continue
		}
		out = append(out, e)
	}
	return out, len(out), nil
}

func (repository *fakeRepository) GetEngomado(_ context.Context, id int64) (*engomado.Engomado, error) {
	e, ok := repository.engomados[id]
	if !ok {
		return nil, apperr.NotFound("Engomado")
	}
	copied := *e
	return &copied, nil
}

func (repository *fakeRepository) CreateEngomado(_ context.Context, e *engomado.Engomado) error {
	repository.nextID++
	e.ID = repository.nextID
	stored := *e
	repository.engomados[e.ID] = &stored
	return nil
}

func (repository *fakeRepository) UpdateEngomado(_ context.Context, e *engomado.Engomado) error {
	stored := *e
	repository.engomados[e.ID] = &stored
	return nil
}

func (repository *fakeRepository) DeleteEngomado(_ context.Context, id int64) error {
	delete(repository.engomados, id)
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
TestService_CreateEngomado normalizes the plate and inherits the house's condominium.
*/
func TestService_CreateEngomado(t *testing.T) {
	env := condotest.NewEnv(t)
	repository := newFakeRepository()
	service := engomado.NewService(repository, env.Pipeline, condotest.Logger())
	ctx := context.Background()
	resident := condotest.Principal("7", sec.RoleResidente, 3)

	e := &engomado.Engomado{CasaID: 2, Placa: " mex 4521 ", Activo: true}
	require.NoError(t, service.CreateEngomado(ctx, resident, e))
	assert.Equal(t, "MEX4521", e.Placa)
	assert.Equal(t, int64(3), e.CondominioID)

	err := service.CreateEngomado(ctx, resident, &engomado.Engomado{CasaID: 5, Placa: "AAA-111"})
	assert.Equal(t, security.KindCrossCondominium, security.KindOf(err))

	err = service.CreateEngomado(ctx, resident, &engomado.Engomado{Placa: "AB"})
	require.Error(t, err)
	assert.Len(t, apperr.As(err).Details, 2)

	// Admins need no condominium of their own; the house decides
	e = &engomado.Engomado{CasaID: 5, Placa: "QRS-222"}
	require.NoError(t, service.CreateEngomado(ctx, condotest.Principal("1", sec.RoleAdmin, 0), e))
	assert.Equal(t, int64(4), e.CondominioID)
}

/*
TestHandler_SearchByPlate matches plate prefixes regardless of case.
*/
func TestHandler_SearchByPlate(t *testing.T) {
	env := condotest.NewEnv(t)
	repository := newFakeRepository()
	handler := engomado.NewHandler(engomado.NewService(repository, env.Pipeline, condotest.Logger()), env.Pipeline.Guard)

	router := chi.NewRouter()
	router.Route("/api/engomados", handler.RegisterRoutes)

	guard := env.Login(t, condotest.Principal("8", sec.RoleEmpleado, 3))

	recorder := guard.Do(t, router, http.MethodGet, "/api/engomados?placa=abc", nil)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	data := condotest.Decode(t, recorder)["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "ABC-123", data[0].(map[string]any)["placa"])

	// Another condominium's sticker is invisible even on an exact match
	recorder = guard.Do(t, router, http.MethodGet, "/api/engomados?placa=XYZ-987", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, condotest.Decode(t, recorder)["data"])
}
