// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package calle_test

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condominio/condoadmin/internal/condo/calle"
	"github.com/condominio/condoadmin/internal/condo/condotest"
	"github.com/condominio/condoadmin/internal/platform/apperr"
	"github.com/condominio/condoadmin/internal/platform/sec"
	"github.com/condominio/condoadmin/internal/security"
)

// fakeRepository stores streets in memory and records the list scope.
type fakeRepository struct {
	mu        sync.Mutex
	nextID    int64
	calles    map[int64]*calle.Calle
	lastScope security.Predicate
}

func newFakeRepository(seed ...*calle.Calle) *fakeRepository {
	repository := &fakeRepository{calles: map[int64]*calle.Calle{}, nextID: 100}
	for _, c := range seed {
		repository.calles[c.ID] = c
	}
	return repository
}

func (repository *fakeRepository) ListCalles(_ context.Context, scope security.Predicate, f calle.Filter, limit, offset int) ([]*calle.Calle, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.lastScope = scope

	out := make([]*calle.Calle, 0)
	for _, c := range repository.calles {
		if len(scope.Args) == 1 && c.CondominioID != scope.Args[0].(int64) {
			continue
		}
		if scope.Clause == "1 = 0" {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (repository *fakeRepository) GetCalle(_ context.Context, id int64) (*calle.Calle, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	c, ok := repository.calles[id]
	if !ok {
		return nil, apperr.NotFound("Calle")
	}
	copied := *c
	return &copied, nil
}

func (repository *fakeRepository) CreateCalle(_ context.Context, c *calle.Calle) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.nextID++
	c.ID = repository.nextID
	stored := *c
	repository.calles[c.ID] = &stored
	return nil
}

func (repository *fakeRepository) UpdateCalle(_ context.Context, c *calle.Calle) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored := *c
	repository.calles[c.ID] = &stored
	return nil
}

func (repository *fakeRepository) DeleteCalle(_ context.Context, id int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	delete(repository.calles, id)
	return nil
}

func seed() []*calle.Calle {
	return []*calle.Calle{
		{ID: 1, CondominioID: 3, Nombre: "Roble"},
		{ID: 2, CondominioID: 3, Nombre: "Encino"},
		{ID: 3, CondominioID: 4, Nombre: "Pino"},
	}
}

/*
TestService_ListScopesToCondominium passes the ownership predicate to storage.
*/
func TestService_ListScopesToCondominium(t *testing.T) {
	env := condotest.NewEnv(t)
	repository := newFakeRepository(seed()...)
	service := calle.NewService(repository, env.Pipeline, condotest.Logger())
	ctx := context.Background()

	calles, total, err := service.ListCalles(ctx, condotest.Principal("7", sec.RoleEmpleado, 3), calle.Filter{}, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, calles, 2)
	assert.Equal(t, "condominioid = $1", repository.lastScope.Clause)

	_, total, err = service.ListCalles(ctx, condotest.Principal("1", sec.RoleAdmin, 0), calle.Filter{}, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, "1 = 1", repository.lastScope.Clause)
}

/*
TestService_CrossCondominium rejects reads and writes on another condominium's street.
*/
func TestService_CrossCondominium(t *testing.T) {
	env := condotest.NewEnv(t)
	repository := newFakeRepository(seed()...)
	service := calle.NewService(repository, env.Pipeline, condotest.Logger())
	ctx := context.Background()
	resident := condotest.Principal("7", sec.RoleResidente, 3)

	_, err := service.GetCalle(ctx, resident, 3)
	assert.Equal(t, security.KindCrossCondominium, security.KindOf(err))

	err = service.UpdateCalle(ctx, resident, 3, &calle.Calle{Nombre: "Cedro"})
	assert.Equal(t, security.KindCrossCondominium, security.KindOf(err))

	err = service.DeleteCalle(ctx, resident, 3)
	assert.Equal(t, security.KindCrossCondominium, security.KindOf(err))

	stored, err := repository.GetCalle(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Pino", stored.Nombre)
}

/*
TestService_CreateAndUpdate keeps the owner fixed and validates names.
*/
func TestService_CreateAndUpdate(t *testing.T) {
	env := condotest.NewEnv(t)
	repository := newFakeRepository(seed()...)
	service := calle.NewService(repository, env.Pipeline, condotest.Logger())
	ctx := context.Background()
	resident := condotest.Principal("7", sec.RoleResidente, 3)

	created := &calle.Calle{Nombre: "Fresno"}
	require.NoError(t, service.CreateCalle(ctx, resident, created))
	assert.Equal(t, int64(3), created.CondominioID)
	assert.NotZero(t, created.ID)

	update := &calle.Calle{Nombre: "Fresno Norte", CondominioID: 4}
	require.NoError(t, service.UpdateCalle(ctx, resident, created.ID, update))
	assert.Equal(t, int64(3), update.CondominioID)

	err := service.CreateCalle(ctx, resident, &calle.Calle{})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	err = service.CreateCalle(ctx, condotest.Principal("8", sec.RoleEmpleado, 3), &calle.Calle{Nombre: "Olmo"})
	assert.Equal(t, security.KindInsufficientRole, security.KindOf(err))
}

/*
TestHandler_Routes runs the handler behind the real guard.
*/
func TestHandler_Routes(t *testing.T) {
	env := condotest.NewEnv(t)
	repository := newFakeRepository(seed()...)
	handler := calle.NewHandler(calle.NewService(repository, env.Pipeline, condotest.Logger()), env.Pipeline.Guard)

	router := chi.NewRouter()
	router.Route("/api/calles", handler.RegisterRoutes)

	employee := env.Login(t, condotest.Principal("8", sec.RoleEmpleado, 3))
	resident := env.Login(t, condotest.Principal("7", sec.RoleResidente, 3))

	// Reads are open to staff
	recorder := employee.Do(t, router, http.MethodGet, "/api/calles?page=1&limit=10", nil)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	body := condotest.Decode(t, recorder)
	assert.Len(t, body["data"], 2)
	assert.EqualValues(t, 2, body["meta"].(map[string]any)["total"])

	// Writes are not
	recorder = employee.Do(t, router, http.MethodPost, "/api/calles", map[string]any{"nombre": "Olmo"})
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	// Residents write into their own condominium
	recorder = resident.Do(t, router, http.MethodPost, "/api/calles", map[string]any{"nombre": "Olmo"})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	assert.EqualValues(t, 3, condotest.Decode(t, recorder)["data"].(map[string]any)["condominio_id"])

	// The pipeline stops a payload naming a foreign condominium
	recorder = resident.Do(t, router, http.MethodPost, "/api/calles", map[string]any{"nombre": "Olmo", "condominio_id": 4})
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, "CROSS_CONDOMINIUM_ACCESS", condotest.Decode(t, recorder)["code"])

	// The service stops a foreign record addressed by id
	recorder = resident.Do(t, router, http.MethodDelete, "/api/calles/3", nil)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = resident.Do(t, router, http.MethodDelete, "/api/calles/1", nil)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}
