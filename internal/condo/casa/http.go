// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package casa

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/condominio/condoadmin/internal/platform/request"
	"github.com/condominio/condoadmin/internal/platform/respond"
	"github.com/condominio/condoadmin/internal/platform/sec"
	"github.com/condominio/condoadmin/internal/security"
	"github.com/condominio/condoadmin/pkg/pagination"
)

type Handler struct {
	service *Service
	guard   security.GuardFunc
}

func NewHandler(service *Service, guard security.GuardFunc) *Handler {
	return &Handler{service: service, guard: guard}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Staff and above
	router.Group(func(readRoute chi.Router) {
		readRoute.Use(handler.guard(security.RequireRoles(sec.RoleEmpleado)))

		readRoute.Get("/", handler.listCasas)
		readRoute.Get("/{id}", handler.getCasa)
	})

	// Residents' committee and admins
	router.Group(func(writeRoute chi.Router) {
		writeRoute.Use(handler.guard(security.RequireRoles(sec.RoleAdmin, sec.RoleResidente)))

		writeRoute.Post("/", handler.createCasa)
		writeRoute.Put("/{id}", handler.updateCasa)
		writeRoute.Delete("/{id}", handler.deleteCasa)
	})
}

func (handler *Handler) listCasas(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		CalleID:      requestutil.QueryInt64(request, FieldCalleID),
		CondominioID: requestutil.QueryInt64(request, "condominio_id"),
	}

	casas, total, err := handler.service.ListCasas(request.Context(), requestutil.Principal(request), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, casas, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getCasa(writer http.ResponseWriter, request *http.Request) {
	casaID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	casa, err := handler.service.GetCasa(request.Context(), requestutil.Principal(request), casaID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, casa)
}

func (handler *Handler) createCasa(writer http.ResponseWriter, request *http.Request) {
	var input Casa
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateCasa(request.Context(), requestutil.Principal(request), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateCasa(writer http.ResponseWriter, request *http.Request) {
	casaID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Casa
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateCasa(request.Context(), requestutil.Principal(request), casaID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteCasa(writer http.ResponseWriter, request *http.Request) {
	casaID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCasa(request.Context(), requestutil.Principal(request), casaID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
