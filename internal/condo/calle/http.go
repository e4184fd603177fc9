// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package calle

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

		readRoute.Get("/", handler.listCalles)
		readRoute.Get("/{id}", handler.getCalle)
	})

	// Residents' committee and admins
	router.Group(func(writeRoute chi.Router) {
		writeRoute.Use(handler.guard(security.RequireRoles(sec.RoleAdmin, sec.RoleResidente)))

		writeRoute.Post("/", handler.createCalle)
		writeRoute.Put("/{id}", handler.updateCalle)
		writeRoute.Delete("/{id}", handler.deleteCalle)
	})
}

func (handler *Handler) listCalles(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query:        request.URL.Query().Get("q"),
		CondominioID: requestutil.QueryInt64(request, "condominio_id"),
	}

	calles, total, err := handler.service.ListCalles(request.Context(), requestutil.Principal(request), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, calles, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getCalle(writer http.ResponseWriter, request *http.Request) {
	calleID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	calle, err := handler.service.GetCalle(request.Context(), requestutil.Principal(request), calleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, calle)
}

func (handler *Handler) createCalle(writer http.ResponseWriter, request *http.Request) {
	var input Calle
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateCalle(request.Context(), requestutil.Principal(request), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateCalle(writer http.ResponseWriter, request *http.Request) {
	calleID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Calle
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateCalle(request.Context(), requestutil.Principal(request), calleID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteCalle(writer http.ResponseWriter, request *http.Request) {
	calleID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCalle(request.Context(), requestutil.Principal(request), calleID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
