// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package personacasa

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/condominio/condoadmin/internal/platform/request"
	"github.com/condominio/condoadmin/internal/platform/respond"
	"github.com/condominio/condoadmin/internal/platform/sec"
	"github.com/condominio/condoadmin/internal/security"
)

type Handler struct {
	service *Service
	guard   security.GuardFunc
}

func NewHandler(service *Service, guard security.GuardFunc) *Handler {
	return &Handler{service: service, guard: guard}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.With(handler.guard(security.RequireRoles(sec.RoleEmpleado))).
		Get("/casa/{casaId}", handler.listByCasa)

	router.Group(func(writeRoute chi.Router) {
		writeRoute.Use(handler.guard(security.RequireRoles(sec.RoleAdmin, sec.RoleResidente)))

		writeRoute.Post("/", handler.assign)
		writeRoute.Delete("/{id}", handler.unassign)
	})
}

func (handler *Handler) listByCasa(writer http.ResponseWriter, request *http.Request) {
	casaID, err := requestutil.ID(request, "casaId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	assignments, err := handler.service.ListByCasa(request.Context(), requestutil.Principal(request), casaID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, assignments)
}

func (handler *Handler) assign(writer http.ResponseWriter, request *http.Request) {
	var input PersonaCasa
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Assign(request.Context(), requestutil.Principal(request), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) unassign(writer http.ResponseWriter, request *http.Request) {
	assignmentID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Unassign(request.Context(), requestutil.Principal(request), assignmentID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
