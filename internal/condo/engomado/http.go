// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package engomado

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

		readRoute.Get("/", handler.listEngomados)
		readRoute.Get("/{id}", handler.getEngomado)
	})

	// Residents' committee and admins
	router.Group(func(writeRoute chi.Router) {
		writeRoute.Use(handler.guard(security.RequireRoles(sec.RoleAdmin, sec.RoleResidente)))

		writeRoute.Post("/", handler.createEngomado)
		writeRoute.Put("/{id}", handler.updateEngomado)
		writeRoute.Delete("/{id}", handler.deleteEngomado)
	})
}

func (handler *Handler) listEngomados(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		CasaID:       requestutil.QueryInt64(request, FieldCasaID),
		CondominioID: requestutil.QueryInt64(request, "condominio_id"),
		Placa:        request.URL.Query().Get(FieldPlaca),
	}

	engomados, total, err := handler.service.ListEngomados(request.Context(), requestutil.Principal(request), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, engomados, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getEngomado(writer http.ResponseWriter, request *http.Request) {
	engomadoID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	engomado, err := handler.service.GetEngomado(request.Context(), requestutil.Principal(request), engomadoID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, engomado)
}

func (handler *Handler) createEngomado(writer http.ResponseWriter, request *http.Request) {
	input := Engomado{Activo: true}
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateEngomado(request.Context(), requestutil.Principal(request), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateEngomado(writer http.ResponseWriter, request *http.Request) {
	engomadoID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Engomado
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateEngomado(request.Context(), requestutil.Principal(request), engomadoID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteEngomado(writer http.ResponseWriter, request *http.Request) {
	engomadoID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteEngomado(request.Context(), requestutil.Principal(request), engomadoID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
