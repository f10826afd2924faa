package platform

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/uilove/uilove/internal/platform/middleware"
	requestutil "github.com/uilove/uilove/internal/platform/request"
	"github.com/uilove/uilove/internal/platform/respond"
	"github.com/uilove/uilove/internal/platform/sec"
	"github.com/uilove/uilove/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listPlatforms)
	router.Get("/{slug}", handler.getPlatform)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Post("/", handler.createPlatform)
		adminRoute.Patch("/{slug}", handler.updatePlatform)
		adminRoute.Delete("/{slug}", handler.deletePlatform)
	})
}

func (handler *Handler) listPlatforms(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	platforms, total, err := handler.service.ListPlatforms(request.Context(), paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, platforms, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getPlatform(writer http.ResponseWriter, request *http.Request) {
	entry, err := handler.service.GetPlatform(request.Context(), requestutil.Slug(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entry)
}

func (handler *Handler) createPlatform(writer http.ResponseWriter, request *http.Request) {
	var input Platform
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreatePlatform(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updatePlatform(writer http.ResponseWriter, request *http.Request) {
	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdatePlatform(request.Context(), requestutil.Slug(request), &patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deletePlatform(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeletePlatform(request.Context(), requestutil.Slug(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
