package collection

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/uilove/uilove/internal/catalog/website"
	"github.com/uilove/uilove/internal/platform/middleware"
	requestutil "github.com/uilove/uilove/internal/platform/request"
	"github.com/uilove/uilove/internal/platform/respond"
	"github.com/uilove/uilove/internal/platform/sec"
	"github.com/uilove/uilove/pkg/pagination"
	"github.com/uilove/uilove/pkg/pointer"
)

type Handler struct {
	service  *Service
	websites *website.Service
}

func NewHandler(service *Service, websites *website.Service) *Handler {
	return &Handler{service: service, websites: websites}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listCollections)
	router.Get("/{slug}", handler.getCollection)
	router.Get("/{slug}/websites", handler.websitesByCollection)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Post("/", handler.createCollection)
		adminRoute.Patch("/{slug}", handler.updateCollection)
		adminRoute.Delete("/{slug}", handler.deleteCollection)
	})
}

func (handler *Handler) listCollections(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	collections, total, err := handler.service.ListCollections(request.Context(), Filter{}, paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, collections, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getCollection(writer http.ResponseWriter, request *http.Request) {
	entry, err := handler.service.GetCollection(request.Context(), requestutil.Slug(request), false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entry)
}

func (handler *Handler) websitesByCollection(writer http.ResponseWriter, request *http.Request) {
	entry, err := handler.service.GetCollection(request.Context(), requestutil.Slug(request), false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	filter := website.Filter{
		CollectionID: pointer.To(entry.ID),
		Sort:         request.URL.Query().Get("sort"),
	}

	websites, total, err := handler.websites.ListWebsites(request.Context(), filter, paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, websites, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// createInput wraps the create payload so an omitted is_active defaults to
// visible, while an explicit false still hides the new entry.
type createInput struct {
	Collection
	IsActive *bool `json:"is_active"`
}

func (handler *Handler) createCollection(writer http.ResponseWriter, request *http.Request) {
	var input createInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.Collection.IsActive = pointer.Fallback(input.IsActive, true)

	if err := handler.service.CreateCollection(request.Context(), &input.Collection); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input.Collection)
}

func (handler *Handler) updateCollection(writer http.ResponseWriter, request *http.Request) {
	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateCollection(request.Context(), requestutil.Slug(request), &patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteCollection(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteCollection(request.Context(), requestutil.Slug(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
