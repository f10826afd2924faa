package category

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

// NewHandler wires the category routes. The website service backs the
// /{slug}/websites browse endpoint.
func NewHandler(service *Service, websites *website.Service) *Handler {
	return &Handler{service: service, websites: websites}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listCategories)
	router.Get("/{slug}", handler.getCategory)
	router.Get("/{slug}/websites", handler.websitesByCategory)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Post("/", handler.createCategory)
		adminRoute.Patch("/{slug}", handler.updateCategory)
		adminRoute.Delete("/{slug}", handler.deleteCategory)
	})
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	categories, total, err := handler.service.ListCategories(request.Context(), Filter{}, paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, categories, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	entry, err := handler.service.GetCategory(request.Context(), requestutil.Slug(request), false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entry)
}

// websitesByCategory lists the active websites tagged with this category.
func (handler *Handler) websitesByCategory(writer http.ResponseWriter, request *http.Request) {
	entry, err := handler.service.GetCategory(request.Context(), requestutil.Slug(request), false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	filter := website.Filter{
		CategoryID: pointer.To(entry.ID),
		Sort:       request.URL.Query().Get("sort"),
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
	Category
	IsActive *bool `json:"is_active"`
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input createInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.Category.IsActive = pointer.Fallback(input.IsActive, true)

	if err := handler.service.CreateCategory(request.Context(), &input.Category); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input.Category)
}

func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateCategory(request.Context(), requestutil.Slug(request), &patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteCategory(request.Context(), requestutil.Slug(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
