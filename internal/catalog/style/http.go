package style

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
	router.Get("/", handler.listStyles)
	router.Get("/{slug}", handler.getStyle)
	router.Get("/{slug}/websites", handler.websitesByStyle)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Post("/", handler.createStyle)
		adminRoute.Patch("/{slug}", handler.updateStyle)
		adminRoute.Delete("/{slug}", handler.deleteStyle)
	})
}

func (handler *Handler) listStyles(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	styles, total, err := handler.service.ListStyles(request.Context(), Filter{}, paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, styles, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getStyle(writer http.ResponseWriter, request *http.Request) {
	entry, err := handler.service.GetStyle(request.Context(), requestutil.Slug(request), false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entry)
}

func (handler *Handler) websitesByStyle(writer http.ResponseWriter, request *http.Request) {
	entry, err := handler.service.GetStyle(request.Context(), requestutil.Slug(request), false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	filter := website.Filter{
		StyleID: pointer.To(entry.ID),
		Sort:    request.URL.Query().Get("sort"),
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
	Style
	IsActive *bool `json:"is_active"`
}

func (handler *Handler) createStyle(writer http.ResponseWriter, request *http.Request) {
	var input createInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.Style.IsActive = pointer.Fallback(input.IsActive, true)

	if err := handler.service.CreateStyle(request.Context(), &input.Style); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input.Style)
}

func (handler *Handler) updateStyle(writer http.ResponseWriter, request *http.Request) {
	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateStyle(request.Context(), requestutil.Slug(request), &patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteStyle(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteStyle(request.Context(), requestutil.Slug(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
