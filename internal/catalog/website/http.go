package website

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/uilove/uilove/internal/platform/constants"
	"github.com/uilove/uilove/internal/platform/middleware"
	requestutil "github.com/uilove/uilove/internal/platform/request"
	"github.com/uilove/uilove/internal/platform/respond"
	"github.com/uilove/uilove/internal/platform/sec"
	"github.com/uilove/uilove/pkg/pagination"
	"github.com/uilove/uilove/pkg/pointer"
)

// defaultShelfLimit is used by the featured/latest/popular shelves when the
// client does not pass an explicit limit.
const defaultShelfLimit = 10

// ResponseCache is the slice of the cache coordinator the handler needs to
// cache successful list responses. A nil cache disables response caching.
type ResponseCache interface {
	Get(context context.Context, key string) ([]byte, bool)
	Set(context context.Context, key string, payload []byte)
}

type Handler struct {
	service *Service
	cache   ResponseCache
}

func NewHandler(service *Service, cache ResponseCache) *Handler {
	return &Handler{service: service, cache: cache}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listWebsites)
	router.Get("/featured", handler.featuredWebsites)
	router.Get("/latest", handler.latestWebsites)
	router.Get("/popular", handler.popularWebsites)
	router.Get("/{slug}", handler.getWebsite)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Post("/", handler.createWebsite)
		adminRoute.Patch("/{slug}", handler.updateWebsite)
		adminRoute.Delete("/{slug}", handler.deleteWebsite)
	})
}

// Search handles GET /search?q=. It lives on the website handler because a
// search is just a filtered website listing.
func (handler *Handler) Search(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	searchQuery := request.URL.Query().Get("q")

	key := constants.CachePrefixWebsites + "search:" + request.URL.RawQuery
	if handler.serveCached(writer, request, key) {
		return
	}

	websites, total, err := handler.service.SearchWebsites(request.Context(), searchQuery, paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.respondCached(writer, request, key, respond.PaginatedEnvelope{
		Data: websites,
		Meta: pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total),
	})
}

func (handler *Handler) listWebsites(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	filter := filterFromQuery(request)

	key := constants.CachePrefixWebsites + "list:" + request.URL.RawQuery
	if handler.serveCached(writer, request, key) {
		return
	}

	websites, total, err := handler.service.ListWebsites(request.Context(), filter, paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.respondCached(writer, request, key, respond.PaginatedEnvelope{
		Data: websites,
		Meta: pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total),
	})
}

func (handler *Handler) featuredWebsites(writer http.ResponseWriter, request *http.Request) {
	handler.shelf(writer, request, "featured", handler.service.FeaturedWebsites)
}

func (handler *Handler) latestWebsites(writer http.ResponseWriter, request *http.Request) {
	handler.shelf(writer, request, "latest", handler.service.LatestWebsites)
}

func (handler *Handler) popularWebsites(writer http.ResponseWriter, request *http.Request) {
	handler.shelf(writer, request, "popular", handler.service.PopularWebsites)
}

// shelf serves the limit-only endpoints (featured, latest, popular), which
// share parsing, caching, and envelope shape.
func (handler *Handler) shelf(writer http.ResponseWriter, request *http.Request, name string, fetch func(context.Context, int) ([]*Website, error)) {
	limit := parseLimit(request)

	key := constants.CachePrefixWebsites + name + ":" + strconv.Itoa(limit)
	if handler.serveCached(writer, request, key) {
		return
	}

	websites, err := fetch(request.Context(), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.respondCached(writer, request, key, respond.SuccessEnvelope{Data: websites})
}

// getWebsite serves the public detail read.
//
// It is deliberately never cached: every successful read must register on
// the view counter.
func (handler *Handler) getWebsite(writer http.ResponseWriter, request *http.Request) {
	w, err := handler.service.ViewWebsite(request.Context(), requestutil.Slug(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, w)
}

// createInput wraps the create payload so an omitted is_active defaults to
// visible, while an explicit false still hides the new entry.
type createInput struct {
	Website
	IsActive *bool `json:"is_active"`
}

func (handler *Handler) createWebsite(writer http.ResponseWriter, request *http.Request) {
	var input createInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.Website.IsActive = pointer.Fallback(input.IsActive, true)

	if err := handler.service.CreateWebsite(request.Context(), &input.Website); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.GetWebsite(request.Context(), input.Website.Slug, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) updateWebsite(writer http.ResponseWriter, request *http.Request) {
	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateWebsite(request.Context(), requestutil.Slug(request), &patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteWebsite(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteWebsite(request.Context(), requestutil.Slug(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Helpers

// serveCached replays a cached payload when present. Returns true on a hit.
func (handler *Handler) serveCached(writer http.ResponseWriter, request *http.Request, key string) bool {
	if handler.cache == nil {
		return false
	}

	payload, ok := handler.cache.Get(request.Context(), key)
	if !ok {
		return false
	}

	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.Header().Set("X-Cache", "HIT")
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write(payload)
	return true
}

// respondCached writes a successful envelope and stores the exact payload
// for subsequent hits.
func (handler *Handler) respondCached(writer http.ResponseWriter, request *http.Request, key string, envelope any) {
	payload, err := json.Marshal(envelope)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if handler.cache != nil {
		handler.cache.Set(request.Context(), key, payload)
	}

	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write(payload)
}

// filterFromQuery parses the public list filters.
func filterFromQuery(request *http.Request) Filter {
	filter := Filter{
		Sort: request.URL.Query().Get("sort"),
	}

	switch request.URL.Query().Get("featured") {
	case "true":
		filter.Featured = pointer.To(true)
	case "false":
		filter.Featured = pointer.To(false)
	}

	if raw := request.URL.Query().Get("platform_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.PlatformID = pointer.To(id)
		}
	}

	return filter
}

// parseLimit reads the shelf "limit" param, clamped to [1, pagination.MaxLimit].
func parseLimit(request *http.Request) int {
	raw := request.URL.Query().Get("limit")
	if raw == "" {
		return defaultShelfLimit
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > pagination.MaxLimit {
		return defaultShelfLimit
	}

	return limit
}
