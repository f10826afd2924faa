package website

import (
	"context"
	"log/slog"

	"github.com/uilove/uilove/internal/platform/constants"
	"github.com/uilove/uilove/internal/platform/validate"
	"github.com/uilove/uilove/pkg/pagination"
	"github.com/uilove/uilove/pkg/pointer"
	"github.com/uilove/uilove/pkg/slug"
)

// CacheInvalidator is the slice of the cache coordinator the service needs.
//
// A nil invalidator disables invalidation entirely (tests, importer).
type CacheInvalidator interface {
	DeleteMatching(context context.Context, pattern string)
}

// Service implements the website business logic on top of a [Repository].
type Service struct {
	repo   Repository
	cache  CacheInvalidator
	logger *slog.Logger
}

func NewService(repo Repository, cache CacheInvalidator, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// ListWebsites returns one page of websites plus the total count over the
// identical filter, so pagination metadata always matches the page contents.
func (service *Service) ListWebsites(context context.Context, filter Filter, params pagination.Params) ([]*Website, int, error) {
	websites, err := service.repo.List(context, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, err
	}

	total, err := service.repo.Count(context, filter)
	if err != nil {
		return nil, 0, err
	}

	return websites, total, nil
}

// FeaturedWebsites returns up to limit curated highlights, newest first.
func (service *Service) FeaturedWebsites(context context.Context, limit int) ([]*Website, error) {
	return service.repo.List(context, Filter{Featured: pointer.To(true)}, limit, 0)
}

// LatestWebsites returns the most recently added entries.
func (service *Service) LatestWebsites(context context.Context, limit int) ([]*Website, error) {
	return service.repo.List(context, Filter{Sort: SortLatest}, limit, 0)
}

// PopularWebsites returns the most viewed entries.
func (service *Service) PopularWebsites(context context.Context, limit int) ([]*Website, error) {
	return service.repo.List(context, Filter{Sort: SortPopular}, limit, 0)
}

// SearchWebsites runs a case-insensitive substring search over title and
// description, active entries only.
func (service *Service) SearchWebsites(context context.Context, query string, params pagination.Params) ([]*Website, int, error) {
	if query == "" {
		return nil, 0, validate.RequiredError("q", "Search query is required")
	}

	return service.ListWebsites(context, Filter{Query: query}, params)
}

// GetWebsite fetches a single website by slug without side effects.
func (service *Service) GetWebsite(context context.Context, websiteSlug string, includeInactive bool) (*Website, error) {
	return service.repo.FindBySlug(context, websiteSlug, includeInactive)
}

// ViewWebsite fetches a website by slug for a public detail read and bumps
// its view counter.
//
// The increment is best-effort: a failed bump is logged but never turns a
// successful read into an error.
func (service *Service) ViewWebsite(context context.Context, websiteSlug string) (*Website, error) {
	w, err := service.repo.FindBySlug(context, websiteSlug, false)
	if err != nil {
		return nil, err
	}

	if err := service.repo.IncrementViewCount(context, w.ID, 1); err != nil {
		service.logger.Warn("view_count_increment_failed",
			slog.Int64("website_id", w.ID),
			slog.Any("error", err),
		)
	} else {
		w.ViewCount++
	}

	return w, nil
}

// CreateWebsite validates and persists a new entry, then invalidates the
// website cache space.
//
// A missing slug is derived from the title.
func (service *Service) CreateWebsite(context context.Context, w *Website) error {
	if w.Slug == "" {
		w.Slug = slug.From(w.Title)
	}

	if err := service.validateWebsite(w); err != nil {
		return err
	}

	if err := service.repo.Create(context, w); err != nil {
		return err
	}

	service.invalidate(context)
	service.logger.Info("website_created",
		slog.Int64("website_id", w.ID),
		slog.String("slug", w.Slug),
	)

	return nil
}

// UpdateWebsite applies a partial update to the website addressed by slug.
//
// The slug is resolved including inactive entries so admins can edit hidden
// rows. Returns the freshly hydrated entity.
func (service *Service) UpdateWebsite(context context.Context, websiteSlug string, patch *Patch) (*Website, error) {
	existing, err := service.repo.FindBySlug(context, websiteSlug, true)
	if err != nil {
		return nil, err
	}

	if err := service.validatePatch(patch); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, existing.ID, patch); err != nil {
		return nil, err
	}

	service.invalidate(context)
	service.logger.Info("website_updated", slog.Int64("website_id", existing.ID))

	return service.repo.FindByID(context, existing.ID)
}

// DeleteWebsite removes the website addressed by slug permanently.
func (service *Service) DeleteWebsite(context context.Context, websiteSlug string) error {
	existing, err := service.repo.FindBySlug(context, websiteSlug, true)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, existing.ID); err != nil {
		return err
	}

	service.invalidate(context)
	service.logger.Warn("website_deleted",
		slog.Int64("website_id", existing.ID),
		slog.String("slug", websiteSlug),
	)

	return nil
}

// SetWebsiteActive soft-deletes or restores the website addressed by slug.
func (service *Service) SetWebsiteActive(context context.Context, websiteSlug string, active bool) error {
	existing, err := service.repo.FindBySlug(context, websiteSlug, true)
	if err != nil {
		return err
	}

	if err := service.repo.SetActive(context, existing.ID, active); err != nil {
		return err
	}

	service.invalidate(context)
	service.logger.Info("website_active_changed",
		slog.Int64("website_id", existing.ID),
		slog.Bool("active", active),
	)

	return nil
}

// invalidate blows away the whole website cache space after any mutation.
func (service *Service) invalidate(context context.Context) {
	if service.cache == nil {
		return
	}
	service.cache.DeleteMatching(context, constants.CachePatternWebsites)
}

func (service *Service) validateWebsite(w *Website) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, w.Title).MaxLen(FieldTitle, w.Title, 200)
	validator.Slug(FieldSlug, w.Slug)
	validator.Required(FieldOriginalURL, w.OriginalURL).URL(FieldOriginalURL, w.OriginalURL)

	if w.Description != nil {
		validator.MaxLen(FieldDescription, *w.Description, 2000)
	}
	if w.ThumbnailURL != nil {
		validator.URL(FieldThumbnailURL, *w.ThumbnailURL)
	}
	if w.ImageURL != nil {
		validator.URL(FieldImageURL, *w.ImageURL)
	}

	return validator.Err()
}

func (service *Service) validatePatch(patch *Patch) error {
	validator := &validate.Validator{}

	if patch.Title != nil {
		validator.Required(FieldTitle, *patch.Title).MaxLen(FieldTitle, *patch.Title, 200)
	}
	if patch.Slug != nil {
		validator.Slug(FieldSlug, *patch.Slug)
	}
	if patch.OriginalURL != nil {
		validator.URL(FieldOriginalURL, *patch.OriginalURL)
	}
	if patch.Description != nil {
		validator.MaxLen(FieldDescription, *patch.Description, 2000)
	}
	if patch.ThumbnailURL != nil {
		validator.URL(FieldThumbnailURL, *patch.ThumbnailURL)
	}
	if patch.ImageURL != nil {
		validator.URL(FieldImageURL, *patch.ImageURL)
	}

	return validator.Err()
}
