package category

import (
	"context"
	"log/slog"

	"github.com/uilove/uilove/internal/platform/constants"
	"github.com/uilove/uilove/internal/platform/validate"
	"github.com/uilove/uilove/pkg/pagination"
	"github.com/uilove/uilove/pkg/slug"
)

// CacheInvalidator matches the platform cache's DeleteMatching. Taxonomy
// titles are embedded in hydrated website payloads, so taxonomy mutations
// invalidate the website cache space too.
type CacheInvalidator interface {
	DeleteMatching(context context.Context, pattern string)
}

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

func (service *Service) ListCategories(context context.Context, filter Filter, params pagination.Params) ([]*Category, int, error) {
	categories, err := service.repo.List(context, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, err
	}

	total, err := service.repo.Count(context, filter)
	if err != nil {
		return nil, 0, err
	}

	return categories, total, nil
}

func (service *Service) GetCategory(context context.Context, categorySlug string, includeInactive bool) (*Category, error) {
	return service.repo.FindBySlug(context, categorySlug, includeInactive)
}

func (service *Service) CreateCategory(context context.Context, entry *Category) error {
	if entry.Slug == "" {
		entry.Slug = slug.From(entry.Title)
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, entry.Title).MaxLen(FieldTitle, entry.Title, 100)
	validator.Slug(FieldSlug, entry.Slug)
	validator.Custom(FieldSortOrder, entry.SortOrder < 0, "Must not be negative")
	if entry.Description != nil {
		validator.MaxLen(FieldDescription, *entry.Description, 1000)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Create(context, entry); err != nil {
		return err
	}

	service.invalidate(context)
	service.logger.Info("category_created", slog.String("slug", entry.Slug))
	return nil
}

func (service *Service) UpdateCategory(context context.Context, categorySlug string, patch *Patch) (*Category, error) {
	existing, err := service.repo.FindBySlug(context, categorySlug, true)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if patch.Title != nil {
		validator.Required(FieldTitle, *patch.Title).MaxLen(FieldTitle, *patch.Title, 100)
	}
	if patch.Slug != nil {
		validator.Slug(FieldSlug, *patch.Slug)
	}
	if patch.SortOrder != nil {
		validator.Custom(FieldSortOrder, *patch.SortOrder < 0, "Must not be negative")
	}
	if patch.Description != nil {
		validator.MaxLen(FieldDescription, *patch.Description, 1000)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, existing.ID, patch); err != nil {
		return nil, err
	}

	service.invalidate(context)
	service.logger.Info("category_updated", slog.Int64("category_id", existing.ID))

	resolvedSlug := categorySlug
	if patch.Slug != nil {
		resolvedSlug = *patch.Slug
	}
	return service.repo.FindBySlug(context, resolvedSlug, true)
}

// DeleteCategory removes a category; junction rows cascade so member
// websites simply lose the tag.
func (service *Service) DeleteCategory(context context.Context, categorySlug string) error {
	existing, err := service.repo.FindBySlug(context, categorySlug, true)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, existing.ID); err != nil {
		return err
	}

	service.invalidate(context)
	service.logger.Warn("category_deleted", slog.String("slug", categorySlug))
	return nil
}

func (service *Service) invalidate(context context.Context) {
	if service.cache == nil {
		return
	}
	service.cache.DeleteMatching(context, constants.CachePatternWebsites)
}
