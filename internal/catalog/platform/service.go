package platform

import (
	"context"
	"log/slog"

	"github.com/uilove/uilove/internal/platform/constants"
	"github.com/uilove/uilove/internal/platform/validate"
	"github.com/uilove/uilove/pkg/pagination"
	"github.com/uilove/uilove/pkg/slug"
)

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

func (service *Service) ListPlatforms(context context.Context, params pagination.Params) ([]*Platform, int, error) {
	platforms, err := service.repo.List(context, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, err
	}

	total, err := service.repo.Count(context)
	if err != nil {
		return nil, 0, err
	}

	return platforms, total, nil
}

func (service *Service) GetPlatform(context context.Context, platformSlug string) (*Platform, error) {
	return service.repo.FindBySlug(context, platformSlug)
}

func (service *Service) CreatePlatform(context context.Context, entry *Platform) error {
	if entry.Slug == "" {
		entry.Slug = slug.From(entry.Title)
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, entry.Title).MaxLen(FieldTitle, entry.Title, 100)
	validator.Slug(FieldSlug, entry.Slug)
	validator.Required(FieldURL, entry.URL).URL(FieldURL, entry.URL)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Create(context, entry); err != nil {
		return err
	}

	service.invalidate(context)
	service.logger.Info("platform_created", slog.String("slug", entry.Slug))
	return nil
}

func (service *Service) UpdatePlatform(context context.Context, platformSlug string, patch *Patch) (*Platform, error) {
	existing, err := service.repo.FindBySlug(context, platformSlug)
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
	if patch.URL != nil {
		validator.Required(FieldURL, *patch.URL).URL(FieldURL, *patch.URL)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, existing.ID, patch); err != nil {
		return nil, err
	}

	service.invalidate(context)
	service.logger.Info("platform_updated", slog.Int64("platform_id", existing.ID))

	resolvedSlug := platformSlug
	if patch.Slug != nil {
		resolvedSlug = *patch.Slug
	}
	return service.repo.FindBySlug(context, resolvedSlug)
}

func (service *Service) DeletePlatform(context context.Context, platformSlug string) error {
	existing, err := service.repo.FindBySlug(context, platformSlug)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, existing.ID); err != nil {
		return err
	}

	service.invalidate(context)
	service.logger.Warn("platform_deleted", slog.String("slug", platformSlug))
	return nil
}

func (service *Service) invalidate(context context.Context) {
	if service.cache == nil {
		return
	}
	service.cache.DeleteMatching(context, constants.CachePatternWebsites)
}
