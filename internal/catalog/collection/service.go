package collection

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

func (service *Service) ListCollections(context context.Context, filter Filter, params pagination.Params) ([]*Collection, int, error) {
	collections, err := service.repo.List(context, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, err
	}

	total, err := service.repo.Count(context, filter)
	if err != nil {
		return nil, 0, err
	}

	return collections, total, nil
}

func (service *Service) GetCollection(context context.Context, collectionSlug string, includeInactive bool) (*Collection, error) {
	return service.repo.FindBySlug(context, collectionSlug, includeInactive)
}

func (service *Service) CreateCollection(context context.Context, entry *Collection) error {
	if entry.Slug == "" {
		entry.Slug = slug.From(entry.Title)
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, entry.Title).MaxLen(FieldTitle, entry.Title, 100)
	validator.Slug(FieldSlug, entry.Slug)
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
	service.logger.Info("collection_created", slog.String("slug", entry.Slug))
	return nil
}

func (service *Service) UpdateCollection(context context.Context, collectionSlug string, patch *Patch) (*Collection, error) {
	existing, err := service.repo.FindBySlug(context, collectionSlug, true)
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
	service.logger.Info("collection_updated", slog.Int64("collection_id", existing.ID))

	resolvedSlug := collectionSlug
	if patch.Slug != nil {
		resolvedSlug = *patch.Slug
	}
	return service.repo.FindBySlug(context, resolvedSlug, true)
}

func (service *Service) DeleteCollection(context context.Context, collectionSlug string) error {
	existing, err := service.repo.FindBySlug(context, collectionSlug, true)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, existing.ID); err != nil {
		return err
	}

	service.invalidate(context)
	service.logger.Warn("collection_deleted", slog.String("slug", collectionSlug))
	return nil
}

func (service *Service) invalidate(context context.Context) {
	if service.cache == nil {
		return
	}
	service.cache.DeleteMatching(context, constants.CachePatternWebsites)
}
