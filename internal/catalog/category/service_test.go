package category_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uilove/uilove/internal/catalog/category"
	"github.com/uilove/uilove/internal/platform/apperr"
	"github.com/uilove/uilove/pkg/pagination"
	"github.com/uilove/uilove/pkg/pointer"
)

type memStore struct {
	nextID  int64
	entries map[int64]*category.Category
}

func newMemStore() *memStore {
	return &memStore{nextID: 1, entries: make(map[int64]*category.Category)}
}

func (store *memStore) List(_ context.Context, filter category.Filter, limit, offset int) ([]*category.Category, error) {
	matched := store.matching(filter)
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].SortOrder != matched[j].SortOrder {
			return matched[i].SortOrder < matched[j].SortOrder
		}
		return matched[i].ID < matched[j].ID
	})

	if offset >= len(matched) {
		return []*category.Category{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (store *memStore) Count(_ context.Context, filter category.Filter) (int, error) {
	return len(store.matching(filter)), nil
}

func (store *memStore) FindBySlug(_ context.Context, slug string, includeInactive bool) (*category.Category, error) {
	for _, entry := range store.entries {
		if entry.Slug == slug && (includeInactive || entry.IsActive) {
			clone := *entry
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Category")
}

func (store *memStore) Create(_ context.Context, entry *category.Category) error {
	for _, existing := range store.entries {
		if existing.Slug == entry.Slug {
			return apperr.Conflict("Category already exists")
		}
	}
	entry.ID = store.nextID
	store.nextID++
	clone := *entry
	store.entries[entry.ID] = &clone
	return nil
}

func (store *memStore) Update(_ context.Context, id int64, patch *category.Patch) error {
	entry, ok := store.entries[id]
	if !ok {
		return apperr.NotFound("Category")
	}
	if patch.Slug != nil {
		entry.Slug = *patch.Slug
	}
	if patch.Title != nil {
		entry.Title = *patch.Title
	}
	if patch.Description != nil {
		entry.Description = patch.Description
	}
	if patch.Icon != nil {
		entry.Icon = patch.Icon
	}
	if patch.SortOrder != nil {
		entry.SortOrder = *patch.SortOrder
	}
	if patch.IsActive != nil {
		entry.IsActive = *patch.IsActive
	}
	return nil
}

func (store *memStore) Delete(_ context.Context, id int64) error {
	if _, ok := store.entries[id]; !ok {
		return apperr.NotFound("Category")
	}
	delete(store.entries, id)
	return nil
}

func (store *memStore) matching(filter category.Filter) []*category.Category {
	matched := make([]*category.Category, 0, len(store.entries))
	for _, entry := range store.entries {
		if !filter.IncludeInactive && !entry.IsActive {
			continue
		}
		matched = append(matched, entry)
	}
	return matched
}

type spyInvalidator struct {
	patterns []string
}

func (spy *spyInvalidator) DeleteMatching(_ context.Context, pattern string) {
	spy.patterns = append(spy.patterns, pattern)
}

func newTestService(t *testing.T) (*category.Service, *memStore, *spyInvalidator) {
	t.Helper()
	store := newMemStore()
	spy := &spyInvalidator{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return category.NewService(store, spy, logger), store, spy
}

func TestCreateCategory_GeneratesSlug(t *testing.T) {
	service, _, spy := newTestService(t)
	ctx := context.Background()

	entry := &category.Category{Title: "Landing Pages", SortOrder: 2, IsActive: true}
	require.NoError(t, service.CreateCategory(ctx, entry))

	assert.Equal(t, "landing-pages", entry.Slug)
	assert.NotZero(t, entry.ID)
	assert.Equal(t, []string{"websites:*"}, spy.patterns)
}

func TestCreateCategory_Validation(t *testing.T) {
	service, _, spy := newTestService(t)
	ctx := context.Background()

	err := service.CreateCategory(ctx, &category.Category{Title: "", SortOrder: -1})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Empty(t, spy.patterns)
}

func TestCreateCategory_DuplicateSlug(t *testing.T) {
	service, _, spy := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.CreateCategory(ctx, &category.Category{Title: "Portfolios", IsActive: true}))
	spy.patterns = nil

	err := service.CreateCategory(ctx, &category.Category{Title: "Portfolios", IsActive: true})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
	assert.Empty(t, spy.patterns, "a failed create must not invalidate the cache")
}

func TestListCategories_SortOrder(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.CreateCategory(ctx, &category.Category{Title: "Zeta", SortOrder: 3, IsActive: true}))
	require.NoError(t, service.CreateCategory(ctx, &category.Category{Title: "Alpha", SortOrder: 1, IsActive: true}))
	require.NoError(t, service.CreateCategory(ctx, &category.Category{Title: "Hidden", SortOrder: 2}))

	categories, total, err := service.ListCategories(ctx, category.Filter{}, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, 2, total, "inactive categories stay out of public listings")
	require.Len(t, categories, 2)
	assert.Equal(t, "Alpha", categories[0].Title)
	assert.Equal(t, "Zeta", categories[1].Title)

	all, total, err := service.ListCategories(ctx, category.Filter{IncludeInactive: true}, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, all, 3)
}

func TestUpdateCategory_SlugChange(t *testing.T) {
	service, _, spy := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.CreateCategory(ctx, &category.Category{Title: "E-Commerce", IsActive: true}))
	spy.patterns = nil

	updated, err := service.UpdateCategory(ctx, "e-commerce", &category.Patch{
		Slug:      pointer.To("shops"),
		SortOrder: pointer.To(5),
	})
	require.NoError(t, err)

	assert.Equal(t, "shops", updated.Slug)
	assert.Equal(t, 5, updated.SortOrder)
	assert.Equal(t, []string{"websites:*"}, spy.patterns)

	_, err = service.GetCategory(ctx, "e-commerce", true)
	require.Error(t, err)
}

func TestUpdateCategory_RejectsNegativeSortOrder(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.CreateCategory(ctx, &category.Category{Title: "Agencies", IsActive: true}))

	_, err := service.UpdateCategory(ctx, "agencies", &category.Patch{SortOrder: pointer.To(-1)})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestDeleteCategory(t *testing.T) {
	service, _, spy := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.CreateCategory(ctx, &category.Category{Title: "Blogs", IsActive: true}))
	spy.patterns = nil

	require.NoError(t, service.DeleteCategory(ctx, "blogs"))
	assert.Equal(t, []string{"websites:*"}, spy.patterns)

	err := service.DeleteCategory(ctx, "blogs")
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
