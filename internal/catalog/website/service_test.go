package website_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uilove/uilove/internal/catalog/website"
	"github.com/uilove/uilove/internal/platform/apperr"
	"github.com/uilove/uilove/pkg/pagination"
	"github.com/uilove/uilove/pkg/pointer"
)

// # Test Doubles

// memStore is an in-memory Repository honoring the store contract: slug
// uniqueness, active-only visibility, filter/count parity, replace-set
// junction semantics with silent unknown-id drops.
type memStore struct {
	seq      int64
	websites map[int64]*website.Website

	categories  map[int64]website.Tag
	styles      map[int64]website.Tag
	collections map[int64]website.Tag

	failIncrement bool
}

func newMemStore() *memStore {
	return &memStore{
		websites:    make(map[int64]*website.Website),
		categories:  make(map[int64]website.Tag),
		styles:      make(map[int64]website.Tag),
		collections: make(map[int64]website.Tag),
	}
}

func (store *memStore) resolveTags(ids []int64, known map[int64]website.Tag) []website.Tag {
	tags := make([]website.Tag, 0)
	seen := make(map[int64]bool)
	for _, id := range ids {
		tag, ok := known[id]
		if !ok || seen[id] {
			continue // unknown or duplicate ids drop silently
		}
		seen[id] = true
		tags = append(tags, tag)
	}
	return tags
}

func (store *memStore) matches(w *website.Website, f website.Filter) bool {
	if !f.IncludeInactive && !w.IsActive {
		return false
	}
	if f.Featured != nil && w.IsFeatured != *f.Featured {
		return false
	}
	if f.PlatformID != nil && (w.PlatformID == nil || *w.PlatformID != *f.PlatformID) {
		return false
	}
	if f.CategoryID != nil && !hasTag(w.Categories, *f.CategoryID) {
		return false
	}
	if f.StyleID != nil && !hasTag(w.Styles, *f.StyleID) {
		return false
	}
	if f.CollectionID != nil && !hasTag(w.Collections, *f.CollectionID) {
		return false
	}
	if f.Query != "" {
		needle := strings.ToLower(f.Query)
		title := strings.ToLower(w.Title)
		description := ""
		if w.Description != nil {
			description = strings.ToLower(*w.Description)
		}
		if !strings.Contains(title, needle) && !strings.Contains(description, needle) {
			return false
		}
	}
	return true
}

func hasTag(tags []website.Tag, id int64) bool {
	for _, t := range tags {
		if t.ID == id {
			return true
		}
	}
	return false
}

func (store *memStore) List(_ context.Context, f website.Filter, limit, offset int) ([]*website.Website, error) {
	var matched []*website.Website
	for _, w := range store.websites {
		if store.matches(w, f) {
			matched = append(matched, w)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		switch f.Sort {
		case website.SortPopular:
			if a.ViewCount != b.ViewCount {
				return a.ViewCount > b.ViewCount
			}
		case website.SortTitle:
			if a.Title != b.Title {
				return a.Title < b.Title
			}
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		}
		return a.ID > b.ID
	})

	if offset >= len(matched) {
		return []*website.Website{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (store *memStore) Count(_ context.Context, f website.Filter) (int, error) {
	total := 0
	for _, w := range store.websites {
		if store.matches(w, f) {
			total++
		}
	}
	return total, nil
}

func (store *memStore) FindByID(_ context.Context, id int64) (*website.Website, error) {
	w, ok := store.websites[id]
	if !ok {
		return nil, apperr.NotFound("Website")
	}
	return w, nil
}

func (store *memStore) FindBySlug(_ context.Context, slug string, includeInactive bool) (*website.Website, error) {
	for _, w := range store.websites {
		if w.Slug == slug && (includeInactive || w.IsActive) {
			return w, nil
		}
	}
	return nil, apperr.NotFound("Website")
}

func (store *memStore) Create(_ context.Context, w *website.Website) error {
	for _, existing := range store.websites {
		if existing.Slug == w.Slug {
			return apperr.Conflict("Website already exists")
		}
	}

	store.seq++
	w.ID = store.seq
	w.CreatedAt = time.Now()
	w.UpdatedAt = w.CreatedAt
	w.Categories = store.resolveTags(w.CategoryIDs, store.categories)
	w.Styles = store.resolveTags(w.StyleIDs, store.styles)
	w.Collections = store.resolveTags(w.CollectionIDs, store.collections)

	store.websites[w.ID] = w
	return nil
}

func (store *memStore) Update(_ context.Context, id int64, patch *website.Patch) error {
	w, ok := store.websites[id]
	if !ok {
		return apperr.NotFound("Website")
	}

	if patch.Slug != nil {
		w.Slug = *patch.Slug
	}
	if patch.Title != nil {
		w.Title = *patch.Title
	}
	if patch.Description != nil {
		w.Description = patch.Description
	}
	if patch.OriginalURL != nil {
		w.OriginalURL = *patch.OriginalURL
	}
	if patch.IsFeatured != nil {
		w.IsFeatured = *patch.IsFeatured
	}
	if patch.IsActive != nil {
		w.IsActive = *patch.IsActive
	}

	// nil = unchanged, empty non-nil = clear
	if patch.CategoryIDs != nil {
		w.Categories = store.resolveTags(patch.CategoryIDs, store.categories)
	}
	if patch.StyleIDs != nil {
		w.Styles = store.resolveTags(patch.StyleIDs, store.styles)
	}
	if patch.CollectionIDs != nil {
		w.Collections = store.resolveTags(patch.CollectionIDs, store.collections)
	}

	w.UpdatedAt = time.Now()
	return nil
}

func (store *memStore) Delete(_ context.Context, id int64) error {
	if _, ok := store.websites[id]; !ok {
		return apperr.NotFound("Website")
	}
	delete(store.websites, id)
	return nil
}

func (store *memStore) SetActive(_ context.Context, id int64, active bool) error {
	w, ok := store.websites[id]
	if !ok {
		return apperr.NotFound("Website")
	}
	w.IsActive = active
	return nil
}

func (store *memStore) IncrementViewCount(_ context.Context, id int64, delta int64) error {
	if store.failIncrement {
		return errors.New("counter backend down")
	}
	w, ok := store.websites[id]
	if !ok {
		return apperr.NotFound("Website")
	}
	w.ViewCount += delta
	return nil
}

// spyInvalidator records cache invalidation calls.
type spyInvalidator struct {
	patterns []string
}

func (spy *spyInvalidator) DeleteMatching(_ context.Context, pattern string) {
	spy.patterns = append(spy.patterns, pattern)
}

// # Fixtures

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// seedCatalog loads five active websites in one category: two featured,
// view counts 0/10/20/30/40, ascending creation times.
func seedCatalog(t *testing.T, store *memStore, service *website.Service) {
	t.Helper()

	store.categories[1] = website.Tag{ID: 1, Slug: "landing-pages", Title: "Landing Pages"}
	store.styles[1] = website.Tag{ID: 1, Slug: "dark", Title: "Dark"}
	store.collections[1] = website.Tag{ID: 1, Slug: "best-of-2026", Title: "Best of 2026"}

	entries := []struct {
		title     string
		featured  bool
		viewCount int64
	}{
		{"Alpha Studio", false, 0},
		{"Beta Labs", true, 10},
		{"Gamma Design", false, 20},
		{"Delta Works", true, 30},
		{"Epsilon Crafts", false, 40},
	}

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i, entry := range entries {
		w := &website.Website{
			Title:       entry.title,
			OriginalURL: "https://example.com/" + strings.ToLower(strings.Fields(entry.title)[0]),
			IsFeatured:  entry.featured,
			IsActive:    true,
			CategoryIDs: []int64{1},
		}
		require.NoError(t, service.CreateWebsite(context.Background(), w))

		// Pin deterministic timestamps and view counts directly.
		w.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		w.ViewCount = entry.viewCount
	}
}

// # Tests

func TestService_ListWebsites_Pagination(t *testing.T) {
	store := newMemStore()
	service := website.NewService(store, nil, testLogger())
	seedCatalog(t, store, service)

	ctx := context.Background()
	filter := website.Filter{CategoryID: pointer.To(int64(1))}

	// Page 1 of size 2: two items, true total.
	websites, total, err := service.ListWebsites(ctx, filter, pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, websites, 2)
	assert.Equal(t, 5, total)

	meta := pagination.NewMeta(1, 2, total)
	assert.Equal(t, 3, meta.TotalPages)

	// Last page holds the remainder.
	websites, total, err = service.ListWebsites(ctx, filter, pagination.Params{Page: 3, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, websites, 1)
	assert.Equal(t, 5, total)

	// Out-of-range pages still report real totals.
	websites, total, err = service.ListWebsites(ctx, filter, pagination.Params{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, websites)
	assert.Equal(t, 5, total)
}

func TestService_FeaturedWebsites(t *testing.T) {
	store := newMemStore()
	service := website.NewService(store, nil, testLogger())
	seedCatalog(t, store, service)

	websites, err := service.FeaturedWebsites(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, websites, 2)
	for _, w := range websites {
		assert.True(t, w.IsFeatured)
	}
}

func TestService_PopularWebsites(t *testing.T) {
	store := newMemStore()
	service := website.NewService(store, nil, testLogger())
	seedCatalog(t, store, service)

	websites, err := service.PopularWebsites(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, websites, 3)
	assert.Equal(t, int64(40), websites[0].ViewCount)
	assert.Equal(t, int64(30), websites[1].ViewCount)
	assert.Equal(t, int64(20), websites[2].ViewCount)
}

func TestService_SearchWebsites(t *testing.T) {
	store := newMemStore()
	service := website.NewService(store, nil, testLogger())
	seedCatalog(t, store, service)

	ctx := context.Background()

	// Case-insensitive substring over title.
	websites, total, err := service.SearchWebsites(ctx, "GAMMA", pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, websites, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Gamma Design", websites[0].Title)

	// Empty query is rejected.
	_, _, err = service.SearchWebsites(ctx, "", pagination.Params{Page: 1, Limit: 20})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestService_ViewWebsite(t *testing.T) {
	store := newMemStore()
	service := website.NewService(store, nil, testLogger())
	seedCatalog(t, store, service)

	ctx := context.Background()

	w, err := service.ViewWebsite(ctx, "alpha-studio")
	require.NoError(t, err)
	assert.Equal(t, int64(1), w.ViewCount)

	// A failed counter bump never fails the read.
	store.failIncrement = true
	w, err = service.ViewWebsite(ctx, "alpha-studio")
	require.NoError(t, err)
	assert.Equal(t, int64(1), w.ViewCount)
}

func TestService_CreateWebsite(t *testing.T) {
	store := newMemStore()
	spy := &spyInvalidator{}
	service := website.NewService(store, spy, testLogger())

	ctx := context.Background()

	// Slug is derived from the title when omitted.
	w := &website.Website{
		Title:       "Café Noir Studio",
		OriginalURL: "https://cafenoir.example.com",
		IsActive:    true,
	}
	require.NoError(t, service.CreateWebsite(ctx, w))
	assert.Equal(t, "cafe-noir-studio", w.Slug)
	assert.Equal(t, []string{"websites:*"}, spy.patterns)

	// Duplicate slug conflicts.
	dup := &website.Website{
		Title:       "Café Noir Studio",
		OriginalURL: "https://other.example.com",
		IsActive:    true,
	}
	err := service.CreateWebsite(ctx, dup)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	assert.Len(t, spy.patterns, 1) // no invalidation on failure

	// Missing URL is a validation error.
	err = service.CreateWebsite(ctx, &website.Website{Title: "No URL"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestService_UpdateWebsite_RelationSets(t *testing.T) {
	store := newMemStore()
	spy := &spyInvalidator{}
	service := website.NewService(store, spy, testLogger())
	seedCatalog(t, store, service)
	spy.patterns = nil // discard seeding invalidations

	ctx := context.Background()

	// nil relation slices leave the sets untouched.
	updated, err := service.UpdateWebsite(ctx, "alpha-studio", &website.Patch{
		Title: pointer.To("Alpha Studio v2"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alpha Studio v2", updated.Title)
	assert.Len(t, updated.Categories, 1)

	// Unknown ids drop silently; known ones stick.
	updated, err = service.UpdateWebsite(ctx, "alpha-studio", &website.Patch{
		CategoryIDs: []int64{1, 999},
	})
	require.NoError(t, err)
	require.Len(t, updated.Categories, 1)
	assert.Equal(t, int64(1), updated.Categories[0].ID)

	// Explicit empty slice clears the whole set.
	updated, err = service.UpdateWebsite(ctx, "alpha-studio", &website.Patch{
		CategoryIDs: []int64{},
	})
	require.NoError(t, err)
	assert.Empty(t, updated.Categories)

	assert.Len(t, spy.patterns, 3)
}

func TestService_DeleteWebsite(t *testing.T) {
	store := newMemStore()
	spy := &spyInvalidator{}
	service := website.NewService(store, spy, testLogger())
	seedCatalog(t, store, service)
	spy.patterns = nil // discard seeding invalidations

	ctx := context.Background()

	require.NoError(t, service.DeleteWebsite(ctx, "beta-labs"))
	assert.Len(t, spy.patterns, 1)

	_, err := service.GetWebsite(ctx, "beta-labs", true)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	// Deleting a missing entry is a clean 404.
	err = service.DeleteWebsite(ctx, "beta-labs")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestService_SetWebsiteActive(t *testing.T) {
	store := newMemStore()
	service := website.NewService(store, nil, testLogger())
	seedCatalog(t, store, service)

	ctx := context.Background()

	require.NoError(t, service.SetWebsiteActive(ctx, "alpha-studio", false))

	// Hidden from public lookups...
	_, err := service.GetWebsite(ctx, "alpha-studio", false)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	// ...but still reachable for admins, and restorable.
	_, err = service.GetWebsite(ctx, "alpha-studio", true)
	require.NoError(t, err)

	require.NoError(t, service.SetWebsiteActive(ctx, "alpha-studio", true))
	_, err = service.GetWebsite(ctx, "alpha-studio", false)
	require.NoError(t, err)
}
