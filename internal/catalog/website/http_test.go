package website_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uilove/uilove/internal/catalog/website"
)

// fakeCache is an in-memory ResponseCache.
type fakeCache struct {
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (cache *fakeCache) Get(_ context.Context, key string) ([]byte, bool) {
	payload, ok := cache.entries[key]
	return payload, ok
}

func (cache *fakeCache) Set(_ context.Context, key string, payload []byte) {
	cache.entries[key] = payload
}

func newTestRouter(t *testing.T, cache website.ResponseCache) (*chi.Mux, *memStore) {
	t.Helper()

	store := newMemStore()
	service := website.NewService(store, nil, testLogger())
	seedCatalog(t, store, service)

	handler := website.NewHandler(service, cache)

	router := chi.NewRouter()
	router.Route("/websites", handler.RegisterRoutes)
	router.Get("/search", handler.Search)

	return router, store
}

func TestHandler_ListWebsites(t *testing.T) {
	cache := newFakeCache()
	router, _ := newTestRouter(t, cache)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/websites?page=1&limit=2", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, recorder.Header().Get("X-Cache"))

	var envelope struct {
		Data []json.RawMessage `json:"data"`
		Meta struct {
			Page       int `json:"page"`
			Limit      int `json:"limit"`
			Total      int `json:"total"`
			TotalPages int `json:"total_pages"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

	assert.Len(t, envelope.Data, 2)
	assert.Equal(t, 1, envelope.Meta.Page)
	assert.Equal(t, 2, envelope.Meta.Limit)
	assert.Equal(t, 5, envelope.Meta.Total)
	assert.Equal(t, 3, envelope.Meta.TotalPages)

	// Same request again is served from cache with the identical payload.
	replay := httptest.NewRecorder()
	router.ServeHTTP(replay, httptest.NewRequest("GET", "/websites?page=1&limit=2", nil))

	require.Equal(t, http.StatusOK, replay.Code)
	assert.Equal(t, "HIT", replay.Header().Get("X-Cache"))
	assert.Equal(t, recorder.Body.String(), replay.Body.String())
}

func TestHandler_GetWebsite_CountsViews(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	get := func() int64 {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest("GET", "/websites/alpha-studio", nil))
		require.Equal(t, http.StatusOK, recorder.Code)

		var envelope struct {
			Data struct {
				ViewCount int64 `json:"view_count"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		return envelope.Data.ViewCount
	}

	first := get()
	second := get()
	assert.Equal(t, first+1, second)
}

func TestHandler_GetWebsite_NotFound(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/websites/does-not-exist", nil))

	require.Equal(t, http.StatusNotFound, recorder.Code)

	var envelope struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "NOT_FOUND", envelope.Code)
}

func TestHandler_Search(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/search?q=delta", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data []struct {
			Title string `json:"title"`
		} `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Delta Works", envelope.Data[0].Title)
	assert.Equal(t, 1, envelope.Meta.Total)

	// Missing q is rejected.
	bad := httptest.NewRecorder()
	router.ServeHTTP(bad, httptest.NewRequest("GET", "/search", nil))
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestHandler_AdminRoutes_RequireAuth(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	body := strings.NewReader(`{"title":"New Site","original_url":"https://new.example.com"}`)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("POST", "/websites", body))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	del := httptest.NewRecorder()
	router.ServeHTTP(del, httptest.NewRequest("DELETE", "/websites/alpha-studio", nil))
	assert.Equal(t, http.StatusUnauthorized, del.Code)
}
