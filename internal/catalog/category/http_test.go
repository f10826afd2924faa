package category_test

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

	"github.com/uilove/uilove/internal/catalog/category"
	"github.com/uilove/uilove/internal/platform/ctxutil"
	"github.com/uilove/uilove/internal/platform/sec"
)

// newAdminRouter mounts the category routes behind a middleware that stamps
// every request with admin claims, standing in for the JWT chain.
func newAdminRouter(t *testing.T) (*chi.Mux, *category.Service) {
	t.Helper()

	service, _, _ := newTestService(t)
	handler := category.NewHandler(service, nil)

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{
				UserID: "1",
				Email:  "admin@uilove.co",
				Role:   string(sec.RoleAdmin),
			})
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	})
	router.Route("/categories", handler.RegisterRoutes)

	return router, service
}

func TestHandler_CreateCategory_DefaultsActive(t *testing.T) {
	router, service := newAdminRouter(t)

	body := strings.NewReader(`{"title":"Landing Pages"}`)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("POST", "/categories", body))

	require.Equal(t, http.StatusCreated, recorder.Code)

	var envelope struct {
		Data struct {
			Slug     string `json:"slug"`
			IsActive bool   `json:"is_active"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "landing-pages", envelope.Data.Slug)
	assert.True(t, envelope.Data.IsActive)

	// Visible to the public read path.
	_, err := service.GetCategory(context.Background(), "landing-pages", false)
	require.NoError(t, err)
}

func TestHandler_CreateCategory_ExplicitHidden(t *testing.T) {
	router, service := newAdminRouter(t)

	body := strings.NewReader(`{"title":"Drafts","is_active":false}`)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("POST", "/categories", body))

	require.Equal(t, http.StatusCreated, recorder.Code)

	// An explicit false must survive the create: hidden from the public
	// read path, present for admins.
	_, err := service.GetCategory(context.Background(), "drafts", false)
	require.Error(t, err)

	entry, err := service.GetCategory(context.Background(), "drafts", true)
	require.NoError(t, err)
	assert.False(t, entry.IsActive)
}
