// Copyright (c) 2026 UILove. All rights reserved.

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uilove/uilove/pkg/pagination"
)

/*
TestFromRequest verifies query parsing and clamping behavior.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 20},
		{"explicit", "page=3&limit=50", 3, 50},
		{"zero_page", "page=0", 1, 20},
		{"negative_page", "page=-2", 1, 20},
		{"limit_over_max", "limit=500", 1, 20},
		{"limit_at_max", "limit=100", 1, 100},
		{"non_numeric", "page=abc&limit=xyz", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/websites?"+tt.query, nil)
			params := pagination.FromRequest(r)

			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

/*
TestParams_Offset verifies the SQL offset derivation.
*/
func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 20, pagination.Params{Page: 2, Limit: 20}.Offset())
	assert.Equal(t, 80, pagination.Params{Page: 5, Limit: 20}.Offset())
	assert.Equal(t, 0, pagination.Params{Page: 0, Limit: 20}.Offset())
}

/*
TestNewMeta verifies total page calculation, including partial last pages
and out-of-range requests that still report the true totals.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(1, 2, 5)
	assert.Equal(t, 5, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)

	// Exact division
	meta = pagination.NewMeta(1, 5, 10)
	assert.Equal(t, 2, meta.TotalPages)

	// Empty result set
	meta = pagination.NewMeta(1, 20, 0)
	assert.Equal(t, 0, meta.TotalPages)

	// Zero limit never divides; pages collapse to 0 regardless of total
	meta = pagination.NewMeta(1, 0, 5)
	assert.Equal(t, 5, meta.Total)
	assert.Equal(t, 0, meta.TotalPages)

	// Page beyond the last one still carries real totals
	meta = pagination.NewMeta(9, 2, 5)
	assert.Equal(t, 9, meta.Page)
	assert.Equal(t, 5, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
}
