package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCategories(t *testing.T) {
	payload := `[
		{"slug": "landing-pages", "title": "Landing Pages", "count": 12},
		{"slug": "portfolios", "title": "Portfolios"}
	]`

	entries, err := decodeCategories(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "landing-pages", entries[0].Slug)
	assert.Equal(t, 12, entries[0].Count)
	assert.Equal(t, "Portfolios", entries[1].Title)
	assert.Zero(t, entries[1].Count)
}

func TestDecodeCategories_InvalidJSON(t *testing.T) {
	_, err := decodeCategories(strings.NewReader(`{"not": "an array"`))
	require.Error(t, err)
}

func TestParseWebsiteRow(t *testing.T) {
	columns := headerIndex([]string{"Slug", "Title", "Description", "original_url", "thumbnail", "image_url", "categories"})

	row := parseWebsiteRow(columns, []string{
		" stripe ", "Stripe", "", "https://stripe.com", "https://cdn.example/stripe.png", "", "fintech, saas ,",
	})

	assert.Equal(t, "stripe", row.Slug)
	assert.Equal(t, "Stripe", row.Title)
	assert.Nil(t, row.Description)
	assert.Equal(t, "https://stripe.com", row.OriginalURL)
	assert.Nil(t, row.ImageURL)
	assert.Equal(t, []string{"fintech", "saas"}, row.CategorySlugs)
}

func TestParseWebsiteRow_ShortRecord(t *testing.T) {
	columns := headerIndex([]string{"slug", "title", "categories"})

	row := parseWebsiteRow(columns, []string{"vercel"})

	assert.Equal(t, "vercel", row.Slug)
	assert.Empty(t, row.Title)
	assert.Nil(t, row.CategorySlugs)
}

func TestSplitSlugs(t *testing.T) {
	assert.Nil(t, splitSlugs(""))
	assert.Equal(t, []string{"dark"}, splitSlugs("dark"))
	assert.Equal(t, []string{"dark", "minimal"}, splitSlugs(" dark , minimal , "))
}
