// Copyright (c) 2026 UILove. All rights reserved.

/*
Package importer loads the initial catalog from flat files.

Categories arrive as a JSON array whose order defines sort_order; websites
arrive as a CSV export with a comma-separated category-slug column. Both
loaders are idempotent on slug: an existing row is skipped, never
overwritten, so the importer can be re-run against a partially seeded
database.
*/
package importer

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uilove/uilove/internal/platform/database/schema"
	"github.com/uilove/uilove/internal/platform/sec"
)

type Importer struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

func New(db *pgxpool.Pool, logger *slog.Logger) *Importer {
	return &Importer{db: db, logger: logger}
}

// categoryEntry is one element of the categories JSON file.
type categoryEntry struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Count int    `json:"count"`
}

// websiteRow is one parsed CSV record.
type websiteRow struct {
	Slug          string
	Title         string
	Description   *string
	OriginalURL   string
	ThumbnailURL  *string
	ImageURL      *string
	CategorySlugs []string
}

// ImportCategories reads the category JSON file and inserts every entry not
// already present. The file order becomes sort_order. Returns a slug→id map
// covering both inserted and pre-existing categories so the website loader
// can wire junctions.
func (importer *Importer) ImportCategories(context context.Context, path string) (map[string]int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("importer: open categories file: %w", err)
	}
	defer file.Close()

	entries, err := decodeCategories(file)
	if err != nil {
		return nil, err
	}

	c := schema.CatalogCategory
	findQuery := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", c.ID, c.Table, c.Slug)
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING %s
	`, c.Table, c.Slug, c.Title, c.WebsiteCount, c.SortOrder, c.IsActive, c.ID)

	slugToID := make(map[string]int64, len(entries))
	inserted := 0
	for position, entry := range entries {
		if entry.Slug == "" {
			continue
		}

		var id int64
		err := importer.db.QueryRow(context, findQuery, entry.Slug).Scan(&id)
		switch {
		case err == nil:
			slugToID[entry.Slug] = id
			continue
		case !errors.Is(err, pgx.ErrNoRows):
			return nil, fmt.Errorf("importer: lookup category %q: %w", entry.Slug, err)
		}

		err = importer.db.QueryRow(context, insertQuery,
			entry.Slug, entry.Title, entry.Count, position,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("importer: insert category %q: %w", entry.Slug, err)
		}
		slugToID[entry.Slug] = id
		inserted++
	}

	importer.logger.Info("categories_imported",
		slog.Int("inserted", inserted),
		slog.Int("total", len(slugToID)),
	)
	return slugToID, nil
}

// ImportWebsites reads the website CSV export and inserts every row whose
// slug is not already present. Category links are resolved through the map
// returned by ImportCategories; unknown slugs in the CSV are dropped.
func (importer *Importer) ImportWebsites(context context.Context, path string, categoryMap map[string]int64) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("importer: open websites file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("importer: read csv header: %w", err)
	}
	columns := headerIndex(header)

	w := schema.CatalogWebsite
	existsQuery := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)", w.Table, w.Slug)
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s
	`, w.Table, w.Slug, w.Title, w.Description, w.OriginalURL, w.ThumbnailURL, w.ImageURL, w.ID)

	j := schema.WebsiteCategory
	junctionQuery := fmt.Sprintf(
		"INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		j.Table, j.WebsiteID, j.CategoryID)

	imported := 0
	skipped := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("importer: read csv record: %w", err)
		}

		row := parseWebsiteRow(columns, record)
		if row.Slug == "" {
			skipped++
			continue
		}

		var exists bool
		if err := importer.db.QueryRow(context, existsQuery, row.Slug).Scan(&exists); err != nil {
			return fmt.Errorf("importer: lookup website %q: %w", row.Slug, err)
		}
		if exists {
			skipped++
			continue
		}

		var websiteID int64
		err = importer.db.QueryRow(context, insertQuery,
			row.Slug, row.Title, row.Description, row.OriginalURL, row.ThumbnailURL, row.ImageURL,
		).Scan(&websiteID)
		if err != nil {
			return fmt.Errorf("importer: insert website %q: %w", row.Slug, err)
		}

		batch := &pgx.Batch{}
		for _, categorySlug := range row.CategorySlugs {
			categoryID, known := categoryMap[categorySlug]
			if !known {
				continue
			}
			batch.Queue(junctionQuery, websiteID, categoryID)
		}
		if batch.Len() > 0 {
			if err := importer.db.SendBatch(context, batch).Close(); err != nil {
				return fmt.Errorf("importer: link website %q: %w", row.Slug, err)
			}
		}

		imported++
		if imported%100 == 0 {
			importer.logger.Info("websites_import_progress", slog.Int("imported", imported))
		}
	}

	importer.logger.Info("websites_imported",
		slog.Int("imported", imported),
		slog.Int("skipped", skipped),
	)
	return nil
}

// RecomputeCounts refreshes the denormalized website_count on all three
// taxonomies from the junction tables. This is the only writer of that
// column; the CRUD path never maintains it.
func (importer *Importer) RecomputeCounts(context context.Context) error {
	statements := []struct {
		name  string
		query string
	}{
		{
			name: "category",
			query: fmt.Sprintf(`
				UPDATE %s t SET %s = (
					SELECT COUNT(*) FROM %s j WHERE j.%s = t.%s
				)`,
				schema.CatalogCategory.Table, schema.CatalogCategory.WebsiteCount,
				schema.WebsiteCategory.Table, schema.WebsiteCategory.CategoryID,
				schema.CatalogCategory.ID),
		},
		{
			name: "style",
			query: fmt.Sprintf(`
				UPDATE %s t SET %s = (
					SELECT COUNT(*) FROM %s j WHERE j.%s = t.%s
				)`,
				schema.CatalogStyle.Table, schema.CatalogStyle.WebsiteCount,
				schema.WebsiteStyle.Table, schema.WebsiteStyle.StyleID,
				schema.CatalogStyle.ID),
		},
		{
			name: "collection",
			query: fmt.Sprintf(`
				UPDATE %s t SET %s = (
					SELECT COUNT(*) FROM %s j WHERE j.%s = t.%s
				)`,
				schema.CatalogCollection.Table, schema.CatalogCollection.WebsiteCount,
				schema.WebsiteCollection.Table, schema.WebsiteCollection.CollectionID,
				schema.CatalogCollection.ID),
		},
	}

	for _, statement := range statements {
		result, err := importer.db.Exec(context, statement.query)
		if err != nil {
			return fmt.Errorf("importer: recompute %s counts: %w", statement.name, err)
		}
		importer.logger.Info("counts_recomputed",
			slog.String("taxonomy", statement.name),
			slog.Int64("rows", result.RowsAffected()),
		)
	}
	return nil
}

// EnsureAdmin creates the bootstrap admin account when no account exists
// for the configured email. An existing account is left untouched.
func (importer *Importer) EnsureAdmin(context context.Context, email, password string) error {
	a := schema.UsersAccount

	var exists bool
	existsQuery := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)", a.Table, a.Email)
	if err := importer.db.QueryRow(context, existsQuery, email).Scan(&exists); err != nil {
		return fmt.Errorf("importer: lookup admin account: %w", err)
	}
	if exists {
		importer.logger.Info("admin_account_present", slog.String("email", email))
		return nil
	}

	hash, err := sec.HashPassword(password)
	if err != nil {
		return err
	}

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
	`, a.Table, a.Email, a.PasswordHash, a.DisplayName, a.Role)

	if _, err := importer.db.Exec(context, insertQuery, email, hash, "Admin", string(sec.RoleAdmin)); err != nil {
		return fmt.Errorf("importer: create admin account: %w", err)
	}

	importer.logger.Info("admin_account_created", slog.String("email", email))
	return nil
}

func decodeCategories(reader io.Reader) ([]categoryEntry, error) {
	var entries []categoryEntry
	if err := json.NewDecoder(reader).Decode(&entries); err != nil {
		return nil, fmt.Errorf("importer: decode categories json: %w", err)
	}
	return entries, nil
}

func headerIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for position, name := range header {
		columns[strings.TrimSpace(strings.ToLower(name))] = position
	}
	return columns
}

func parseWebsiteRow(columns map[string]int, record []string) websiteRow {
	field := func(name string) string {
		position, ok := columns[name]
		if !ok || position >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[position])
	}
	optional := func(name string) *string {
		value := field(name)
		if value == "" {
			return nil
		}
		return &value
	}

	return websiteRow{
		Slug:          field("slug"),
		Title:         field("title"),
		Description:   optional("description"),
		OriginalURL:   field("original_url"),
		ThumbnailURL:  optional("thumbnail"),
		ImageURL:      optional("image_url"),
		CategorySlugs: splitSlugs(field("categories")),
	}
}

func splitSlugs(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	slugs := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			slugs = append(slugs, trimmed)
		}
	}
	return slugs
}
