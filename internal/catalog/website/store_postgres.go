/*
Package website provides the PostgreSQL implementation for the directory's
data access.

It utilizes advanced Postgres features to deliver a high-performance browsing
experience:
  - JSON Aggregation: Retrieves nested taxonomy sets (categories, styles,
    collections) and the platform in a single round-trip.
  - ILIKE + Trigram Index: Serves case-insensitive substring search over
    title and description.
  - ACID Transactions: Ensures atomicity when updating websites and their
    junction tables.

List and Count deliberately share one filter builder so that pagination
metadata always agrees with the page contents, even when the requested page
is beyond the last one.
*/
package website

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uilove/uilove/internal/platform/apperr"
	"github.com/uilove/uilove/internal/platform/database/schema"
	"github.com/uilove/uilove/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed website store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// selectClause returns the hydrating SELECT used by every read path.
//
// The three taxonomy sets are aggregated as JSON arrays and the platform as
// a JSON object (NULL when the website has none), so a fully hydrated entity
// costs exactly one round-trip.
func selectClause() string {
	w := schema.CatalogWebsite
	p := schema.CatalogPlatform

	tagAgg := func(taxTable, taxID, taxSlug, taxTitle, junctionTable, junctionWebsiteCol, junctionTaxCol string) string {
		return fmt.Sprintf(`COALESCE((
				SELECT json_agg(json_build_object('id', t.%s, 'slug', t.%s, 'title', t.%s) ORDER BY t.%s)
				FROM %s t
				JOIN %s j ON t.%s = j.%s
				WHERE j.%s = w.%s
			), '[]')`,
			taxID, taxSlug, taxTitle, taxTitle,
			taxTable,
			junctionTable, taxID, junctionTaxCol,
			junctionWebsiteCol, w.ID,
		)
	}

	return fmt.Sprintf(`
		SELECT
			w.%s, w.%s, w.%s, w.%s, w.%s, w.%s, w.%s,
			w.%s, w.%s, w.%s, w.%s, w.%s, w.%s,
			CASE WHEN p.%s IS NULL THEN NULL
			     ELSE json_build_object('id', p.%s, 'slug', p.%s, 'title', p.%s, 'url', p.%s)
			END AS platform,
			%s AS categories,
			%s AS styles,
			%s AS collections
		FROM %s w
		LEFT JOIN %s p ON w.%s = p.%s
	`,
		w.ID, w.Slug, w.Title, w.Description, w.OriginalURL, w.ThumbnailURL, w.ImageURL,
		w.PlatformID, w.IsFeatured, w.IsActive, w.ViewCount, w.CreatedAt, w.UpdatedAt,
		p.ID,
		p.ID, p.Slug, p.Title, p.URL,
		tagAgg(schema.CatalogCategory.Table, schema.CatalogCategory.ID, schema.CatalogCategory.Slug, schema.CatalogCategory.Title,
			schema.WebsiteCategory.Table, schema.WebsiteCategory.WebsiteID, schema.WebsiteCategory.CategoryID),
		tagAgg(schema.CatalogStyle.Table, schema.CatalogStyle.ID, schema.CatalogStyle.Slug, schema.CatalogStyle.Title,
			schema.WebsiteStyle.Table, schema.WebsiteStyle.WebsiteID, schema.WebsiteStyle.StyleID),
		tagAgg(schema.CatalogCollection.Table, schema.CatalogCollection.ID, schema.CatalogCollection.Slug, schema.CatalogCollection.Title,
			schema.WebsiteCollection.Table, schema.WebsiteCollection.WebsiteID, schema.WebsiteCollection.CollectionID),
		w.Table,
		p.Table, w.PlatformID, p.ID,
	)
}

// scanWebsite maps one hydrated row into a domain entity.
func scanWebsite(row pgx.Row) (*Website, error) {
	w := &Website{}
	var platformJSON, categoriesJSON, stylesJSON, collectionsJSON []byte

	err := row.Scan(
		&w.ID, &w.Slug, &w.Title, &w.Description, &w.OriginalURL, &w.ThumbnailURL, &w.ImageURL,
		&w.PlatformID, &w.IsFeatured, &w.IsActive, &w.ViewCount, &w.CreatedAt, &w.UpdatedAt,
		&platformJSON, &categoriesJSON, &stylesJSON, &collectionsJSON,
	)
	if err != nil {
		return nil, err
	}

	if len(platformJSON) > 0 {
		w.Platform = &Platform{}
		if err := json.Unmarshal(platformJSON, w.Platform); err != nil {
			return nil, fmt.Errorf("postgres: failed to unmarshal platform: %w", err)
		}
	}
	if err := json.Unmarshal(categoriesJSON, &w.Categories); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal categories: %w", err)
	}
	if err := json.Unmarshal(stylesJSON, &w.Styles); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal styles: %w", err)
	}
	if err := json.Unmarshal(collectionsJSON, &w.Collections); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal collections: %w", err)
	}

	return w, nil
}

// appendFilters writes the AND-composed predicates for a [Filter] onto the
// query builder and returns the extended positional argument list.
//
// It is the single source of filter truth shared by List and Count, which
// guarantees the pair always evaluates the identical predicate set.
func appendFilters(builder *strings.Builder, args []any, filter Filter) []any {
	w := schema.CatalogWebsite

	if !filter.IncludeInactive {
		builder.WriteString(fmt.Sprintf(" AND w.%s = TRUE", w.IsActive))
	}

	if filter.Featured != nil {
		args = append(args, *filter.Featured)
		builder.WriteString(fmt.Sprintf(" AND w.%s = $%d", w.IsFeatured, len(args)))
	}

	if filter.PlatformID != nil {
		args = append(args, *filter.PlatformID)
		builder.WriteString(fmt.Sprintf(" AND w.%s = $%d", w.PlatformID, len(args)))
	}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		builder.WriteString(fmt.Sprintf(" AND EXISTS (SELECT 1 FROM %s j WHERE j.%s = w.%s AND j.%s = $%d)",
			schema.WebsiteCategory.Table, schema.WebsiteCategory.WebsiteID, w.ID, schema.WebsiteCategory.CategoryID, len(args)))
	}

	if filter.StyleID != nil {
		args = append(args, *filter.StyleID)
		builder.WriteString(fmt.Sprintf(" AND EXISTS (SELECT 1 FROM %s j WHERE j.%s = w.%s AND j.%s = $%d)",
			schema.WebsiteStyle.Table, schema.WebsiteStyle.WebsiteID, w.ID, schema.WebsiteStyle.StyleID, len(args)))
	}

	if filter.CollectionID != nil {
		args = append(args, *filter.CollectionID)
		builder.WriteString(fmt.Sprintf(" AND EXISTS (SELECT 1 FROM %s j WHERE j.%s = w.%s AND j.%s = $%d)",
			schema.WebsiteCollection.Table, schema.WebsiteCollection.WebsiteID, w.ID, schema.WebsiteCollection.CollectionID, len(args)))
	}

	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		builder.WriteString(fmt.Sprintf(" AND (w.%s ILIKE $%d OR w.%s ILIKE $%d)",
			w.Title, len(args), w.Description, len(args)))
	}

	return args
}

// orderClause maps a sort keyword to a deterministic ORDER BY.
//
// The id tiebreak keeps pagination stable when many rows share the primary
// sort value.
func orderClause(sort string) string {
	w := schema.CatalogWebsite

	switch sort {
	case SortPopular:
		return fmt.Sprintf(" ORDER BY w.%s DESC, w.%s DESC", w.ViewCount, w.ID)
	case SortTitle:
		return fmt.Sprintf(" ORDER BY w.%s ASC, w.%s DESC", w.Title, w.ID)
	default:
		return fmt.Sprintf(" ORDER BY w.%s DESC, w.%s DESC", w.CreatedAt, w.ID)
	}
}

// List returns a filtered, ordered, paginated slice of hydrated websites.
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Website, error) {
	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString(selectClause())
	queryBuilder.WriteString(" WHERE 1=1")
	args = appendFilters(&queryBuilder, args, filter)
	queryBuilder.WriteString(orderClause(filter.Sort))

	args = append(args, limit, offset)
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)))

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "Website")
	}
	defer rows.Close()

	websites := make([]*Website, 0)
	for rows.Next() {
		w, err := scanWebsite(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "Website")
		}
		websites = append(websites, w)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Website")
	}

	return websites, nil
}

// Count returns the total number of rows matching the filter.
func (repository *PostgresRepository) Count(context context.Context, filter Filter) (int, error) {
	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString(fmt.Sprintf("SELECT COUNT(*) FROM %s w WHERE 1=1", schema.CatalogWebsite.Table))
	args = appendFilters(&queryBuilder, args, filter)

	var total int
	if err := repository.db.QueryRow(context, queryBuilder.String(), args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "Website")
	}

	return total, nil
}

// FindByID retrieves a single website by primary key, regardless of active state.
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Website, error) {
	query := selectClause() + fmt.Sprintf(" WHERE w.%s = $1", schema.CatalogWebsite.ID)

	w, err := scanWebsite(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Website")
	}

	return w, nil
}

// FindBySlug retrieves a single website by its unique slug.
//
// Inactive entries are invisible unless includeInactive is set (admin reads).
func (repository *PostgresRepository) FindBySlug(context context.Context, slug string, includeInactive bool) (*Website, error) {
	query := selectClause() + fmt.Sprintf(" WHERE w.%s = $1", schema.CatalogWebsite.Slug)
	if !includeInactive {
		query += fmt.Sprintf(" AND w.%s = TRUE", schema.CatalogWebsite.IsActive)
	}

	w, err := scanWebsite(repository.db.QueryRow(context, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "Website")
	}

	return w, nil
}

// Create persists a new website and its taxonomy links in one transaction.
//
// The generated id and server-side defaults are written back onto the entity.
func (repository *PostgresRepository) Create(context context.Context, w *Website) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "Website")
	}
	defer transaction.Rollback(context)

	ws := schema.CatalogWebsite
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s, %s, %s, %s
	`,
		ws.Table,
		ws.Slug, ws.Title, ws.Description, ws.OriginalURL, ws.ThumbnailURL, ws.ImageURL,
		ws.PlatformID, ws.IsFeatured, ws.IsActive,
		ws.ID, ws.ViewCount, ws.CreatedAt, ws.UpdatedAt,
	)

	err = transaction.QueryRow(context, query,
		w.Slug, w.Title, w.Description, w.OriginalURL, w.ThumbnailURL, w.ImageURL,
		w.PlatformID, w.IsFeatured, w.IsActive,
	).Scan(&w.ID, &w.ViewCount, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Website")
	}

	if err := repository.syncJunctions(context, transaction, w.ID, w.CategoryIDs, w.StyleIDs, w.CollectionIDs); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "Website")
	}

	return nil
}

// Update applies a partial update and replaces any provided relation sets,
// all inside one transaction.
func (repository *PostgresRepository) Update(context context.Context, id int64, patch *Patch) error {
	ws := schema.CatalogWebsite

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf("UPDATE %s SET %s = NOW()", ws.Table, ws.UpdatedAt))

	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", column, len(args)))
	}

	if patch.Slug != nil {
		set(ws.Slug, *patch.Slug)
	}
	if patch.Title != nil {
		set(ws.Title, *patch.Title)
	}
	if patch.Description != nil {
		set(ws.Description, *patch.Description)
	}
	if patch.OriginalURL != nil {
		set(ws.OriginalURL, *patch.OriginalURL)
	}
	if patch.ThumbnailURL != nil {
		set(ws.ThumbnailURL, *patch.ThumbnailURL)
	}
	if patch.ImageURL != nil {
		set(ws.ImageURL, *patch.ImageURL)
	}
	if patch.PlatformID != nil {
		set(ws.PlatformID, *patch.PlatformID)
	}
	if patch.IsFeatured != nil {
		set(ws.IsFeatured, *patch.IsFeatured)
	}
	if patch.IsActive != nil {
		set(ws.IsActive, *patch.IsActive)
	}

	args = append(args, id)
	queryBuilder.WriteString(fmt.Sprintf(" WHERE %s = $%d", ws.ID, len(args)))

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "Website")
	}
	defer transaction.Rollback(context)

	result, err := transaction.Exec(context, queryBuilder.String(), args...)
	if err != nil {
		return dberr.Wrap(err, "Website")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Website")
	}

	if err := repository.syncJunctions(context, transaction, id, patch.CategoryIDs, patch.StyleIDs, patch.CollectionIDs); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "Website")
	}

	return nil
}

// Delete removes a website permanently. Junction rows cascade away.
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.CatalogWebsite.Table, schema.CatalogWebsite.ID)

	result, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Website")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Website")
	}

	return nil
}

// SetActive toggles the soft-delete flag.
func (repository *PostgresRepository) SetActive(context context.Context, id int64, active bool) error {
	ws := schema.CatalogWebsite
	query := fmt.Sprintf("UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2", ws.Table, ws.IsActive, ws.UpdatedAt, ws.ID)

	result, err := repository.db.Exec(context, query, active, id)
	if err != nil {
		return dberr.Wrap(err, "Website")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Website")
	}

	return nil
}

// IncrementViewCount applies an atomic counter bump.
//
// It deliberately does not touch updated_at: a page view is not an edit.
func (repository *PostgresRepository) IncrementViewCount(context context.Context, id int64, delta int64) error {
	ws := schema.CatalogWebsite
	query := fmt.Sprintf("UPDATE %s SET %s = %s + $1 WHERE %s = $2", ws.Table, ws.ViewCount, ws.ViewCount, ws.ID)

	if _, err := repository.db.Exec(context, query, delta, id); err != nil {
		return dberr.Wrap(err, "Website")
	}

	return nil
}

// syncJunctions replaces any non-nil relation sets for a website.
//
// nil slices are left untouched; empty non-nil slices clear the set.
func (repository *PostgresRepository) syncJunctions(context context.Context, transaction pgx.Tx, websiteID int64, categoryIDs, styleIDs, collectionIDs []int64) error {
	if categoryIDs != nil {
		err := repository.syncJunction(context, transaction,
			schema.WebsiteCategory.Table, schema.WebsiteCategory.WebsiteID, schema.WebsiteCategory.CategoryID,
			schema.CatalogCategory.Table, schema.CatalogCategory.ID,
			websiteID, categoryIDs)
		if err != nil {
			return err
		}
	}

	if styleIDs != nil {
		err := repository.syncJunction(context, transaction,
			schema.WebsiteStyle.Table, schema.WebsiteStyle.WebsiteID, schema.WebsiteStyle.StyleID,
			schema.CatalogStyle.Table, schema.CatalogStyle.ID,
			websiteID, styleIDs)
		if err != nil {
			return err
		}
	}

	if collectionIDs != nil {
		err := repository.syncJunction(context, transaction,
			schema.WebsiteCollection.Table, schema.WebsiteCollection.WebsiteID, schema.WebsiteCollection.CollectionID,
			schema.CatalogCollection.Table, schema.CatalogCollection.ID,
			websiteID, collectionIDs)
		if err != nil {
			return err
		}
	}

	return nil
}

// syncJunction replaces one junction set wholesale: clear, then re-insert.
//
// The insert SELECTs against the taxonomy table, so ids that do not resolve
// to a real taxonomy row simply produce no junction row. ON CONFLICT DO
// NOTHING absorbs duplicate ids in the input.
func (repository *PostgresRepository) syncJunction(context context.Context, transaction pgx.Tx, junctionTable, websiteCol, taxonomyCol, taxonomyTable, taxonomyIDCol string, websiteID int64, ids []int64) error {
	delQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", junctionTable, websiteCol)
	if _, err := transaction.Exec(context, delQuery, websiteID); err != nil {
		return dberr.Wrap(err, "Website relations")
	}

	if len(ids) == 0 {
		return nil
	}

	insQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		SELECT $1, t.%s FROM %s t WHERE t.%s = ANY($2)
		ON CONFLICT DO NOTHING
	`, junctionTable, websiteCol, taxonomyCol, taxonomyIDCol, taxonomyTable, taxonomyIDCol)

	if _, err := transaction.Exec(context, insQuery, websiteID, ids); err != nil {
		return dberr.Wrap(err, "Website relations")
	}

	return nil
}
