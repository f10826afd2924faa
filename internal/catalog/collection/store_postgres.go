package collection

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uilove/uilove/internal/platform/apperr"
	"github.com/uilove/uilove/internal/platform/database/schema"
	"github.com/uilove/uilove/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func selectColumns() string {
	c := schema.CatalogCollection
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s",
		c.ID, c.Slug, c.Title, c.Description, c.WebsiteCount, c.IsActive)
}

// listQuery builds the paged listing statement. Collections list in
// insertion (id) order.
func listQuery(filter Filter) string {
	c := schema.CatalogCollection

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf("SELECT %s FROM %s WHERE 1=1", selectColumns(), c.Table))
	if !filter.IncludeInactive {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = TRUE", c.IsActive))
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s ASC LIMIT $1 OFFSET $2", c.ID))
	return queryBuilder.String()
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Collection, error) {
	rows, err := repository.db.Query(context, listQuery(filter), limit, offset)
	if err != nil {
		return nil, dberr.Wrap(err, "Collection")
	}
	defer rows.Close()

	collections := make([]*Collection, 0)
	for rows.Next() {
		entry := &Collection{}
		err := rows.Scan(&entry.ID, &entry.Slug, &entry.Title, &entry.Description,
			&entry.WebsiteCount, &entry.IsActive)
		if err != nil {
			return nil, dberr.Wrap(err, "Collection")
		}
		collections = append(collections, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Collection")
	}

	return collections, nil
}

func (repository *PostgresRepository) Count(context context.Context, filter Filter) (int, error) {
	c := schema.CatalogCollection

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE 1=1", c.Table)
	if !filter.IncludeInactive {
		query += fmt.Sprintf(" AND %s = TRUE", c.IsActive)
	}

	var total int
	if err := repository.db.QueryRow(context, query).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "Collection")
	}

	return total, nil
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string, includeInactive bool) (*Collection, error) {
	c := schema.CatalogCollection

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", selectColumns(), c.Table, c.Slug)
	if !includeInactive {
		query += fmt.Sprintf(" AND %s = TRUE", c.IsActive)
	}

	entry := &Collection{}
	err := repository.db.QueryRow(context, query, slug).Scan(
		&entry.ID, &entry.Slug, &entry.Title, &entry.Description,
		&entry.WebsiteCount, &entry.IsActive)
	if err != nil {
		return nil, dberr.Wrap(err, "Collection")
	}

	return entry, nil
}

func (repository *PostgresRepository) Create(context context.Context, entry *Collection) error {
	c := schema.CatalogCollection

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s
	`, c.Table, c.Slug, c.Title, c.Description, c.IsActive, c.ID, c.WebsiteCount)

	err := repository.db.QueryRow(context, query,
		entry.Slug, entry.Title, entry.Description, entry.IsActive,
	).Scan(&entry.ID, &entry.WebsiteCount)
	if err != nil {
		return dberr.Wrap(err, "Collection")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, id int64, patch *Patch) error {
	c := schema.CatalogCollection

	var sets []string
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Slug != nil {
		set(c.Slug, *patch.Slug)
	}
	if patch.Title != nil {
		set(c.Title, *patch.Title)
	}
	if patch.Description != nil {
		set(c.Description, *patch.Description)
	}
	if patch.IsActive != nil {
		set(c.IsActive, *patch.IsActive)
	}

	if len(sets) == 0 {
		var exists bool
		existsQuery := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)", c.Table, c.ID)
		if err := repository.db.QueryRow(context, existsQuery, id).Scan(&exists); err != nil {
			return dberr.Wrap(err, "Collection")
		}
		if !exists {
			return apperr.NotFound("Collection")
		}
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		c.Table, strings.Join(sets, ", "), c.ID, len(args))

	result, err := repository.db.Exec(context, query, args...)
	if err != nil {
		return dberr.Wrap(err, "Collection")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Collection")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	c := schema.CatalogCollection

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", c.Table, c.ID)
	result, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Collection")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Collection")
	}

	return nil
}
