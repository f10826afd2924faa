package style

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
	s := schema.CatalogStyle
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s",
		s.ID, s.Slug, s.Title, s.Description, s.WebsiteCount, s.IsActive)
}

// listQuery builds the paged listing statement. Styles have no curated
// ordering, so they list in insertion (id) order.
func listQuery(filter Filter) string {
	s := schema.CatalogStyle

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf("SELECT %s FROM %s WHERE 1=1", selectColumns(), s.Table))
	if !filter.IncludeInactive {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = TRUE", s.IsActive))
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s ASC LIMIT $1 OFFSET $2", s.ID))
	return queryBuilder.String()
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Style, error) {
	rows, err := repository.db.Query(context, listQuery(filter), limit, offset)
	if err != nil {
		return nil, dberr.Wrap(err, "Style")
	}
	defer rows.Close()

	styles := make([]*Style, 0)
	for rows.Next() {
		entry := &Style{}
		err := rows.Scan(&entry.ID, &entry.Slug, &entry.Title, &entry.Description,
			&entry.WebsiteCount, &entry.IsActive)
		if err != nil {
			return nil, dberr.Wrap(err, "Style")
		}
		styles = append(styles, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Style")
	}

	return styles, nil
}

func (repository *PostgresRepository) Count(context context.Context, filter Filter) (int, error) {
	s := schema.CatalogStyle

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE 1=1", s.Table)
	if !filter.IncludeInactive {
		query += fmt.Sprintf(" AND %s = TRUE", s.IsActive)
	}

	var total int
	if err := repository.db.QueryRow(context, query).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "Style")
	}

	return total, nil
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string, includeInactive bool) (*Style, error) {
	s := schema.CatalogStyle

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", selectColumns(), s.Table, s.Slug)
	if !includeInactive {
		query += fmt.Sprintf(" AND %s = TRUE", s.IsActive)
	}

	entry := &Style{}
	err := repository.db.QueryRow(context, query, slug).Scan(
		&entry.ID, &entry.Slug, &entry.Title, &entry.Description,
		&entry.WebsiteCount, &entry.IsActive)
	if err != nil {
		return nil, dberr.Wrap(err, "Style")
	}

	return entry, nil
}

func (repository *PostgresRepository) Create(context context.Context, entry *Style) error {
	s := schema.CatalogStyle

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s
	`, s.Table, s.Slug, s.Title, s.Description, s.IsActive, s.ID, s.WebsiteCount)

	err := repository.db.QueryRow(context, query,
		entry.Slug, entry.Title, entry.Description, entry.IsActive,
	).Scan(&entry.ID, &entry.WebsiteCount)
	if err != nil {
		return dberr.Wrap(err, "Style")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, id int64, patch *Patch) error {
	s := schema.CatalogStyle

	var sets []string
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Slug != nil {
		set(s.Slug, *patch.Slug)
	}
	if patch.Title != nil {
		set(s.Title, *patch.Title)
	}
	if patch.Description != nil {
		set(s.Description, *patch.Description)
	}
	if patch.IsActive != nil {
		set(s.IsActive, *patch.IsActive)
	}

	if len(sets) == 0 {
		var exists bool
		existsQuery := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)", s.Table, s.ID)
		if err := repository.db.QueryRow(context, existsQuery, id).Scan(&exists); err != nil {
			return dberr.Wrap(err, "Style")
		}
		if !exists {
			return apperr.NotFound("Style")
		}
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		s.Table, strings.Join(sets, ", "), s.ID, len(args))

	result, err := repository.db.Exec(context, query, args...)
	if err != nil {
		return dberr.Wrap(err, "Style")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Style")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	s := schema.CatalogStyle

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", s.Table, s.ID)
	result, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Style")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Style")
	}

	return nil
}
