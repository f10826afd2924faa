package platform

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
	p := schema.CatalogPlatform
	return fmt.Sprintf("%s, %s, %s, %s", p.ID, p.Slug, p.Title, p.URL)
}

// listQuery builds the paged listing statement; platforms list in
// insertion (id) order.
func listQuery() string {
	p := schema.CatalogPlatform
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY %s ASC LIMIT $1 OFFSET $2",
		selectColumns(), p.Table, p.ID)
}

func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Platform, error) {
	rows, err := repository.db.Query(context, listQuery(), limit, offset)
	if err != nil {
		return nil, dberr.Wrap(err, "Platform")
	}
	defer rows.Close()

	platforms := make([]*Platform, 0)
	for rows.Next() {
		entry := &Platform{}
		if err := rows.Scan(&entry.ID, &entry.Slug, &entry.Title, &entry.URL); err != nil {
			return nil, dberr.Wrap(err, "Platform")
		}
		platforms = append(platforms, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Platform")
	}

	return platforms, nil
}

func (repository *PostgresRepository) Count(context context.Context) (int, error) {
	p := schema.CatalogPlatform

	var total int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", p.Table)
	if err := repository.db.QueryRow(context, query).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "Platform")
	}

	return total, nil
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Platform, error) {
	p := schema.CatalogPlatform

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", selectColumns(), p.Table, p.Slug)

	entry := &Platform{}
	err := repository.db.QueryRow(context, query, slug).Scan(
		&entry.ID, &entry.Slug, &entry.Title, &entry.URL)
	if err != nil {
		return nil, dberr.Wrap(err, "Platform")
	}

	return entry, nil
}

func (repository *PostgresRepository) Create(context context.Context, entry *Platform) error {
	p := schema.CatalogPlatform

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s
	`, p.Table, p.Slug, p.Title, p.URL, p.ID)

	err := repository.db.QueryRow(context, query,
		entry.Slug, entry.Title, entry.URL,
	).Scan(&entry.ID)
	if err != nil {
		return dberr.Wrap(err, "Platform")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, id int64, patch *Patch) error {
	p := schema.CatalogPlatform

	var sets []string
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Slug != nil {
		set(p.Slug, *patch.Slug)
	}
	if patch.Title != nil {
		set(p.Title, *patch.Title)
	}
	if patch.URL != nil {
		set(p.URL, *patch.URL)
	}

	if len(sets) == 0 {
		var exists bool
		existsQuery := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)", p.Table, p.ID)
		if err := repository.db.QueryRow(context, existsQuery, id).Scan(&exists); err != nil {
			return dberr.Wrap(err, "Platform")
		}
		if !exists {
			return apperr.NotFound("Platform")
		}
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		p.Table, strings.Join(sets, ", "), p.ID, len(args))

	result, err := repository.db.Exec(context, query, args...)
	if err != nil {
		return dberr.Wrap(err, "Platform")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Platform")
	}

	return nil
}

// Delete fails with a Conflict when any website still references the
// platform; the foreign key is RESTRICT, not CASCADE.
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	p := schema.CatalogPlatform

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", p.Table, p.ID)
	result, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Platform")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Platform")
	}

	return nil
}
