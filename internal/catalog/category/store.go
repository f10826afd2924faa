package category

import "context"

type Repository interface {
	List(context context.Context, f Filter, limit, offset int) ([]*Category, error)
	Count(context context.Context, f Filter) (int, error)
	FindBySlug(context context.Context, slug string, includeInactive bool) (*Category, error)
	Create(context context.Context, c *Category) error
	Update(context context.Context, id int64, patch *Patch) error
	Delete(context context.Context, id int64) error
}
