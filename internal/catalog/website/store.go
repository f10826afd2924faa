package website

import "context"

type Repository interface {
	List(context context.Context, f Filter, limit, offset int) ([]*Website, error)
	Count(context context.Context, f Filter) (int, error)
	FindByID(context context.Context, id int64) (*Website, error)
	FindBySlug(context context.Context, slug string, includeInactive bool) (*Website, error)
	Create(context context.Context, w *Website) error
	Update(context context.Context, id int64, patch *Patch) error
	Delete(context context.Context, id int64) error
	SetActive(context context.Context, id int64, active bool) error
	IncrementViewCount(context context.Context, id int64, delta int64) error
}
