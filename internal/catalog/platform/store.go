package platform

import "context"

type Repository interface {
	List(context context.Context, limit, offset int) ([]*Platform, error)
	Count(context context.Context) (int, error)
	FindBySlug(context context.Context, slug string) (*Platform, error)
	Create(context context.Context, p *Platform) error
	Update(context context.Context, id int64, patch *Patch) error
	Delete(context context.Context, id int64) error
}
