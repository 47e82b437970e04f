package gallery

import "context"

type Repository interface {
	Create(ctx context.Context, img Image) error
	List(ctx context.Context) ([]Image, error)
	Delete(ctx context.Context, id string) error
}
