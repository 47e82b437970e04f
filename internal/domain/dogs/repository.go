package dogs

import "context"

type Repository interface {
	Create(ctx context.Context, d Dog) error
	GetByID(ctx context.Context, id string) (Dog, error)
	// List con ownerID vacío devuelve todos.
	List(ctx context.Context, ownerID string) ([]Dog, error)
	Update(ctx context.Context, d Dog) error
	Delete(ctx context.Context, id string) error
}
