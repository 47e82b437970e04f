package trainers

import "context"

type Repository interface {
	Create(ctx context.Context, t Trainer) error
	Save(ctx context.Context, t Trainer) error
	GetByID(ctx context.Context, id string) (Trainer, error)
	List(ctx context.Context) ([]Trainer, error)
	Update(ctx context.Context, t Trainer) error
	Delete(ctx context.Context, id string) error
}
