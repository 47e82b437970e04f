package users

import "context"

type Repository interface {
	// Create falla si el ID ya existe; Save es upsert (semántica doc.set
	// del registro original).
	Create(ctx context.Context, u User) error
	Save(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u User) error
	// Delete sobre un ID inexistente es no-op.
	Delete(ctx context.Context, id string) error
}
