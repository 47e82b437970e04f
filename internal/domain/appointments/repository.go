package appointments

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, id string) (Appointment, error)
	// List con ownerID vacío devuelve todas.
	List(ctx context.Context, ownerID string) ([]Appointment, error)
	// ListStartingBetween: start_time en [from, to). Lo usa el reminder job.
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]Appointment, error)
	Update(ctx context.Context, a Appointment) error
	Delete(ctx context.Context, id string) error
}
