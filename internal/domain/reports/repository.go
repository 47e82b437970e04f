package reports

import "context"

type Repository interface {
	Create(ctx context.Context, tr TrainingReport) error
	GetByID(ctx context.Context, id string) (TrainingReport, error)
	// List con appointmentID vacío devuelve todos.
	List(ctx context.Context, appointmentID string) ([]TrainingReport, error)
	Update(ctx context.Context, tr TrainingReport) error
	Delete(ctx context.Context, id string) error
}
