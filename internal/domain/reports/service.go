package reports

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("report not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type Input struct {
	AppointmentID string
	ReportText    string
}

func (s *Service) Create(ctx context.Context, in Input) (TrainingReport, error) {
	in.AppointmentID = strings.TrimSpace(in.AppointmentID)
	in.ReportText = strings.TrimSpace(in.ReportText)
	if in.AppointmentID == "" || in.ReportText == "" {
		return TrainingReport{}, ErrInvalidInput
	}

	now := s.now()
	tr := TrainingReport{
		ID:            uuid.NewString(),
		AppointmentID: in.AppointmentID,
		ReportText:    in.ReportText,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, tr); err != nil {
		return TrainingReport{}, err
	}
	return tr, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (TrainingReport, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return TrainingReport{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, appointmentID string) ([]TrainingReport, error) {
	return s.repo.List(ctx, strings.TrimSpace(appointmentID))
}

func (s *Service) Overwrite(ctx context.Context, id string, in Input) (TrainingReport, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return TrainingReport{}, ErrNotFound
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return TrainingReport{}, err
	}

	in.AppointmentID = strings.TrimSpace(in.AppointmentID)
	in.ReportText = strings.TrimSpace(in.ReportText)
	if in.AppointmentID == "" || in.ReportText == "" {
		return TrainingReport{}, ErrInvalidInput
	}

	tr := TrainingReport{
		ID:            id,
		AppointmentID: in.AppointmentID,
		ReportText:    in.ReportText,
		CreatedAt:     current.CreatedAt,
		UpdatedAt:     s.now(),
	}
	if err := s.repo.Update(ctx, tr); err != nil {
		return TrainingReport{}, err
	}
	return tr, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, strings.TrimSpace(id))
}
