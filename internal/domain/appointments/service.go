package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"dog-training-api/internal/domain/dogs"
	"dog-training-api/internal/domain/trainers"
	"dog-training-api/internal/domain/users"
	"dog-training-api/internal/notify"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("appointment not found")
	// ErrBadReference: la cita apunta a un owner/dog/trainer que no existe.
	// Se valida ANTES del write, así un create fallido no persiste nada.
	ErrBadReference = errors.New("referenced record not found")
)

// Directorios de los otros módulos; interfaces locales para no acoplar.
type OwnerDirectory interface {
	GetByID(ctx context.Context, id string) (users.User, error)
}

type DogDirectory interface {
	GetByID(ctx context.Context, id string) (dogs.Dog, error)
}

type TrainerDirectory interface {
	GetByID(ctx context.Context, id string) (trainers.Trainer, error)
}

type Service struct {
	repo       Repository
	ownerDir   OwnerDirectory
	dogDir     DogDirectory
	trainerDir TrainerDirectory
	queue      notify.Enqueuer
	now        func() time.Time
	log        zerolog.Logger
}

func NewService(
	repo Repository,
	ownerDir OwnerDirectory,
	dogDir DogDirectory,
	trainerDir TrainerDirectory,
	queue notify.Enqueuer,
	log zerolog.Logger,
) *Service {
	return &Service{
		repo:       repo,
		ownerDir:   ownerDir,
		dogDir:     dogDir,
		trainerDir: trainerDir,
		queue:      queue,
		now:        time.Now,
		log:        log.With().Str("component", "appointments").Logger(),
	}
}

type Input struct {
	DogID      string
	OwnerID    string
	TrainerID  string
	StartTime  time.Time
	EndTime    time.Time
	Location   string
	Purpose    string
	BalanceDue string
}

func (in Input) trimmed() Input {
	in.DogID = strings.TrimSpace(in.DogID)
	in.OwnerID = strings.TrimSpace(in.OwnerID)
	in.TrainerID = strings.TrimSpace(in.TrainerID)
	in.Location = strings.TrimSpace(in.Location)
	in.Purpose = strings.TrimSpace(in.Purpose)
	in.BalanceDue = strings.TrimSpace(in.BalanceDue)
	return in
}

func (in Input) validate() error {
	if in.DogID == "" || in.OwnerID == "" || in.TrainerID == "" {
		return ErrInvalidInput
	}
	if in.StartTime.IsZero() || in.EndTime.IsZero() {
		return ErrInvalidInput
	}
	return nil
}

// Create valida las tres referencias, persiste y encola la confirmación.
// El mail es un side effect post-commit: si falla no afecta la cita creada.
func (s *Service) Create(ctx context.Context, in Input) (Appointment, error) {
	in = in.trimmed()
	if err := in.validate(); err != nil {
		return Appointment{}, err
	}

	owner, err := s.ownerDir.GetByID(ctx, in.OwnerID)
	if err != nil {
		return Appointment{}, fmt.Errorf("%w: owner %s", ErrBadReference, in.OwnerID)
	}
	dog, err := s.dogDir.GetByID(ctx, in.DogID)
	if err != nil {
		return Appointment{}, fmt.Errorf("%w: dog %s", ErrBadReference, in.DogID)
	}
	if _, err := s.trainerDir.GetByID(ctx, in.TrainerID); err != nil {
		return Appointment{}, fmt.Errorf("%w: trainer %s", ErrBadReference, in.TrainerID)
	}

	now := s.now()
	a := Appointment{
		ID:         uuid.NewString(),
		DogID:      in.DogID,
		OwnerID:    in.OwnerID,
		TrainerID:  in.TrainerID,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		Location:   in.Location,
		Purpose:    in.Purpose,
		BalanceDue: in.BalanceDue,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}

	msg, err := notify.ConfirmationMessage(notify.AppointmentEmail{
		To:        owner.Email,
		OwnerName: owner.FullName(),
		DogName:   dog.Name,
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
		Location:  a.Location,
		Purpose:   a.Purpose,
	})
	if err != nil {
		s.log.Error().Err(err).Str("appointment", a.ID).Msg("confirmation render failed")
		return a, nil
	}
	s.queue.Enqueue(msg)

	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Appointment{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, ownerID string) ([]Appointment, error) {
	return s.repo.List(ctx, strings.TrimSpace(ownerID))
}

func (s *Service) ListStartingBetween(ctx context.Context, from, to time.Time) ([]Appointment, error) {
	return s.repo.ListStartingBetween(ctx, from, to)
}

// Overwrite es el PUT: reemplazo completo, sin re-enviar confirmación.
func (s *Service) Overwrite(ctx context.Context, id string, in Input) (Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Appointment{}, ErrNotFound
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}

	in = in.trimmed()
	if err := in.validate(); err != nil {
		return Appointment{}, err
	}

	a := Appointment{
		ID:         id,
		DogID:      in.DogID,
		OwnerID:    in.OwnerID,
		TrainerID:  in.TrainerID,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		Location:   in.Location,
		Purpose:    in.Purpose,
		BalanceDue: in.BalanceDue,
		CreatedAt:  current.CreatedAt,
		UpdatedAt:  s.now(),
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

// Delete no cascadea a los training reports asociados (comportamiento del
// original; los reports quedan y se listan por appointment ID).
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, strings.TrimSpace(id))
}
