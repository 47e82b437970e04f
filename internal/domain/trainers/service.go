package trainers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("trainer not found")
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
	FirstName string
	LastName  string
	Username  string
	Email     string
	Bio       string
	ImgURL    string
}

func (in Input) trimmed() Input {
	return Input{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Username:  strings.TrimSpace(in.Username),
		Email:     strings.TrimSpace(in.Email),
		Bio:       strings.TrimSpace(in.Bio),
		ImgURL:    strings.TrimSpace(in.ImgURL),
	}
}

func (s *Service) build(id string, in Input, createdAt time.Time) Trainer {
	return Trainer{
		ID:        id,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Username:  in.Username,
		Email:     in.Email,
		Bio:       in.Bio,
		ImgURL:    in.ImgURL,
		CreatedAt: createdAt,
		UpdatedAt: s.now(),
	}
}

func (s *Service) Create(ctx context.Context, in Input) (Trainer, error) {
	in = in.trimmed()
	if in.Email == "" {
		return Trainer{}, ErrInvalidInput
	}

	t := s.build(uuid.NewString(), in, s.now())
	if err := s.repo.Create(ctx, t); err != nil {
		return Trainer{}, err
	}
	return t, nil
}

// Register escribe el perfil de trainer keyed por el UID del identity
// provider (flujo /api/auth/registerTrainer). Upsert.
func (s *Service) Register(ctx context.Context, uid string, in Input) (Trainer, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return Trainer{}, ErrInvalidInput
	}
	in = in.trimmed()
	if in.Email == "" {
		return Trainer{}, ErrInvalidInput
	}

	t := s.build(uid, in, s.now())
	if err := s.repo.Save(ctx, t); err != nil {
		return Trainer{}, err
	}
	return t, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Trainer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Trainer{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Trainer, error) {
	return s.repo.List(ctx)
}

func (s *Service) Overwrite(ctx context.Context, id string, in Input) (Trainer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Trainer{}, ErrNotFound
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Trainer{}, err
	}

	t := s.build(id, in.trimmed(), current.CreatedAt)
	if err := s.repo.Update(ctx, t); err != nil {
		return Trainer{}, err
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, strings.TrimSpace(id))
}
