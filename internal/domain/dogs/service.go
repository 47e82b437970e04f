package dogs

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("dog not found")
)

// OwnerUnlinker saca el dog ID del array del dueño. Lo implementa
// users.Service; la interfaz local evita el import cruzado de módulos.
type OwnerUnlinker interface {
	UnlinkOwnedDog(ctx context.Context, ownerID, dogID string) error
}

type Service struct {
	repo     Repository
	unlinker OwnerUnlinker
	now      func() time.Time
}

func NewService(repo Repository, unlinker OwnerUnlinker) *Service {
	return &Service{
		repo:     repo,
		unlinker: unlinker,
		now:      time.Now,
	}
}

type Input struct {
	Name           string
	Age            string
	Breed          string
	Weight         string
	AdditionalInfo string
	OwnerID        string
}

func (in Input) trimmed() Input {
	return Input{
		Name:           strings.TrimSpace(in.Name),
		Age:            strings.TrimSpace(in.Age),
		Breed:          strings.TrimSpace(in.Breed),
		Weight:         strings.TrimSpace(in.Weight),
		AdditionalInfo: strings.TrimSpace(in.AdditionalInfo),
		OwnerID:        strings.TrimSpace(in.OwnerID),
	}
}

func (s *Service) Create(ctx context.Context, in Input) (Dog, error) {
	in = in.trimmed()
	if in.Name == "" || in.OwnerID == "" {
		return Dog{}, ErrInvalidInput
	}

	now := s.now()
	d := Dog{
		ID:             uuid.NewString(),
		Name:           in.Name,
		Age:            in.Age,
		Breed:          in.Breed,
		Weight:         in.Weight,
		AdditionalInfo: in.AdditionalInfo,
		OwnerID:        in.OwnerID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return Dog{}, err
	}
	return d, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Dog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Dog{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, ownerID string) ([]Dog, error) {
	return s.repo.List(ctx, strings.TrimSpace(ownerID))
}

// Overwrite es el PUT: reemplazo completo, preserva solo CreatedAt.
func (s *Service) Overwrite(ctx context.Context, id string, in Input) (Dog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Dog{}, ErrNotFound
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Dog{}, err
	}

	in = in.trimmed()
	if in.Name == "" || in.OwnerID == "" {
		return Dog{}, ErrInvalidInput
	}

	d := Dog{
		ID:             id,
		Name:           in.Name,
		Age:            in.Age,
		Breed:          in.Breed,
		Weight:         in.Weight,
		AdditionalInfo: in.AdditionalInfo,
		OwnerID:        in.OwnerID,
		CreatedAt:      current.CreatedAt,
		UpdatedAt:      s.now(),
	}
	if err := s.repo.Update(ctx, d); err != nil {
		return Dog{}, err
	}
	return d, nil
}

// Delete borra el documento del perro y lo desvincula del array del dueño
// en el mismo code path (antes había dos flujos distintos y quedaban
// referencias colgando).
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}

	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil // delete-on-missing es no-op
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.unlinker != nil && d.OwnerID != "" {
		if err := s.unlinker.UnlinkOwnedDog(ctx, d.OwnerID, id); err != nil {
			// El perro ya no existe; un dueño borrado no debe fallar el delete.
			return nil
		}
	}
	return nil
}
