package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"dog-training-api/internal/ports/auth"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("user not found")
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
	Dogs      []string
}

func (in Input) trimmed() Input {
	return Input{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Username:  strings.TrimSpace(in.Username),
		Email:     strings.TrimSpace(in.Email),
		Dogs:      dedupe(nil, in.Dogs),
	}
}

// Register escribe el perfil keyed por el UID que emitió el identity
// provider. Upsert: registrarse dos veces re-escribe el documento.
func (s *Service) Register(ctx context.Context, uid string, in Input, role auth.Role) (User, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return User{}, ErrInvalidInput
	}
	in = in.trimmed()
	if in.Email == "" {
		return User{}, ErrInvalidInput
	}
	if role == "" {
		role = auth.RoleCustomer
	}

	now := s.now()
	u := User{
		ID:        uid,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Username:  in.Username,
		Email:     in.Email,
		Role:      role,
		Dogs:      in.Dogs,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Save(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Create es el alta por admin, con ID generado.
func (s *Service) Create(ctx context.Context, in Input) (User, error) {
	in = in.trimmed()
	if in.Email == "" {
		return User{}, ErrInvalidInput
	}

	now := s.now()
	u := User{
		ID:        uuid.NewString(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Username:  in.Username,
		Email:     in.Email,
		Role:      auth.RoleCustomer,
		Dogs:      in.Dogs,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Overwrite es el PUT: reemplazo completo del documento. Campos omitidos
// quedan en cero; solo se preservan CreatedAt y Role.
func (s *Service) Overwrite(ctx context.Context, id string, in Input) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, ErrNotFound
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	in = in.trimmed()
	u := User{
		ID:        id,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Username:  in.Username,
		Email:     in.Email,
		Role:      current.Role,
		Dogs:      in.Dogs,
		CreatedAt: current.CreatedAt,
		UpdatedAt: s.now(),
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// MergeDogs hace union de los IDs nuevos con el array existente, sin
// duplicados. Idempotente: repetir el mismo PATCH no cambia nada.
func (s *Service) MergeDogs(ctx context.Context, id string, dogIDs []string) (User, error) {
	u, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return User{}, err
	}

	u.Dogs = dedupe(u.Dogs, dogIDs)
	u.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// UnlinkDog saca un dog ID del array del dueño sin tocar el documento del
// perro. Si el ID no estaba, es no-op.
func (s *Service) UnlinkDog(ctx context.Context, userID, dogID string) (User, error) {
	u, err := s.repo.GetByID(ctx, strings.TrimSpace(userID))
	if err != nil {
		return User{}, err
	}

	dogID = strings.TrimSpace(dogID)
	kept := make([]string, 0, len(u.Dogs))
	for _, d := range u.Dogs {
		if d != dogID {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(u.Dogs) {
		return u, nil
	}

	u.Dogs = kept
	u.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, strings.TrimSpace(id))
}

// dedupe une base+extra preservando el orden de primera aparición.
func dedupe(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, id := range list {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
