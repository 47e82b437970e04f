package gallery

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

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

func (s *Service) Add(ctx context.Context, imageURL string) (Image, error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return Image{}, ErrInvalidInput
	}

	img := Image{
		ID:        uuid.NewString(),
		ImageURL:  imageURL,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, img); err != nil {
		return Image{}, err
	}
	return img, nil
}

func (s *Service) List(ctx context.Context) ([]Image, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, strings.TrimSpace(id))
}
