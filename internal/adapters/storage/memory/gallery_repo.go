package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"dog-training-api/internal/domain/gallery"
)

type galleryRepo struct {
	mu   sync.RWMutex
	byID map[string]gallery.Image
}

func NewGalleryRepo() gallery.Repository {
	return &galleryRepo{
		byID: make(map[string]gallery.Image),
	}
}

func (r *galleryRepo) Create(ctx context.Context, img gallery.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(img.ID) == "" {
		return errors.New("image id required")
	}
	if _, exists := r.byID[img.ID]; exists {
		return errors.New("image already exists")
	}
	r.byID[img.ID] = img
	return nil
}

func (r *galleryRepo) List(ctx context.Context) ([]gallery.Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gallery.Image, 0, len(r.byID))
	for _, img := range r.byID {
		out = append(out, img)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *galleryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byID, id)
	return nil
}
