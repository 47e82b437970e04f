package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"dog-training-api/internal/domain/trainers"
)

type trainersRepo struct {
	mu   sync.RWMutex
	byID map[string]trainers.Trainer
}

func NewTrainersRepo() trainers.Repository {
	return &trainersRepo{
		byID: make(map[string]trainers.Trainer),
	}
}

func (r *trainersRepo) Create(ctx context.Context, t trainers.Trainer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(t.ID) == "" {
		return errors.New("trainer id required")
	}
	if _, exists := r.byID[t.ID]; exists {
		return errors.New("trainer already exists")
	}
	r.byID[t.ID] = t
	return nil
}

func (r *trainersRepo) Save(ctx context.Context, t trainers.Trainer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(t.ID) == "" {
		return errors.New("trainer id required")
	}
	r.byID[t.ID] = t
	return nil
}

func (r *trainersRepo) GetByID(ctx context.Context, id string) (trainers.Trainer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return trainers.Trainer{}, trainers.ErrNotFound
	}
	return t, nil
}

func (r *trainersRepo) List(ctx context.Context) ([]trainers.Trainer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]trainers.Trainer, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, t)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *trainersRepo) Update(ctx context.Context, t trainers.Trainer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[t.ID]; !exists {
		return trainers.ErrNotFound
	}
	r.byID[t.ID] = t
	return nil
}

func (r *trainersRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byID, id)
	return nil
}
