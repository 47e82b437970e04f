package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"dog-training-api/internal/domain/reports"
)

type reportsRepo struct {
	mu   sync.RWMutex
	byID map[string]reports.TrainingReport
}

func NewReportsRepo() reports.Repository {
	return &reportsRepo{
		byID: make(map[string]reports.TrainingReport),
	}
}

func (r *reportsRepo) Create(ctx context.Context, tr reports.TrainingReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(tr.ID) == "" {
		return errors.New("report id required")
	}
	if _, exists := r.byID[tr.ID]; exists {
		return errors.New("report already exists")
	}
	r.byID[tr.ID] = tr
	return nil
}

func (r *reportsRepo) GetByID(ctx context.Context, id string) (reports.TrainingReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tr, ok := r.byID[id]
	if !ok {
		return reports.TrainingReport{}, reports.ErrNotFound
	}
	return tr, nil
}

func (r *reportsRepo) List(ctx context.Context, appointmentID string) ([]reports.TrainingReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]reports.TrainingReport, 0)
	for _, tr := range r.byID {
		if appointmentID == "" || tr.AppointmentID == appointmentID {
			out = append(out, tr)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *reportsRepo) Update(ctx context.Context, tr reports.TrainingReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[tr.ID]; !exists {
		return reports.ErrNotFound
	}
	r.byID[tr.ID] = tr
	return nil
}

func (r *reportsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byID, id)
	return nil
}
