package memory

import (
	"context"
	"sync"

	"dog-training-api/internal/reminder"
)

type reminderRunsRepo struct {
	mu     sync.RWMutex
	byDate map[string]reminder.Run
}

func NewReminderRunsRepo() reminder.RunRepository {
	return &reminderRunsRepo{
		byDate: make(map[string]reminder.Run),
	}
}

func (r *reminderRunsRepo) Get(ctx context.Context, date string) (reminder.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, ok := r.byDate[date]
	if !ok {
		return reminder.Run{}, reminder.ErrRunNotFound
	}
	return run, nil
}

func (r *reminderRunsRepo) Record(ctx context.Context, run reminder.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byDate[run.Date] = run
	return nil
}
