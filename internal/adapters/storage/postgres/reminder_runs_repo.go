package postgres

import (
	"context"
	"database/sql"

	"dog-training-api/internal/reminder"
)

type ReminderRunsRepo struct {
	db *sql.DB
}

func NewReminderRunsRepo(db *sql.DB) *ReminderRunsRepo {
	return &ReminderRunsRepo{db: db}
}

func (r *ReminderRunsRepo) Get(ctx context.Context, date string) (reminder.Run, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT run_date, ran_at, sent, failed
		FROM reminder_runs
		WHERE run_date = $1
	`, date)

	var run reminder.Run
	if err := row.Scan(&run.Date, &run.RanAt, &run.Sent, &run.Failed); err != nil {
		if err == sql.ErrNoRows {
			return reminder.Run{}, reminder.ErrRunNotFound
		}
		return reminder.Run{}, err
	}
	return run, nil
}

// Record hace upsert por fecha: si dos instancias corren el mismo batch,
// gana el último registro pero no hay fila duplicada.
func (r *ReminderRunsRepo) Record(ctx context.Context, run reminder.Run) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reminder_runs (run_date, ran_at, sent, failed)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (run_date) DO UPDATE SET
			ran_at = EXCLUDED.ran_at,
			sent = EXCLUDED.sent,
			failed = EXCLUDED.failed
	`,
		run.Date,
		run.RanAt,
		run.Sent,
		run.Failed,
	)
	return err
}
