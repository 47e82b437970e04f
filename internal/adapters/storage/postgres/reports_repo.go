package postgres

import (
	"context"
	"database/sql"
	"strings"

	"dog-training-api/internal/domain/reports"
)

type ReportsRepo struct {
	db *sql.DB
}

func NewReportsRepo(db *sql.DB) *ReportsRepo {
	return &ReportsRepo{db: db}
}

func (r *ReportsRepo) Create(ctx context.Context, tr reports.TrainingReport) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO training_reports (
			id, appointment_id, report_text, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5)
	`,
		tr.ID,
		tr.AppointmentID,
		tr.ReportText,
		tr.CreatedAt,
		tr.UpdatedAt,
	)
	return err
}

func (r *ReportsRepo) GetByID(ctx context.Context, id string) (reports.TrainingReport, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return reports.TrainingReport{}, reports.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, appointment_id, report_text, created_at, updated_at
		FROM training_reports
		WHERE id = $1
	`, id)

	var tr reports.TrainingReport
	if err := row.Scan(
		&tr.ID,
		&tr.AppointmentID,
		&tr.ReportText,
		&tr.CreatedAt,
		&tr.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return reports.TrainingReport{}, reports.ErrNotFound
		}
		return reports.TrainingReport{}, err
	}
	return tr, nil
}

func (r *ReportsRepo) List(ctx context.Context, appointmentID string) ([]reports.TrainingReport, error) {
	q := `
		SELECT id, appointment_id, report_text, created_at, updated_at
		FROM training_reports
	`
	args := []any{}
	if appointmentID != "" {
		q += ` WHERE appointment_id = $1`
		args = append(args, appointmentID)
	}
	q += ` ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reports.TrainingReport, 0)
	for rows.Next() {
		var tr reports.TrainingReport
		if err := rows.Scan(
			&tr.ID,
			&tr.AppointmentID,
			&tr.ReportText,
			&tr.CreatedAt,
			&tr.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}

func (r *ReportsRepo) Update(ctx context.Context, tr reports.TrainingReport) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE training_reports
		SET
			appointment_id = $2,
			report_text = $3,
			updated_at = $4
		WHERE id = $1
	`,
		tr.ID,
		tr.AppointmentID,
		tr.ReportText,
		tr.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return reports.ErrNotFound
	}
	return nil
}

func (r *ReportsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM training_reports WHERE id = $1`, id)
	return err
}
