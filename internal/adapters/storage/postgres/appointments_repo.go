package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"dog-training-api/internal/domain/appointments"
)

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (
			id, dog_id, owner_id, trainer_id,
			start_time, end_time,
			location, purpose, balance_due,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		a.ID,
		a.DogID,
		a.OwnerID,
		a.TrainerID,
		a.StartTime,
		a.EndTime,
		a.Location,
		a.Purpose,
		a.BalanceDue,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return appointments.Appointment{}, appointments.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, dog_id, owner_id, trainer_id,
			start_time, end_time,
			location, purpose, balance_due,
			created_at, updated_at
		FROM appointments
		WHERE id = $1
	`, id)

	var a appointments.Appointment
	if err := row.Scan(
		&a.ID,
		&a.DogID,
		&a.OwnerID,
		&a.TrainerID,
		&a.StartTime,
		&a.EndTime,
		&a.Location,
		&a.Purpose,
		&a.BalanceDue,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return appointments.Appointment{}, appointments.ErrNotFound
		}
		return appointments.Appointment{}, err
	}
	return a, nil
}

func (r *AppointmentsRepo) List(ctx context.Context, ownerID string) ([]appointments.Appointment, error) {
	q := `
		SELECT
			id, dog_id, owner_id, trainer_id,
			start_time, end_time,
			location, purpose, balance_due,
			created_at, updated_at
		FROM appointments
	`
	args := []any{}
	if ownerID != "" {
		q += ` WHERE owner_id = $1`
		args = append(args, ownerID)
	}
	q += ` ORDER BY start_time ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListStartingBetween devuelve las citas con start_time en [from, to).
func (r *AppointmentsRepo) ListStartingBetween(ctx context.Context, from, to time.Time) ([]appointments.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, dog_id, owner_id, trainer_id,
			start_time, end_time,
			location, purpose, balance_due,
			created_at, updated_at
		FROM appointments
		WHERE start_time >= $1 AND start_time < $2
		ORDER BY start_time ASC
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAppointments(rows)
}

func (r *AppointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments
		SET
			dog_id = $2,
			owner_id = $3,
			trainer_id = $4,
			start_time = $5,
			end_time = $6,
			location = $7,
			purpose = $8,
			balance_due = $9,
			updated_at = $10
		WHERE id = $1
	`,
		a.ID,
		a.DogID,
		a.OwnerID,
		a.TrainerID,
		a.StartTime,
		a.EndTime,
		a.Location,
		a.Purpose,
		a.BalanceDue,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return appointments.ErrNotFound
	}
	return nil
}

func (r *AppointmentsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	return err
}

func scanAppointments(rows *sql.Rows) ([]appointments.Appointment, error) {
	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		var a appointments.Appointment
		if err := rows.Scan(
			&a.ID,
			&a.DogID,
			&a.OwnerID,
			&a.TrainerID,
			&a.StartTime,
			&a.EndTime,
			&a.Location,
			&a.Purpose,
			&a.BalanceDue,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
