package postgres

import (
	"context"
	"database/sql"
	"strings"

	"dog-training-api/internal/domain/trainers"
)

type TrainersRepo struct {
	db *sql.DB
}

func NewTrainersRepo(db *sql.DB) *TrainersRepo {
	return &TrainersRepo{db: db}
}

func (r *TrainersRepo) Create(ctx context.Context, t trainers.Trainer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO trainers (
			id, first_name, last_name, username, email, bio, img_url,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		t.ID,
		t.FirstName,
		t.LastName,
		t.Username,
		t.Email,
		t.Bio,
		t.ImgURL,
		t.CreatedAt,
		t.UpdatedAt,
	)
	return err
}

func (r *TrainersRepo) Save(ctx context.Context, t trainers.Trainer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO trainers (
			id, first_name, last_name, username, email, bio, img_url,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			username = EXCLUDED.username,
			email = EXCLUDED.email,
			bio = EXCLUDED.bio,
			img_url = EXCLUDED.img_url,
			updated_at = EXCLUDED.updated_at
	`,
		t.ID,
		t.FirstName,
		t.LastName,
		t.Username,
		t.Email,
		t.Bio,
		t.ImgURL,
		t.CreatedAt,
		t.UpdatedAt,
	)
	return err
}

func (r *TrainersRepo) GetByID(ctx context.Context, id string) (trainers.Trainer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return trainers.Trainer{}, trainers.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, first_name, last_name, username, email, bio, img_url,
			created_at, updated_at
		FROM trainers
		WHERE id = $1
	`, id)

	var t trainers.Trainer
	if err := row.Scan(
		&t.ID,
		&t.FirstName,
		&t.LastName,
		&t.Username,
		&t.Email,
		&t.Bio,
		&t.ImgURL,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return trainers.Trainer{}, trainers.ErrNotFound
		}
		return trainers.Trainer{}, err
	}
	return t, nil
}

func (r *TrainersRepo) List(ctx context.Context) ([]trainers.Trainer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, first_name, last_name, username, email, bio, img_url,
			created_at, updated_at
		FROM trainers
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]trainers.Trainer, 0)
	for rows.Next() {
		var t trainers.Trainer
		if err := rows.Scan(
			&t.ID,
			&t.FirstName,
			&t.LastName,
			&t.Username,
			&t.Email,
			&t.Bio,
			&t.ImgURL,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TrainersRepo) Update(ctx context.Context, t trainers.Trainer) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE trainers
		SET
			first_name = $2,
			last_name = $3,
			username = $4,
			email = $5,
			bio = $6,
			img_url = $7,
			updated_at = $8
		WHERE id = $1
	`,
		t.ID,
		t.FirstName,
		t.LastName,
		t.Username,
		t.Email,
		t.Bio,
		t.ImgURL,
		t.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return trainers.ErrNotFound
	}
	return nil
}

func (r *TrainersRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM trainers WHERE id = $1`, id)
	return err
}
