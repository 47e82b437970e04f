package postgres

import (
	"context"
	"database/sql"
	"strings"

	"dog-training-api/internal/domain/dogs"
)

type DogsRepo struct {
	db *sql.DB
}

func NewDogsRepo(db *sql.DB) *DogsRepo {
	return &DogsRepo{db: db}
}

func (r *DogsRepo) Create(ctx context.Context, d dogs.Dog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dogs (
			id, name, age, breed, weight, additional_info, owner_id,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		d.ID,
		d.Name,
		d.Age,
		d.Breed,
		d.Weight,
		d.AdditionalInfo,
		d.OwnerID,
		d.CreatedAt,
		d.UpdatedAt,
	)
	return err
}

func (r *DogsRepo) GetByID(ctx context.Context, id string) (dogs.Dog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return dogs.Dog{}, dogs.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, name, age, breed, weight, additional_info, owner_id,
			created_at, updated_at
		FROM dogs
		WHERE id = $1
	`, id)

	var d dogs.Dog
	if err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Age,
		&d.Breed,
		&d.Weight,
		&d.AdditionalInfo,
		&d.OwnerID,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return dogs.Dog{}, dogs.ErrNotFound
		}
		return dogs.Dog{}, err
	}
	return d, nil
}

func (r *DogsRepo) List(ctx context.Context, ownerID string) ([]dogs.Dog, error) {
	q := `
		SELECT
			id, name, age, breed, weight, additional_info, owner_id,
			created_at, updated_at
		FROM dogs
	`
	args := []any{}
	if ownerID != "" {
		q += ` WHERE owner_id = $1`
		args = append(args, ownerID)
	}
	q += ` ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dogs.Dog, 0)
	for rows.Next() {
		var d dogs.Dog
		if err := rows.Scan(
			&d.ID,
			&d.Name,
			&d.Age,
			&d.Breed,
			&d.Weight,
			&d.AdditionalInfo,
			&d.OwnerID,
			&d.CreatedAt,
			&d.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DogsRepo) Update(ctx context.Context, d dogs.Dog) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE dogs
		SET
			name = $2,
			age = $3,
			breed = $4,
			weight = $5,
			additional_info = $6,
			owner_id = $7,
			updated_at = $8
		WHERE id = $1
	`,
		d.ID,
		d.Name,
		d.Age,
		d.Breed,
		d.Weight,
		d.AdditionalInfo,
		d.OwnerID,
		d.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return dogs.ErrNotFound
	}
	return nil
}

func (r *DogsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM dogs WHERE id = $1`, id)
	return err
}
