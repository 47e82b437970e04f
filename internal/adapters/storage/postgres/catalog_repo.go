package postgres

import (
	"context"
	"database/sql"
	"strings"

	"dog-training-api/internal/domain/catalog"
)

type CatalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

func (r *CatalogRepo) Create(ctx context.Context, it catalog.Item) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO service_library (
			id, name, description, price, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		it.ID,
		it.Name,
		it.Description,
		it.Price,
		it.CreatedAt,
		it.UpdatedAt,
	)
	return err
}

func (r *CatalogRepo) GetByID(ctx context.Context, id string) (catalog.Item, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return catalog.Item{}, catalog.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, price, created_at, updated_at
		FROM service_library
		WHERE id = $1
	`, id)

	var it catalog.Item
	if err := row.Scan(
		&it.ID,
		&it.Name,
		&it.Description,
		&it.Price,
		&it.CreatedAt,
		&it.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return catalog.Item{}, catalog.ErrNotFound
		}
		return catalog.Item{}, err
	}
	return it, nil
}

func (r *CatalogRepo) List(ctx context.Context) ([]catalog.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, price, created_at, updated_at
		FROM service_library
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Item, 0)
	for rows.Next() {
		var it catalog.Item
		if err := rows.Scan(
			&it.ID,
			&it.Name,
			&it.Description,
			&it.Price,
			&it.CreatedAt,
			&it.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *CatalogRepo) Update(ctx context.Context, it catalog.Item) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE service_library
		SET
			name = $2,
			description = $3,
			price = $4,
			updated_at = $5
		WHERE id = $1
	`,
		it.ID,
		it.Name,
		it.Description,
		it.Price,
		it.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *CatalogRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM service_library WHERE id = $1`, id)
	return err
}
