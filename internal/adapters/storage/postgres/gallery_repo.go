package postgres

import (
	"context"
	"database/sql"

	"dog-training-api/internal/domain/gallery"
)

type GalleryRepo struct {
	db *sql.DB
}

func NewGalleryRepo(db *sql.DB) *GalleryRepo {
	return &GalleryRepo{db: db}
}

func (r *GalleryRepo) Create(ctx context.Context, img gallery.Image) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO gallery (id, image_url, created_at)
		VALUES ($1,$2,$3)
	`,
		img.ID,
		img.ImageURL,
		img.CreatedAt,
	)
	return err
}

func (r *GalleryRepo) List(ctx context.Context) ([]gallery.Image, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, image_url, created_at
		FROM gallery
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]gallery.Image, 0)
	for rows.Next() {
		var img gallery.Image
		if err := rows.Scan(&img.ID, &img.ImageURL, &img.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, rows.Err()
}

func (r *GalleryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM gallery WHERE id = $1`, id)
	return err
}
