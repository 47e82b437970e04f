package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"dog-training-api/internal/domain/users"
	"dog-training-api/internal/ports/auth"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	dogs, err := json.Marshal(dogsOrEmpty(u.Dogs))
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, first_name, last_name, username, email, role,
			dogs, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		u.ID,
		u.FirstName,
		u.LastName,
		u.Username,
		u.Email,
		string(u.Role),
		dogs,
		u.CreatedAt,
		u.UpdatedAt,
	)
	return err
}

// Save hace upsert por ID (el registro por UID puede pisar un perfil previo).
func (r *UsersRepo) Save(ctx context.Context, u users.User) error {
	dogs, err := json.Marshal(dogsOrEmpty(u.Dogs))
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, first_name, last_name, username, email, role,
			dogs, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			username = EXCLUDED.username,
			email = EXCLUDED.email,
			role = EXCLUDED.role,
			dogs = EXCLUDED.dogs,
			updated_at = EXCLUDED.updated_at
	`,
		u.ID,
		u.FirstName,
		u.LastName,
		u.Username,
		u.Email,
		string(u.Role),
		dogs,
		u.CreatedAt,
		u.UpdatedAt,
	)
	return err
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, users.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, first_name, last_name, username, email, role,
			dogs, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)

	return scanUser(row)
}

func (r *UsersRepo) List(ctx context.Context) ([]users.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, first_name, last_name, username, email, role,
			dogs, created_at, updated_at
		FROM users
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	dogs, err := json.Marshal(dogsOrEmpty(u.Dogs))
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET
			first_name = $2,
			last_name = $3,
			username = $4,
			email = $5,
			role = $6,
			dogs = $7,
			updated_at = $8
		WHERE id = $1
	`,
		u.ID,
		u.FirstName,
		u.LastName,
		u.Username,
		u.Email,
		string(u.Role),
		dogs,
		u.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	// delete sobre ID inexistente es no-op (semántica doc-store)
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (users.User, error) {
	var u users.User
	var role string
	var dogsRaw []byte

	if err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Username,
		&u.Email,
		&role,
		&dogsRaw,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}

	u.Role = auth.Role(role)
	if len(dogsRaw) > 0 {
		if err := json.Unmarshal(dogsRaw, &u.Dogs); err != nil {
			return users.User{}, err
		}
	}
	return u, nil
}

func dogsOrEmpty(dogs []string) []string {
	if dogs == nil {
		return []string{}
	}
	return dogs
}
