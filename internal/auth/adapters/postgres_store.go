package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"remind/internal/auth/domain"
)

// PostgresUserRepo persists users in the auth_users table.
type PostgresUserRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepo returns a UserRepository backed by auth_users.
func NewPostgresUserRepo(pool *pgxpool.Pool) *PostgresUserRepo {
	return &PostgresUserRepo{pool: pool}
}

// EnsureSchema creates the auth_users table when it does not exist yet.
func (r *PostgresUserRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS auth_users (
    id            TEXT PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    display_name  TEXT NOT NULL DEFAULT '',
    role          TEXT NOT NULL DEFAULT 'user',
    status        TEXT NOT NULL DEFAULT 'active',
    password_hash TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL,
    updated_at    TIMESTAMPTZ NOT NULL
)
`)
	return err
}

func (r *PostgresUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	query := `
INSERT INTO auth_users (id, email, display_name, role, status, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
RETURNING id, email, display_name, role, status, password_hash, created_at, updated_at
`
	created, err := r.scanUser(r.pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.DisplayName,
		string(user.Role),
		string(user.Status),
		user.PasswordHash,
		user.CreatedAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.User{}, domain.ErrUserExists
		}
		return domain.User{}, err
	}
	return created, nil
}

func (r *PostgresUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	query := `
SELECT id, email, display_name, role, status, password_hash, created_at, updated_at
FROM auth_users
WHERE lower(email) = lower($1)
`
	user, err := r.scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

func (r *PostgresUserRepo) FindByID(ctx context.Context, id string) (domain.User, error) {
	query := `
SELECT id, email, display_name, role, status, password_hash, created_at, updated_at
FROM auth_users
WHERE id = $1
`
	user, err := r.scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

func (r *PostgresUserRepo) scanUser(row pgx.Row) (domain.User, error) {
	var user domain.User
	var role, status string
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&role,
		&status,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	user.Role = domain.Role(role)
	user.Status = domain.UserStatus(status)
	return user, nil
}
