package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"remind/internal/reminder/domain"
	"remind/internal/reminder/ports"
)

// sortColumns whitelists the fields a caller may sort by. Anything else falls
// back to created_at; sort input never reaches the SQL string directly.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"dateTime":  "date_time",
	"text":      "text",
	"status":    "status",
}

// PostgresStore persists reminders in the reminders table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore returns a Repository backed by the reminders table.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the reminders table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS reminders (
    id         TEXT PRIMARY KEY,
    text       TEXT NOT NULL,
    date_time  TIMESTAMPTZ NOT NULL,
    status     TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL,
    user_id    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS reminders_user_created_idx ON reminders (user_id, created_at DESC)
`)
	return err
}

func (s *PostgresStore) Create(ctx context.Context, reminder domain.Reminder) (domain.Reminder, error) {
	query := `
INSERT INTO reminders (id, text, date_time, status, created_at, updated_at, user_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, text, date_time, status, created_at, updated_at, user_id
`
	return s.scanReminder(s.pool.QueryRow(ctx, query,
		reminder.ID,
		reminder.Text,
		reminder.DateTime,
		reminder.Status,
		reminder.CreatedAt,
		reminder.UpdatedAt,
		reminder.UserID,
	))
}

func (s *PostgresStore) Query(ctx context.Context, filter ports.Filter, options ports.QueryOptions) ([]domain.Reminder, error) {
	column, ok := sortColumns[options.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(options.SortType, "asc") {
		direction = "ASC"
	}

	query := `
SELECT id, text, date_time, status, created_at, updated_at, user_id
FROM reminders
WHERE user_id = $1 AND ($2 = '' OR status = $2)
ORDER BY ` + column + ` ` + direction + `
LIMIT $3 OFFSET $4
`
	rows, err := s.pool.Query(ctx, query, filter.UserID, filter.Status, options.Limit, options.Offset())
	if err != nil {
		return nil, fmt.Errorf("query reminders: %w", err)
	}
	defer rows.Close()

	reminders := []domain.Reminder{}
	for rows.Next() {
		reminder, err := s.scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}

func (s *PostgresStore) FindByOwner(ctx context.Context, id, userID string) (domain.Reminder, error) {
	query := `
SELECT id, text, date_time, status, created_at, updated_at, user_id
FROM reminders
WHERE id = $1 AND user_id = $2
`
	reminder, err := s.scanReminder(s.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Reminder{}, domain.ErrNotFound
		}
		return domain.Reminder{}, err
	}
	return reminder, nil
}

func (s *PostgresStore) Update(ctx context.Context, reminder domain.Reminder) (domain.Reminder, error) {
	query := `
UPDATE reminders
SET text = $2,
    date_time = $3,
    status = $4,
    updated_at = $5
WHERE id = $1
RETURNING id, text, date_time, status, created_at, updated_at, user_id
`
	updated, err := s.scanReminder(s.pool.QueryRow(ctx, query,
		reminder.ID,
		reminder.Text,
		reminder.DateTime,
		reminder.Status,
		reminder.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Reminder{}, domain.ErrNotFound
		}
		return domain.Reminder{}, err
	}
	return updated, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM reminders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) scanReminder(row pgx.Row) (domain.Reminder, error) {
	var reminder domain.Reminder
	err := row.Scan(
		&reminder.ID,
		&reminder.Text,
		&reminder.DateTime,
		&reminder.Status,
		&reminder.CreatedAt,
		&reminder.UpdatedAt,
		&reminder.UserID,
	)
	if err != nil {
		return domain.Reminder{}, err
	}
	return reminder, nil
}

var _ ports.Repository = (*PostgresStore)(nil)
