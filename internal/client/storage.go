package client

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"remind/internal/reminder/domain"
)

// Store is the local persistence capability the client service falls back to
// when no server is configured. Injected so it can be swapped or mocked.
type Store interface {
	List(ctx context.Context) ([]Reminder, error)
	Get(ctx context.Context, id string) (Reminder, bool, error)
	Insert(ctx context.Context, reminder Reminder) error
	Update(ctx context.Context, reminder Reminder) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// SQLiteStore keeps reminders in a local SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath and ensures the
// reminders table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL keeps readers and the occasional writer from blocking each other.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS reminders (
			id         TEXT PRIMARY KEY,
			text       TEXT NOT NULL,
			date_time  TEXT NOT NULL,
			status     TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Reminder, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, date_time, status, created_at, updated_at
		FROM reminders
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()

	reminders := []Reminder{}
	for rows.Next() {
		reminder, err := scanReminder(rows.Scan)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (Reminder, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, text, date_time, status, created_at, updated_at
		FROM reminders
		WHERE id = ?
	`, id)
	reminder, err := scanReminder(row.Scan)
	if err == sql.ErrNoRows {
		return Reminder{}, false, nil
	}
	if err != nil {
		return Reminder{}, false, err
	}
	return reminder, true, nil
}

func (s *SQLiteStore) Insert(ctx context.Context, r Reminder) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reminders (id, text, date_time, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, r.ID, r.Text, r.DateTime.Format(time.RFC3339), r.Status,
		r.CreatedAt.Format(time.RFC3339), r.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert reminder: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Update(ctx context.Context, r Reminder) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE reminders
		SET text = ?, date_time = ?, status = ?, updated_at = ?
		WHERE id = ?
	`, r.Text, r.DateTime.Format(time.RFC3339), r.Status, r.UpdatedAt.Format(time.RFC3339), r.ID)
	if err != nil {
		return fmt.Errorf("update reminder: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanReminder(scan func(dest ...any) error) (Reminder, error) {
	var r Reminder
	var dateTime, createdAt, updatedAt string
	if err := scan(&r.ID, &r.Text, &dateTime, &r.Status, &createdAt, &updatedAt); err != nil {
		return Reminder{}, err
	}
	var err error
	if r.DateTime, err = time.Parse(time.RFC3339, dateTime); err != nil {
		return Reminder{}, fmt.Errorf("parse date_time: %w", err)
	}
	if r.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return Reminder{}, fmt.Errorf("parse created_at: %w", err)
	}
	if r.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return Reminder{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return r, nil
}

var _ Store = (*SQLiteStore)(nil)
