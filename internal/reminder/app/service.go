package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"remind/internal/logging"
	"remind/internal/reminder/domain"
	"remind/internal/reminder/ports"
)

const (
	defaultQueryLimit = 10
	defaultSortBy     = "createdAt"

	// SortAsc and SortDesc are the accepted sort directions.
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Update carries the fields of a partial reminder update. Nil fields are left
// untouched. Status is not validated against the canonical values; callers
// may store any string.
type Update struct {
	Text     *string
	DateTime *time.Time
	Status   *string
}

// IsEmpty reports whether the update changes nothing.
func (u Update) IsEmpty() bool {
	return u.Text == nil && u.DateTime == nil && u.Status == nil
}

// Service implements reminder business logic on top of a Repository. Every
// operation is scoped to the owning user; the ownership check is re-executed
// on each call rather than cached.
type Service struct {
	repo   ports.Repository
	logger logging.Logger
	now    func() time.Time
}

// NewService constructs a reminder service.
func NewService(repo ports.Repository, logger logging.Logger) *Service {
	return &Service{repo: repo, logger: logging.OrNop(logger), now: time.Now}
}

// WithNow allows tests to control the clock.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Create persists a new reminder owned by userID. The stored status is left
// empty; clients classify upcoming/overdue from the clock at read time.
func (s *Service) Create(ctx context.Context, userID, text string, dateTime time.Time) (domain.Reminder, error) {
	now := s.now()
	reminder := domain.Reminder{
		ID:        uuid.NewString(),
		Text:      text,
		DateTime:  dateTime,
		CreatedAt: now,
		UpdatedAt: now,
		UserID:    userID,
	}
	created, err := s.repo.Create(ctx, reminder)
	if err != nil {
		return domain.Reminder{}, fmt.Errorf("create reminder: %w", err)
	}
	s.logger.Debug("created reminder %s for user %s", created.ID, userID)
	return created, nil
}

// Query returns a page of the user's reminders. Limit defaults to 10, page to
// 1 and ordering to createdAt descending when not supplied.
func (s *Service) Query(ctx context.Context, filter ports.Filter, options ports.QueryOptions) ([]domain.Reminder, error) {
	if options.Limit <= 0 {
		options.Limit = defaultQueryLimit
	}
	if options.Page <= 0 {
		options.Page = 1
	}
	if options.SortBy == "" {
		options.SortBy = defaultSortBy
	}
	if options.SortType != SortAsc {
		options.SortType = SortDesc
	}
	return s.repo.Query(ctx, filter, options)
}

// GetByID fetches a reminder owned by userID. Absence is not an error: the
// second return value is false when the id is missing or owned by another
// user, and callers decide how to surface that.
func (s *Service) GetByID(ctx context.Context, id, userID string) (domain.Reminder, bool, error) {
	reminder, err := s.repo.FindByOwner(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Reminder{}, false, nil
		}
		return domain.Reminder{}, false, err
	}
	return reminder, true, nil
}

// UpdateByID applies a partial update to a reminder owned by userID and
// refreshes its updatedAt timestamp.
func (s *Service) UpdateByID(ctx context.Context, id, userID string, update Update) (domain.Reminder, error) {
	reminder, ok, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return domain.Reminder{}, err
	}
	if !ok {
		return domain.Reminder{}, domain.ErrNotFound
	}

	if update.Text != nil {
		reminder.Text = *update.Text
	}
	if update.DateTime != nil {
		reminder.DateTime = *update.DateTime
	}
	if update.Status != nil {
		reminder.Status = *update.Status
	}
	reminder.UpdatedAt = s.now()

	updated, err := s.repo.Update(ctx, reminder)
	if err != nil {
		return domain.Reminder{}, fmt.Errorf("update reminder: %w", err)
	}
	return updated, nil
}

// DeleteByID permanently removes a reminder owned by userID and returns the
// deleted snapshot.
func (s *Service) DeleteByID(ctx context.Context, id, userID string) (domain.Reminder, error) {
	reminder, ok, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return domain.Reminder{}, err
	}
	if !ok {
		return domain.Reminder{}, domain.ErrNotFound
	}
	if err := s.repo.Delete(ctx, reminder.ID); err != nil {
		return domain.Reminder{}, fmt.Errorf("delete reminder: %w", err)
	}
	s.logger.Debug("deleted reminder %s for user %s", reminder.ID, userID)
	return reminder, nil
}
