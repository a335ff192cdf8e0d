package adapters

import (
	"context"
	"sort"
	"strings"
	"sync"

	"remind/internal/reminder/domain"
	"remind/internal/reminder/ports"
)

// MemoryStore keeps reminders in process memory. It backs tests and
// single-node development deployments.
type MemoryStore struct {
	mu        sync.RWMutex
	reminders map[string]domain.Reminder
}

// NewMemoryStore creates an empty in-memory reminder store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reminders: map[string]domain.Reminder{}}
}

// Seed inserts fixture reminders without going through Create. Intended for
// tests and local development data.
func (s *MemoryStore) Seed(reminders ...domain.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range reminders {
		s.reminders[r.ID] = r
	}
}

func (s *MemoryStore) Create(_ context.Context, reminder domain.Reminder) (domain.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reminders[reminder.ID] = reminder
	return reminder, nil
}

func (s *MemoryStore) Query(_ context.Context, filter ports.Filter, options ports.QueryOptions) ([]domain.Reminder, error) {
	s.mu.RLock()
	matched := make([]domain.Reminder, 0, len(s.reminders))
	for _, r := range s.reminders {
		if r.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		matched = append(matched, r)
	}
	s.mu.RUnlock()

	sortReminders(matched, options.SortBy, options.SortType)

	offset := options.Offset()
	if offset >= len(matched) {
		return []domain.Reminder{}, nil
	}
	end := offset + options.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (s *MemoryStore) FindByOwner(_ context.Context, id, userID string) (domain.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reminder, ok := s.reminders[id]
	if !ok || reminder.UserID != userID {
		return domain.Reminder{}, domain.ErrNotFound
	}
	return reminder, nil
}

func (s *MemoryStore) Update(_ context.Context, reminder domain.Reminder) (domain.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reminders[reminder.ID]; !ok {
		return domain.Reminder{}, domain.ErrNotFound
	}
	s.reminders[reminder.ID] = reminder
	return reminder, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reminders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.reminders, id)
	return nil
}

// sortReminders orders the slice by the requested field. Unknown fields fall
// back to createdAt, matching the postgres adapter's column whitelist.
func sortReminders(reminders []domain.Reminder, sortBy, sortType string) {
	desc := !strings.EqualFold(sortType, "asc")
	less := func(a, b domain.Reminder) bool {
		switch sortBy {
		case "dateTime":
			return a.DateTime.Before(b.DateTime)
		case "updatedAt":
			return a.UpdatedAt.Before(b.UpdatedAt)
		case "text":
			return a.Text < b.Text
		case "status":
			return a.Status < b.Status
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(reminders, func(i, j int) bool {
		if desc {
			return less(reminders[j], reminders[i])
		}
		return less(reminders[i], reminders[j])
	})
}

var _ ports.Repository = (*MemoryStore)(nil)
