package ports

import (
	"context"

	"remind/internal/reminder/domain"
)

// Filter narrows a reminder query. UserID is always set; ownership scoping is
// never optional.
type Filter struct {
	UserID string
	Status string
}

// QueryOptions controls pagination and ordering. The service resolves
// defaults before the repository sees them.
type QueryOptions struct {
	Limit    int
	Page     int
	SortBy   string
	SortType string
}

// Offset returns the number of rows to skip for the requested page.
func (o QueryOptions) Offset() int {
	return (o.Page - 1) * o.Limit
}

// Repository abstracts persistence for reminder records. FindByOwner joins id
// and owner in a single predicate so existence can never be observed without
// ownership.
type Repository interface {
	Create(ctx context.Context, reminder domain.Reminder) (domain.Reminder, error)
	Query(ctx context.Context, filter Filter, options QueryOptions) ([]domain.Reminder, error)
	FindByOwner(ctx context.Context, id, userID string) (domain.Reminder, error)
	Update(ctx context.Context, reminder domain.Reminder) (domain.Reminder, error)
	Delete(ctx context.Context, id string) error
}
