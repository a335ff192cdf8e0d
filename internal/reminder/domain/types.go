package domain

import (
	"errors"
	"time"
)

// Status values stored or displayed for a reminder. "overdue" is a derived
// presentation state: the service layer never writes it, clients compute it
// from the current clock at read time. Updates deliberately accept arbitrary
// status strings for wire compatibility.
const (
	StatusUpcoming  = "upcoming"
	StatusOverdue   = "overdue"
	StatusCompleted = "completed"
)

// ErrNotFound covers both a missing id and an id owned by someone else. The
// two causes stay indistinguishable so a caller can never probe for the
// existence of another user's reminder.
var ErrNotFound = errors.New("reminder not found")

// Reminder is a dated note owned by a single user.
type Reminder struct {
	ID        string
	Text      string
	DateTime  time.Time
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    string
}
