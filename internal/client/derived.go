package client

import (
	"sort"
	"time"

	"remind/internal/reminder/domain"
)

// IsOverdue reports whether the reminder's scheduled time has passed and it
// has not been completed. Pure; the caller supplies the clock reading.
func IsOverdue(r Reminder, now time.Time) bool {
	return r.DateTime.Before(now) && r.Status != domain.StatusCompleted
}

// UpdateStatuses returns a new slice where each reminder's displayed status
// is replaced by "overdue" when IsOverdue holds. Reminders without a stored
// status classify as "upcoming". The input is never mutated and nothing is
// written back to the store.
func UpdateStatuses(reminders []Reminder, now time.Time) []Reminder {
	out := make([]Reminder, len(reminders))
	for i, r := range reminders {
		switch {
		case IsOverdue(r, now):
			r.Status = domain.StatusOverdue
		case r.Status == "":
			r.Status = domain.StatusUpcoming
		}
		out[i] = r
	}
	return out
}

// SortByDate returns a new slice ordered by dateTime ascending. The sort is
// stable: reminders with identical timestamps keep their input order, so
// repeated renders never swap them.
func SortByDate(reminders []Reminder) []Reminder {
	out := make([]Reminder, len(reminders))
	copy(out, reminders)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DateTime.Before(out[j].DateTime)
	})
	return out
}

// FilterUpcoming returns only the reminders whose displayed status is
// "upcoming".
func FilterUpcoming(reminders []Reminder) []Reminder {
	out := make([]Reminder, 0, len(reminders))
	for _, r := range reminders {
		if r.Status == domain.StatusUpcoming {
			out = append(out, r)
		}
	}
	return out
}
