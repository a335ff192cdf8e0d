package http

import (
	"time"

	"remind/internal/reminder/domain"
)

// errorResponse is the JSON body for every failed request.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// reminderDTO is the wire shape of a reminder. Field names and the ISO-8601
// timestamp encoding are part of the public contract.
type reminderDTO struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	DateTime  time.Time `json:"dateTime"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	UserID    string    `json:"userId"`
}

func toReminderDTO(r domain.Reminder) reminderDTO {
	return reminderDTO{
		ID:        r.ID,
		Text:      r.Text,
		DateTime:  r.DateTime,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		UserID:    r.UserID,
	}
}

func toReminderDTOs(reminders []domain.Reminder) []reminderDTO {
	out := make([]reminderDTO, 0, len(reminders))
	for _, r := range reminders {
		out = append(out, toReminderDTO(r))
	}
	return out
}
