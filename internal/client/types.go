package client

import "time"

// Reminder is the wire shape served by the API, decoded for presentation.
type Reminder struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	DateTime  time.Time `json:"dateTime"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
	UserID    string    `json:"userId,omitempty"`
}

// CreateReminderData carries the fields needed to create a reminder.
type CreateReminderData struct {
	Text     string
	DateTime time.Time
}

// UpdateReminderData carries a partial update; nil fields are left untouched.
type UpdateReminderData struct {
	Text     *string
	DateTime *time.Time
	Status   *string
}

// IsEmpty reports whether the update changes nothing.
func (u UpdateReminderData) IsEmpty() bool {
	return u.Text == nil && u.DateTime == nil && u.Status == nil
}

// ListOptions narrows and pages a reminder listing.
type ListOptions struct {
	Status string
	Limit  int
	Page   int
}
