package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"remind/internal/reminder/domain"
)

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, IsOverdue(Reminder{DateTime: now.Add(-time.Second), Status: domain.StatusUpcoming}, now))
	assert.False(t, IsOverdue(Reminder{DateTime: now.Add(-time.Second), Status: domain.StatusCompleted}, now))
	assert.False(t, IsOverdue(Reminder{DateTime: now.Add(time.Second), Status: domain.StatusUpcoming}, now))
	// A reminder with no stored status is still overdue once its time passed.
	assert.True(t, IsOverdue(Reminder{DateTime: now.Add(-time.Second)}, now))
}

func TestUpdateStatusesDerivesWithoutMutating(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	input := []Reminder{
		{ID: "past", DateTime: now.Add(-time.Hour), Status: domain.StatusUpcoming},
		{ID: "done", DateTime: now.Add(-time.Hour), Status: domain.StatusCompleted},
		{ID: "future", DateTime: now.Add(time.Hour), Status: domain.StatusUpcoming},
		{ID: "fresh", DateTime: now.Add(time.Hour)},
	}

	out := UpdateStatuses(input, now)

	assert.Equal(t, domain.StatusOverdue, out[0].Status)
	assert.Equal(t, domain.StatusCompleted, out[1].Status)
	assert.Equal(t, domain.StatusUpcoming, out[2].Status)
	assert.Equal(t, domain.StatusUpcoming, out[3].Status, "missing status classifies as upcoming")

	// Input slice is untouched.
	assert.Equal(t, domain.StatusUpcoming, input[0].Status)
	assert.Empty(t, input[3].Status)
}

func TestDeriveThenAdvanceClock(t *testing.T) {
	created := Reminder{ID: "r1", DateTime: time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)}

	before := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	out := UpdateStatuses([]Reminder{created}, before)
	assert.Equal(t, domain.StatusUpcoming, out[0].Status)

	// Same stored object, later clock: the derived view flips to overdue
	// while the stored status stays untouched.
	after := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	out = UpdateStatuses([]Reminder{created}, after)
	assert.Equal(t, domain.StatusOverdue, out[0].Status)
	assert.Empty(t, created.Status)
}

func TestSortByDateIsStable(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	input := []Reminder{
		{ID: "c", DateTime: base.Add(2 * time.Hour)},
		{ID: "a1", DateTime: base},
		{ID: "a2", DateTime: base},
		{ID: "b", DateTime: base.Add(time.Hour)},
	}

	out := SortByDate(input)

	assert.Equal(t, []string{"a1", "a2", "b", "c"}, ids(out))
	// Ties keep their input order across repeated sorts.
	assert.Equal(t, ids(out), ids(SortByDate(out)))
	// Input order untouched.
	assert.Equal(t, []string{"c", "a1", "a2", "b"}, ids(input))
}

func TestFilterUpcoming(t *testing.T) {
	input := []Reminder{
		{ID: "u", Status: domain.StatusUpcoming},
		{ID: "o", Status: domain.StatusOverdue},
		{ID: "c", Status: domain.StatusCompleted},
	}
	out := FilterUpcoming(input)
	assert.Equal(t, []string{"u"}, ids(out))
}

func ids(reminders []Reminder) []string {
	out := make([]string, len(reminders))
	for i, r := range reminders {
		out[i] = r.ID
	}
	return out
}
