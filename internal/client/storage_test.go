package client

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remind/internal/reminder/domain"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "reminders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	reminder := Reminder{
		ID:        "r1",
		Text:      "backup laptop",
		DateTime:  now.Add(2 * time.Hour),
		Status:    domain.StatusUpcoming,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.Insert(ctx, reminder))

	got, ok, err := store.Get(ctx, "r1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, reminder.Text, got.Text)
	assert.True(t, got.DateTime.Equal(reminder.DateTime))

	got.Status = domain.StatusCompleted
	got.UpdatedAt = now.Add(time.Minute)
	require.NoError(t, store.Update(ctx, got))

	listed, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, domain.StatusCompleted, listed[0].Status)

	require.NoError(t, store.Delete(ctx, "r1"))
	_, ok, err = store.Get(ctx, "r1")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, store.Delete(ctx, "r1"), domain.ErrNotFound)
	assert.ErrorIs(t, store.Update(ctx, reminder), domain.ErrNotFound)
}
