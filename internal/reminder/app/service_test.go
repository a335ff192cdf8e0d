package app_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remind/internal/reminder/adapters"
	reminderapp "remind/internal/reminder/app"
	"remind/internal/reminder/domain"
	"remind/internal/reminder/ports"
)

func newService(t *testing.T) (*reminderapp.Service, *adapters.MemoryStore) {
	t.Helper()
	store := adapters.NewMemoryStore()
	return reminderapp.NewService(store, nil), store
}

func strPtr(s string) *string { return &s }

func TestCreateLeavesStatusUnset(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	due := time.Now().Add(time.Hour)
	created, err := service.Create(ctx, "user-1", "Buy milk", due)
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Buy milk", created.Text)
	assert.True(t, created.DateTime.Equal(due))
	assert.Empty(t, created.Status, "status classification is derived at read time, never stored on create")
	assert.Equal(t, "user-1", created.UserID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestCrossOwnerIsolation(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, "owner", "secret", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, ok, err := service.GetByID(ctx, created.ID, "someone-else")
	require.NoError(t, err)
	assert.False(t, ok, "a non-owner must not observe the reminder")

	_, err = service.UpdateByID(ctx, created.ID, "someone-else", reminderapp.Update{Text: strPtr("stolen")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = service.DeleteByID(ctx, created.ID, "someone-else")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The owner still sees the untouched record.
	got, ok, err := service.GetByID(ctx, created.ID, "owner")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "secret", got.Text)
}

func TestQueryDefaultsToTenNewestFirst(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := base
	service.WithNow(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})

	for i := 0; i < 15; i++ {
		_, err := service.Create(ctx, "user-1", fmt.Sprintf("reminder %d", i), base.Add(24*time.Hour))
		require.NoError(t, err)
	}

	page, err := service.Query(ctx, ports.Filter{UserID: "user-1"}, ports.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, page, 10, "default page size is exactly 10")
	for i := 1; i < len(page); i++ {
		assert.True(t, !page[i].CreatedAt.After(page[i-1].CreatedAt), "default order is createdAt descending")
	}
	assert.Equal(t, "reminder 14", page[0].Text)

	second, err := service.Query(ctx, ports.Filter{UserID: "user-1"}, ports.QueryOptions{Page: 2})
	require.NoError(t, err)
	require.Len(t, second, 5)
	assert.Equal(t, "reminder 4", second[0].Text)
}

func TestQueryFiltersByStatus(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	first, err := service.Create(ctx, "user-1", "done already", time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = service.Create(ctx, "user-1", "still open", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = service.UpdateByID(ctx, first.ID, "user-1", reminderapp.Update{Status: strPtr(domain.StatusCompleted)})
	require.NoError(t, err)

	completed, err := service.Query(ctx, ports.Filter{UserID: "user-1", Status: domain.StatusCompleted}, ports.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "done already", completed[0].Text)
}

func TestQuerySortByDateTimeAscending(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	base := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{3 * time.Hour, time.Hour, 2 * time.Hour} {
		_, err := service.Create(ctx, "user-1", offset.String(), base.Add(offset))
		require.NoError(t, err)
	}

	got, err := service.Query(ctx, ports.Filter{UserID: "user-1"}, ports.QueryOptions{SortBy: "dateTime", SortType: reminderapp.SortAsc})
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.True(t, !got[i].DateTime.Before(got[i-1].DateTime))
	}
}

func TestUpdateRefreshesUpdatedAtAndAcceptsAnyStatus(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, "user-1", "original", time.Now().Add(time.Hour))
	require.NoError(t, err)

	later := created.UpdatedAt.Add(time.Minute)
	service.WithNow(func() time.Time { return later })

	// Status strings outside the canonical set are stored as-is.
	updated, err := service.UpdateByID(ctx, created.ID, "user-1", reminderapp.Update{Status: strPtr("snoozed")})
	require.NoError(t, err)
	assert.Equal(t, "snoozed", updated.Status)
	assert.Equal(t, "original", updated.Text)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestDeleteThenGet(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, "user-1", "temp", time.Now().Add(time.Hour))
	require.NoError(t, err)

	deleted, err := service.DeleteByID(ctx, created.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID, "delete returns the removed snapshot")

	_, ok, err := service.GetByID(ctx, created.ID, "user-1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = service.DeleteByID(ctx, created.ID, "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
