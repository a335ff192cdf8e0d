package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remind/internal/reminder/domain"
)

// memStore is a map-backed Store for tests.
type memStore struct {
	mu        sync.Mutex
	reminders map[string]Reminder
}

func newMemStore() *memStore {
	return &memStore{reminders: map[string]Reminder{}}
}

func (m *memStore) List(context.Context) ([]Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Reminder, 0, len(m.reminders))
	for _, r := range m.reminders {
		out = append(out, r)
	}
	return out, nil
}

func (m *memStore) Get(_ context.Context, id string) (Reminder, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reminders[id]
	return r, ok, nil
}

func (m *memStore) Insert(_ context.Context, r Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reminders[r.ID] = r
	return nil
}

func (m *memStore) Update(_ context.Context, r Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reminders[r.ID]; !ok {
		return domain.ErrNotFound
	}
	m.reminders[r.ID] = r
	return nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reminders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.reminders, id)
	return nil
}

func (m *memStore) Close() error { return nil }

func TestLocalCreateClassifiesStatus(t *testing.T) {
	store := newMemStore()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	service, err := NewService("", WithStore(store), WithNow(func() time.Time { return now }))
	require.NoError(t, err)

	created, err := service.Create(context.Background(), CreateReminderData{
		Text:     "water plants",
		DateTime: now.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUpcoming, created.Status)
	assert.NotEmpty(t, created.ID)
}

func TestCreateValidation(t *testing.T) {
	store := newMemStore()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	service, err := NewService("", WithStore(store), WithNow(func() time.Time { return now }))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = service.Create(ctx, CreateReminderData{Text: "", DateTime: now.Add(time.Hour)})
	assert.Error(t, err)

	long := make([]byte, maxTextLength+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err = service.Create(ctx, CreateReminderData{Text: string(long), DateTime: now.Add(time.Hour)})
	assert.Error(t, err)

	// The future-date rule lives client-side only.
	_, err = service.Create(ctx, CreateReminderData{Text: "late", DateTime: now.Add(-time.Hour)})
	assert.Error(t, err)
}

func TestCreatePublishesEventOnlyOnSuccess(t *testing.T) {
	events := NewMemoryEventPublisher()

	var serverHits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serverHits++
		if serverHits == 1 {
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Reminder{
			ID:       "r1",
			Text:     "Buy milk",
			DateTime: time.Now().Add(time.Hour).UTC(),
		})
	}))
	defer server.Close()

	service, err := NewService(server.URL, WithEventPublisher(events))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = service.Create(ctx, CreateReminderData{Text: "Buy milk", DateTime: time.Now().Add(time.Hour)})
	require.Error(t, err)
	assert.Empty(t, events.Events(), "no event before the creation call succeeds")

	created, err := service.Create(ctx, CreateReminderData{Text: "Buy milk", DateTime: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	emitted := events.Events()
	require.Len(t, emitted, 1)
	assert.Equal(t, "Buy milk", emitted[0].Text)
	assert.True(t, emitted[0].ScheduledFor.Equal(created.DateTime))
}

func TestListCachesUntilMutation(t *testing.T) {
	var listCalls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			listCalls++
			_ = json.NewEncoder(w).Encode([]Reminder{{ID: "r1", Text: "cached"}})
		case http.MethodDelete:
			_, _ = w.Write([]byte("{}"))
		}
	}))
	defer server.Close()

	service, err := NewService(server.URL)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = service.List(ctx, ListOptions{})
	require.NoError(t, err)
	_, err = service.List(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, listCalls, "identical queries served from cache")

	require.NoError(t, service.Delete(ctx, "r1"))

	_, err = service.List(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, listCalls, "mutation invalidates the cache")
}

func TestRemoteNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Reminder not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	service, err := NewService(server.URL)
	require.NoError(t, err)

	_, err = service.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocalUpdateAndDelete(t *testing.T) {
	store := newMemStore()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	service, err := NewService("", WithStore(store), WithNow(func() time.Time { return now }))
	require.NoError(t, err)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateReminderData{Text: "note", DateTime: now.Add(time.Hour)})
	require.NoError(t, err)

	status := domain.StatusCompleted
	updated, err := service.Update(ctx, created.ID, UpdateReminderData{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Status)

	_, err = service.Update(ctx, created.ID, UpdateReminderData{})
	assert.Error(t, err, "empty update is rejected")

	require.NoError(t, service.Delete(ctx, created.ID))
	_, err = service.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, service.Delete(ctx, created.ID), domain.ErrNotFound)
}

func TestNewServiceRequiresBackend(t *testing.T) {
	_, err := NewService("")
	assert.Error(t, err)
}
