package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// CreatedEvent is the payload handed to the external reminder agent after a
// reminder has been created. Delivery, retries and failures are the agent
// platform's problem; the client only guarantees the event is emitted after,
// and only after, the creation succeeded.
type CreatedEvent struct {
	Text         string    `json:"text"`
	DateTime     time.Time `json:"dateTime"`
	ScheduledFor time.Time `json:"scheduledFor"`
}

// EventPublisher hands reminder events to a downstream collaborator.
type EventPublisher interface {
	PublishCreated(ctx context.Context, event CreatedEvent) error
}

// WebhookPublisher posts events as JSON to a configured URL.
type WebhookPublisher struct {
	url    string
	client *http.Client
}

// NewWebhookPublisher constructs a publisher for the given webhook URL.
func NewWebhookPublisher(url string) *WebhookPublisher {
	return &WebhookPublisher{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// PublishCreated posts the event. The caller treats errors as log-only.
func (p *WebhookPublisher) PublishCreated(ctx context.Context, event CreatedEvent) error {
	body, err := json.Marshal(map[string]any{
		"name":    "reminder_created",
		"payload": event,
	})
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build event request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("post event: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("event endpoint answered %d", resp.StatusCode)
	}
	return nil
}

// MemoryEventPublisher collects emitted events for inspection in tests.
type MemoryEventPublisher struct {
	mu     sync.Mutex
	events []CreatedEvent
}

// NewMemoryEventPublisher constructs an in-memory publisher.
func NewMemoryEventPublisher() *MemoryEventPublisher {
	return &MemoryEventPublisher{}
}

func (m *MemoryEventPublisher) PublishCreated(_ context.Context, event CreatedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

// Events returns a copy of the collected events.
func (m *MemoryEventPublisher) Events() []CreatedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]CreatedEvent, len(m.events))
	copy(out, m.events)
	return out
}

var _ EventPublisher = (*WebhookPublisher)(nil)
var _ EventPublisher = (*MemoryEventPublisher)(nil)
