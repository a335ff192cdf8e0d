package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"remind/internal/logging"
	"remind/internal/reminder/domain"
)

// maxTextLength mirrors the creation form's limit. The server does not
// enforce it; the client does.
const maxTextLength = 500

const listCacheSize = 32

// Service is the client-side reminder API. It talks to a remote server when
// a base URL is configured and otherwise falls back to the injected local
// Store, so the rest of the client never cares which mode it is in.
type Service struct {
	baseURL string
	token   string
	http    *http.Client
	store   Store
	cache   *lru.Cache[string, []Reminder]
	events  EventPublisher
	logger  logging.Logger
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithHTTPClient overrides the HTTP client used for server calls.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) { s.http = client }
}

// WithToken sets the bearer token sent on every server call.
func WithToken(token string) Option {
	return func(s *Service) { s.token = token }
}

// WithStore injects the local fallback store.
func WithStore(store Store) Option {
	return func(s *Service) { s.store = store }
}

// WithEventPublisher wires the external agent notification.
func WithEventPublisher(events EventPublisher) Option {
	return func(s *Service) { s.events = events }
}

// WithLogger overrides the component logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithNow allows tests to control the clock.
func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService constructs a client service. An empty baseURL selects local
// mode, which requires an injected Store.
func NewService(baseURL string, opts ...Option) (*Service, error) {
	cache, err := lru.New[string, []Reminder](listCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create list cache: %w", err)
	}
	s := &Service{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
		logger:  logging.NewComponentLogger("ReminderClient"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.baseURL == "" && s.store == nil {
		return nil, fmt.Errorf("either a server URL or a local store is required")
	}
	return s, nil
}

// Create validates the input, persists the reminder and, once persistence
// succeeded, notifies the external agent. Notification failures are logged
// and never surfaced to the caller.
func (s *Service) Create(ctx context.Context, data CreateReminderData) (Reminder, error) {
	if data.Text == "" {
		return Reminder{}, fmt.Errorf("reminder text is required")
	}
	if len(data.Text) > maxTextLength {
		return Reminder{}, fmt.Errorf("reminder text must be at most %d characters", maxTextLength)
	}
	if !data.DateTime.After(s.now()) {
		return Reminder{}, fmt.Errorf("date and time must be in the future")
	}

	var created Reminder
	var err error
	if s.remote() {
		body := map[string]string{
			"text":     data.Text,
			"dateTime": data.DateTime.Format(time.RFC3339),
		}
		err = s.doJSON(ctx, http.MethodPost, "/v1/reminders", body, &created)
	} else {
		created, err = s.createLocal(ctx, data)
	}
	if err != nil {
		return Reminder{}, err
	}

	s.cache.Purge()
	if s.events != nil {
		event := CreatedEvent{Text: created.Text, DateTime: created.DateTime, ScheduledFor: created.DateTime}
		if publishErr := s.events.PublishCreated(ctx, event); publishErr != nil {
			s.logger.Warn("reminder_created event not delivered: %v", publishErr)
		}
	}
	return created, nil
}

// List fetches reminders, serving repeated identical queries from an LRU
// cache until the next mutation invalidates it.
func (s *Service) List(ctx context.Context, options ListOptions) ([]Reminder, error) {
	key := options.Status + "|" + strconv.Itoa(options.Limit) + "|" + strconv.Itoa(options.Page)
	if cached, ok := s.cache.Get(key); ok {
		out := make([]Reminder, len(cached))
		copy(out, cached)
		return out, nil
	}

	var reminders []Reminder
	if s.remote() {
		query := url.Values{}
		if options.Status != "" {
			query.Set("status", options.Status)
		}
		if options.Limit > 0 {
			query.Set("limit", strconv.Itoa(options.Limit))
		}
		if options.Page > 0 {
			query.Set("page", strconv.Itoa(options.Page))
		}
		path := "/v1/reminders"
		if encoded := query.Encode(); encoded != "" {
			path += "?" + encoded
		}
		if err := s.doJSON(ctx, http.MethodGet, path, nil, &reminders); err != nil {
			return nil, err
		}
	} else {
		// Local mode returns the full set; paging a single user's local
		// file is not worth the asymmetry.
		all, err := s.store.List(ctx)
		if err != nil {
			return nil, err
		}
		reminders = all
		if options.Status != "" {
			filtered := reminders[:0:0]
			for _, r := range reminders {
				if r.Status == options.Status {
					filtered = append(filtered, r)
				}
			}
			reminders = filtered
		}
	}

	s.cache.Add(key, reminders)
	out := make([]Reminder, len(reminders))
	copy(out, reminders)
	return out, nil
}

// Get fetches a single reminder by id.
func (s *Service) Get(ctx context.Context, id string) (Reminder, error) {
	if s.remote() {
		var reminder Reminder
		if err := s.doJSON(ctx, http.MethodGet, "/v1/reminders/"+url.PathEscape(id), nil, &reminder); err != nil {
			return Reminder{}, err
		}
		return reminder, nil
	}
	reminder, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return Reminder{}, err
	}
	if !ok {
		return Reminder{}, domain.ErrNotFound
	}
	return reminder, nil
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id string, updates UpdateReminderData) (Reminder, error) {
	if updates.IsEmpty() {
		return Reminder{}, fmt.Errorf("nothing to update")
	}

	var updated Reminder
	var err error
	if s.remote() {
		body := map[string]any{}
		if updates.Text != nil {
			body["text"] = *updates.Text
		}
		if updates.DateTime != nil {
			body["dateTime"] = updates.DateTime.Format(time.RFC3339)
		}
		if updates.Status != nil {
			body["status"] = *updates.Status
		}
		err = s.doJSON(ctx, http.MethodPatch, "/v1/reminders/"+url.PathEscape(id), body, &updated)
	} else {
		updated, err = s.updateLocal(ctx, id, updates)
	}
	if err != nil {
		return Reminder{}, err
	}
	s.cache.Purge()
	return updated, nil
}

// Delete removes a reminder permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	var err error
	if s.remote() {
		err = s.doJSON(ctx, http.MethodDelete, "/v1/reminders/"+url.PathEscape(id), nil, nil)
	} else {
		err = s.store.Delete(ctx, id)
	}
	if err != nil {
		return err
	}
	s.cache.Purge()
	return nil
}

func (s *Service) remote() bool {
	return s.baseURL != ""
}

func (s *Service) createLocal(ctx context.Context, data CreateReminderData) (Reminder, error) {
	now := s.now()
	status := domain.StatusUpcoming
	if !data.DateTime.After(now) {
		status = domain.StatusOverdue
	}
	reminder := Reminder{
		ID:        uuid.NewString(),
		Text:      data.Text,
		DateTime:  data.DateTime,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Insert(ctx, reminder); err != nil {
		return Reminder{}, err
	}
	return reminder, nil
}

func (s *Service) updateLocal(ctx context.Context, id string, updates UpdateReminderData) (Reminder, error) {
	reminder, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return Reminder{}, err
	}
	if !ok {
		return Reminder{}, domain.ErrNotFound
	}
	if updates.Text != nil {
		reminder.Text = *updates.Text
	}
	if updates.DateTime != nil {
		reminder.DateTime = *updates.DateTime
	}
	if updates.Status != nil {
		reminder.Status = *updates.Status
	}
	reminder.UpdatedAt = s.now()
	if err := s.store.Update(ctx, reminder); err != nil {
		return Reminder{}, err
	}
	return reminder, nil
}

func (s *Service) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("server answered %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server answered %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Login exchanges credentials for a bearer token and stores it on the
// service for subsequent calls.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if !s.remote() {
		return "", fmt.Errorf("login requires a configured server URL")
	}
	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := s.doJSON(ctx, http.MethodPost, "/v1/auth/login", body, &resp); err != nil {
		return "", err
	}
	s.token = resp.AccessToken
	return resp.AccessToken, nil
}

// Register creates an account on the configured server.
func (s *Service) Register(ctx context.Context, email, password, displayName string) error {
	if !s.remote() {
		return fmt.Errorf("register requires a configured server URL")
	}
	body := map[string]string{"email": email, "password": password, "displayName": displayName}
	return s.doJSON(ctx, http.MethodPost, "/v1/auth/register", body, nil)
}
