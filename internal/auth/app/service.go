package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"remind/internal/auth/domain"
	"remind/internal/auth/ports"
)

// Service orchestrates account registration, login and token verification.
type Service struct {
	users  ports.UserRepository
	tokens ports.TokenManager
	now    func() time.Time
}

// NewService constructs a Service instance.
func NewService(users ports.UserRepository, tokens ports.TokenManager) *Service {
	return &Service{users: users, tokens: tokens, now: time.Now}
}

// WithNow allows tests to control the clock.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Register creates a new account with the default user role.
func (s *Service) Register(ctx context.Context, email, password, displayName string) (domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return domain.User{}, fmt.Errorf("email is required")
	}
	if password == "" {
		return domain.User{}, fmt.Errorf("password is required")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return domain.User{}, domain.ErrUserExists
	}

	hashed, err := s.tokens.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		Role:         domain.RoleUser,
		Status:       domain.UserStatusActive,
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.users.Create(ctx, user)
}

// Login authenticates an email/password pair and issues an access token.
func (s *Service) Login(ctx context.Context, email, password string) (domain.TokenPair, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return domain.TokenPair{}, domain.ErrInvalidCredentials
	}
	ok, err := s.tokens.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return domain.TokenPair{}, domain.ErrInvalidCredentials
	}
	if user.Status != domain.UserStatusActive {
		return domain.TokenPair{}, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(ctx, user)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("generate access token: %w", err)
	}
	return domain.TokenPair{AccessToken: token, ExpiresAt: expiresAt, User: user}, nil
}

// ParseAccessToken verifies a bearer token and returns its claims.
func (s *Service) ParseAccessToken(ctx context.Context, token string) (domain.Claims, error) {
	return s.tokens.ParseAccessToken(ctx, token)
}

// GetUser loads an account by id.
func (s *Service) GetUser(ctx context.Context, id string) (domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// Authorize checks that the user's role grants the capability.
func (s *Service) Authorize(user domain.User, capability domain.Capability) error {
	if !user.Role.Can(capability) {
		return domain.ErrForbidden
	}
	return nil
}
