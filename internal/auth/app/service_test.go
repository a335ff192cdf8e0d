package app_test

import (
	"context"
	"testing"
	"time"

	"remind/internal/auth/adapters"
	authapp "remind/internal/auth/app"
	"remind/internal/auth/domain"
)

func newService() *authapp.Service {
	users := adapters.NewMemoryUserRepo()
	tokens := adapters.NewJWTTokenManager("secret", "test", 15*time.Minute)
	return authapp.NewService(users, tokens)
}

func TestRegisterAndLogin(t *testing.T) {
	service := newService()
	ctx := context.Background()

	user, err := service.Register(ctx, "test@example.com", "password", "Tester")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %s", user.Role)
	}

	pair, err := service.Login(ctx, "test@example.com", "password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if pair.AccessToken == "" {
		t.Fatalf("expected access token to be issued")
	}
	if !pair.ExpiresAt.After(time.Now()) {
		t.Fatalf("expected token expiry in future")
	}

	claims, err := service.ParseAccessToken(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Subject != user.ID {
		t.Fatalf("expected subject %s got %s", user.ID, claims.Subject)
	}
	if claims.Role != domain.RoleUser {
		t.Fatalf("expected role claim user, got %s", claims.Role)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service := newService()
	ctx := context.Background()

	if _, err := service.Register(ctx, "dup@example.com", "password", ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := service.Register(ctx, "dup@example.com", "other", ""); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	service := newService()
	ctx := context.Background()

	if _, err := service.Register(ctx, "who@example.com", "password", ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := service.Login(ctx, "who@example.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := service.Login(ctx, "nobody@example.com", "password"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestParseRejectsTamperedToken(t *testing.T) {
	service := newService()
	ctx := context.Background()

	if _, err := service.Register(ctx, "a@example.com", "password", ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	pair, err := service.Login(ctx, "a@example.com", "password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := service.ParseAccessToken(ctx, pair.AccessToken+"x"); err == nil {
		t.Fatalf("expected tampered token to be rejected")
	}
}

func TestAuthorizeCapabilities(t *testing.T) {
	service := newService()

	user := domain.User{Role: domain.RoleUser}
	if err := service.Authorize(user, domain.CapabilityGetReminders); err != nil {
		t.Fatalf("user should read own reminders: %v", err)
	}
	if err := service.Authorize(user, domain.CapabilityManageReminders); err != nil {
		t.Fatalf("user should manage own reminders: %v", err)
	}
	if err := service.Authorize(user, domain.CapabilityManageUsers); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for manageUsers, got %v", err)
	}

	admin := domain.User{Role: domain.RoleAdmin}
	if err := service.Authorize(admin, domain.CapabilityManageUsers); err != nil {
		t.Fatalf("admin should manage users: %v", err)
	}
}
