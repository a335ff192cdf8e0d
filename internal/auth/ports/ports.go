package ports

import (
	"context"
	"time"

	"remind/internal/auth/domain"
)

// UserRepository abstracts persistence for user records.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id string) (domain.User, error)
}

// TokenManager issues and validates access tokens and hashes passwords.
type TokenManager interface {
	GenerateAccessToken(ctx context.Context, user domain.User) (token string, expiresAt time.Time, err error)
	ParseAccessToken(ctx context.Context, token string) (domain.Claims, error)
	HashPassword(password string) (string, error)
	VerifyPassword(password, encodedHash string) (bool, error)
}
