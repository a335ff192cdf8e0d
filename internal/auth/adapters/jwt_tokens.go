package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"remind/internal/auth/domain"
)

// JWTTokenManager issues HMAC-signed JWT access tokens and hashes passwords
// using Argon2id.
type JWTTokenManager struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
	now       func() time.Time
}

// NewJWTTokenManager creates a new token manager.
func NewJWTTokenManager(secret, issuer string, accessTTL time.Duration) *JWTTokenManager {
	if accessTTL == 0 {
		accessTTL = 15 * time.Minute
	}
	return &JWTTokenManager{secret: []byte(secret), issuer: issuer, accessTTL: accessTTL, now: time.Now}
}

// WithNow allows tests to control the clock.
func (m *JWTTokenManager) WithNow(now func() time.Time) {
	if now != nil {
		m.now = now
	}
}

// GenerateAccessToken implements ports.TokenManager.
func (m *JWTTokenManager) GenerateAccessToken(_ context.Context, user domain.User) (string, time.Time, error) {
	if len(m.secret) == 0 {
		return "", time.Time{}, errors.New("jwt secret not configured")
	}
	expiresAt := m.now().Add(m.accessTTL)
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   expiresAt.Unix(),
		"iss":   m.issuer,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseAccessToken parses and verifies a JWT access token.
func (m *JWTTokenManager) ParseAccessToken(_ context.Context, token string) (domain.Claims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return domain.Claims{}, domain.ErrInvalidToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return domain.Claims{}, domain.ErrInvalidToken
	}

	out := domain.Claims{}
	if sub, ok := claims["sub"].(string); ok {
		out.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		out.Role = domain.Role(role)
	}
	if exp, ok := claims["exp"].(float64); ok {
		out.ExpiresAt = time.Unix(int64(exp), 0)
	}
	if out.Subject == "" {
		return domain.Claims{}, domain.ErrInvalidToken
	}
	return out, nil
}

// HashPassword encodes the password using Argon2id.
func (m *JWTTokenManager) HashPassword(password string) (string, error) {
	return hashArgon2id(password, defaultArgon2idParams)
}

// VerifyPassword compares a plain password against an encoded hash.
func (m *JWTTokenManager) VerifyPassword(password, encodedHash string) (bool, error) {
	return verifyArgon2id(password, encodedHash)
}
