package adapters

import (
	"context"
	"strings"
	"sync"

	"remind/internal/auth/domain"
)

// MemoryUserRepo keeps user records in process memory. It backs tests and
// single-node development deployments.
type MemoryUserRepo struct {
	mu       sync.RWMutex
	users    map[string]domain.User
	emailIdx map[string]string
}

// NewMemoryUserRepo creates an empty in-memory user repository.
func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: map[string]domain.User{}, emailIdx: map[string]string{}}
}

func (r *MemoryUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email := strings.ToLower(user.Email)
	if _, exists := r.emailIdx[email]; exists {
		return domain.User{}, domain.ErrUserExists
	}
	r.users[user.ID] = user
	r.emailIdx[email] = user.ID
	return user, nil
}

func (r *MemoryUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id, ok := r.emailIdx[strings.ToLower(email)]; ok {
		return r.users[id], nil
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (r *MemoryUserRepo) FindByID(_ context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return domain.User{}, domain.ErrUserNotFound
}
