package repository

import (
	"errors"
	"sync"

	"github.com/starkteam/stark/internal/domain"
)

// memoryUserRepository keeps users in a mutex-guarded map. It backs
// tests and DSN-less deployments; records do not survive a restart.
type memoryUserRepository struct {
	mu     sync.RWMutex
	users  map[string]domain.User
	nextID uint
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]domain.User), nextID: 1}
}

func (r *memoryUserRepository) CreateUser(user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("nil user")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Email]; ok {
		return nil, errors.New("failed to create user")
	}

	user.ID = r.nextID
	r.nextID++
	r.users[user.Email] = *user
	return user, nil
}

func (r *memoryUserRepository) FindUserByEmail(email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (r *memoryUserRepository) SaveUser(user *domain.User) error {
	if user == nil {
		return errors.New("nil user")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.Email] = *user
	return nil
}

func (r *memoryUserRepository) EmailExists(email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[email]
	return ok, nil
}
