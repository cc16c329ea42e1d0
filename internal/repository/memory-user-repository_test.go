package repository

import (
	"testing"
	"time"

	"github.com/starkteam/stark/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUserRepository_CreateAndFind(t *testing.T) {
	repo := NewMemoryUserRepository()

	exists, err := repo.EmailExists("a@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	created, err := repo.CreateUser(&domain.User{
		Email:        "a@example.com",
		Name:         "Someone",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	found, err := repo.FindUserByEmail("a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Someone", found.Name)

	exists, err = repo.EmailExists("a@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMemoryUserRepository_DuplicateCreateFails(t *testing.T) {
	repo := NewMemoryUserRepository()

	_, err := repo.CreateUser(&domain.User{Email: "a@example.com"})
	require.NoError(t, err)

	_, err = repo.CreateUser(&domain.User{Email: "a@example.com"})
	assert.Error(t, err, "the store must guarantee at most one record per email")
}

func TestMemoryUserRepository_FindUnknown(t *testing.T) {
	repo := NewMemoryUserRepository()

	_, err := repo.FindUserByEmail("missing@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryUserRepository_SaveUpdates(t *testing.T) {
	repo := NewMemoryUserRepository()

	user, err := repo.CreateUser(&domain.User{Email: "a@example.com", Name: "Old"})
	require.NoError(t, err)

	user.Name = "New"
	require.NoError(t, repo.SaveUser(user))

	found, err := repo.FindUserByEmail("a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "New", found.Name)
}
