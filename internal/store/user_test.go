package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	created := createTestUser(t, repo, "alice")
	assert.Positive(t, created.ID)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, byID)

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created, byName)
	assert.True(t, byName.IsActive)
	assert.Equal(t, "hash", byName.PasswordHash)
}

func TestUserRepositoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepositoryDuplicateUsername(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	createTestUser(t, repo, "alice")

	user := createTestUserPayload("alice")
	_, err := repo.Create(context.Background(), user)
	assert.Error(t, err)
}

func TestUserRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))
	user := createTestUser(t, repo, "alice")

	user.PhoneNumber = "0545361151"
	user.PasswordHash = "new-hash"
	_, err := repo.Update(ctx, user)
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "0545361151", stored.PhoneNumber)
	assert.Equal(t, "new-hash", stored.PasswordHash)

	user.ID = 999
	_, err = repo.Update(ctx, user)
	assert.ErrorIs(t, err, ErrNotFound)
}
