package repository

import (
	"context"
	"testing"

	"chat-app/session-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// exerciseRepository runs the behaviour every UserRepository shares.
func exerciseRepository(t *testing.T, repo UserRepository) {
	t.Helper()
	ctx := context.Background()

	alice := &domain.User{ID: "u1", Username: "alice", Email: "a@x.com", Age: "18_24", PasswordHash: "hash"}
	bob := &domain.User{Username: "bob", Email: "b@x.com", Age: "25_34"}
	require.NoError(t, repo.Create(ctx, alice))
	require.NoError(t, repo.Create(ctx, bob))
	require.NotEmpty(t, bob.ID)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	got, err := repo.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "hash", got.PasswordHash)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	updated, err := repo.Update(ctx, "u1", domain.UserUpdate{Username: strPtr("alice2")})
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)
	assert.Equal(t, "a@x.com", updated.Email, "absent fields stay unchanged")
	assert.Equal(t, "18_24", updated.Age)

	_, err = repo.Update(ctx, "missing", domain.UserUpdate{Age: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "u1"))
	assert.ErrorIs(t, repo.Delete(ctx, "u1"), domain.ErrNotFound)

	all, err = repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, bob.ID, all[0].ID)
}

func TestInMemoryUserRepository(t *testing.T) {
	exerciseRepository(t, NewInMemoryUserRepository())
}

func TestInMemoryUserRepository_Seeded(t *testing.T) {
	repo := NewInMemoryUserRepository(domain.User{ID: "u1", Username: "alice"})

	got, err := repo.FindByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	err = repo.Create(context.Background(), &domain.User{ID: "u1"})
	assert.Error(t, err)
}
