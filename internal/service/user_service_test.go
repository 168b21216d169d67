package services

import (
	"context"
	"errors"
	"testing"

	"chat-app/session-service/internal/domain"
	userRepository "chat-app/session-service/internal/repository/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingUsers struct {
	userRepository.UserRepository
	err error
}

func (f failingUsers) GetAll(context.Context) ([]domain.User, error) { return nil, f.err }

func (f failingUsers) FindByID(context.Context, string) (*domain.User, error) { return nil, f.err }

func (f failingUsers) Update(context.Context, string, domain.UserUpdate) (*domain.User, error) {
	return nil, f.err
}

func (f failingUsers) Delete(context.Context, string) error { return f.err }

type countingUsers struct {
	*userRepository.InMemoryUserRepository
	lookups int
}

func (c *countingUsers) FindByID(ctx context.Context, id string) (*domain.User, error) {
	c.lookups++
	return c.InMemoryUserRepository.FindByID(ctx, id)
}

func seededUsers() *userRepository.InMemoryUserRepository {
	return userRepository.NewInMemoryUserRepository(
		domain.User{ID: "u1", Username: "alice", Email: "a@x.com", Age: "18_24", PasswordHash: "secret-hash"},
		domain.User{ID: "u2", Username: "bob", Email: "b@x.com", Age: "25_34", PasswordHash: "secret-hash"},
	)
}

func TestUserService_ReadsAreNotOwnershipRestricted(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(seededUsers())

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	bob, err := svc.Get(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, "bob", bob.Username)

	_, err = svc.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserService_CrossUserMutationIsForbidden(t *testing.T) {
	ctx := context.Background()
	users := seededUsers()
	svc := NewUserService(users)
	name := "mallory"

	_, err := svc.Update(ctx, alice, "u2", domain.UserUpdate{Username: &name})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, alice, "u2"), domain.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, alice, "does-not-exist"), domain.ErrForbidden)

	bob, err := users.FindByID(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, "bob", bob.Username)
}

func TestUserService_OwnerMutations(t *testing.T) {
	ctx := context.Background()
	users := seededUsers()
	svc := NewUserService(users)
	name := "alice2"

	updated, err := svc.Update(ctx, alice, "u1", domain.UserUpdate{Username: &name})
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)

	require.NoError(t, svc.Delete(ctx, alice, "u1"))
	assert.ErrorIs(t, svc.Delete(ctx, alice, "u1"), domain.ErrNotFound)
}

func TestUserService_StorageFailure(t *testing.T) {
	svc := NewUserService(failingUsers{err: errors.New("connection refused")})

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, domain.ErrStorage)

	_, err = svc.Get(context.Background(), "u1")
	assert.ErrorIs(t, err, domain.ErrStorage)

	_, err = svc.Update(context.Background(), alice, "u1", domain.UserUpdate{})
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, svc.Delete(context.Background(), alice, "u1"), domain.ErrStorage)
}

func TestUserService_MutationsWriteWithoutLookup(t *testing.T) {
	ctx := context.Background()
	users := &countingUsers{InMemoryUserRepository: userRepository.NewInMemoryUserRepository()}
	svc := NewUserService(users)
	ghost := domain.Identity{UserID: "ghost"}

	_, err := svc.Update(ctx, ghost, "ghost", domain.UserUpdate{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, ghost, "ghost"), domain.ErrNotFound)
	assert.Zero(t, users.lookups)
}

func TestCheckOwnership(t *testing.T) {
	assert.NoError(t, CheckOwnership(alice, "u1"))
	assert.ErrorIs(t, CheckOwnership(alice, "u2"), domain.ErrForbidden)
	assert.ErrorIs(t, CheckOwnership(domain.Identity{}, ""), domain.ErrForbidden)
}

func TestTestIdentities(t *testing.T) {
	dev := NewTestIdentities("test-user-", false)
	assert.True(t, dev.Allows("test-user-42"))
	assert.False(t, dev.Allows("u1"))

	prod := NewTestIdentities("test-user-", true)
	assert.False(t, prod.Allows("test-user-42"))
	assert.False(t, prod.Enabled())

	assert.False(t, NewTestIdentities("", false).Allows("anything"))

	var none *TestIdentities
	assert.False(t, none.Allows("test-user-42"))
}
