package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"chat-app/session-service/internal/domain"
)

// UserRepository is the user persistence collaborator. Lookups of missing
// users return domain.ErrNotFound.
type UserRepository interface {
	GetAll(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, id string, fields domain.UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
	now   func() time.Time
}

func NewInMemoryUserRepository(users ...domain.User) *InMemoryUserRepository {
	r := &InMemoryUserRepository{
		users: make(map[string]domain.User, len(users)),
		now:   time.Now,
	}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *InMemoryUserRepository) GetAll(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *InMemoryUserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return &user, nil
}

func (r *InMemoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = newID()
	}
	if _, ok := r.users[user.ID]; ok {
		return fmt.Errorf("user %s already exists", user.ID)
	}
	now := r.now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	r.users[user.ID] = *user
	return nil
}

func (r *InMemoryUserRepository) Update(_ context.Context, id string, fields domain.UserUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	fields.Apply(&user)
	user.UpdatedAt = r.now().UTC()
	r.users[id] = user
	return &user, nil
}

func (r *InMemoryUserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	delete(r.users, id)
	return nil
}
