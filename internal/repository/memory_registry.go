package repository

import (
	"context"
	"sync"
	"time"
)

type MemoryRegistry struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		tokens: make(map[string]struct{}),
	}
}

// Add ignores ttl; expired tokens are evicted when they fail verification.
func (r *MemoryRegistry) Add(_ context.Context, token string, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = struct{}{}
	return nil
}

func (r *MemoryRegistry) Contains(_ context.Context, token string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tokens[token]
	return ok, nil
}

func (r *MemoryRegistry) Remove(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
	return nil
}

func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tokens)
}
