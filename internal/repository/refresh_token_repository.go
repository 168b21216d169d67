package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// RefreshTokenRegistry is the set of refresh tokens currently honoured.
// Presence means valid; Remove of an absent token is a no-op. Every
// implementation must be safe for concurrent use.
type RefreshTokenRegistry interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
	Contains(ctx context.Context, token string) (bool, error)
	Remove(ctx context.Context, token string) error
}

// tokenKey keeps raw bearer tokens out of shared stores.
func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
