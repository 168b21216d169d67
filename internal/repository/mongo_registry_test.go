//go:build integration

package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMongoDBRegistry(t *testing.T) {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbName := "session_test_" + uuid.NewString()[:8]
	r, err := NewMongoDBRegistry(ctx, uri, dbName)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = r.client.Database(dbName).Drop(context.Background())
		_ = r.Close()
	})

	require.NoError(t, r.Add(ctx, "rt-123", time.Hour))
	require.NoError(t, r.Add(ctx, "rt-123", time.Hour), "add must be idempotent")

	ok, err := r.Contains(ctx, "rt-123")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, r.Remove(ctx, "rt-123"))
	require.NoError(t, r.Remove(ctx, "rt-123"))

	ok, err = r.Contains(ctx, "rt-123")
	require.NoError(t, err)
	assert.False(t, ok)
}
