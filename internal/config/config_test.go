package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "APP_ENV", "JWT_SECRET", "REFRESH_SECRET", "REFRESH_TOKEN_TTL", "DB_TYPE", "REGISTRY_TYPE", "TEST_USER_PREFIX", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Port)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, DefaultAccessSecret, cfg.AccessSecret)
	assert.Equal(t, DefaultRefreshSecret, cfg.RefreshSecret)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, DBTypeMemory, cfg.DBType)
	assert.Equal(t, RegistryMemory, cfg.RegistryType)
	assert.Equal(t, "test-user-", cfg.TestUserPrefix)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "Production")
	t.Setenv("JWT_SECRET", "access")
	t.Setenv("REFRESH_SECRET", "refresh")
	t.Setenv("REFRESH_TOKEN_TTL", "2h")
	t.Setenv("DB_TYPE", "supabase")
	t.Setenv("REGISTRY_TYPE", "REDIS")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")

	cfg := FromEnv()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "access", cfg.AccessSecret)
	assert.Equal(t, "refresh", cfg.RefreshSecret)
	assert.Equal(t, 2*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, DBTypePostgres, cfg.DBType)
	assert.Equal(t, RegistryRedis, cfg.RegistryType)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestChecklist(t *testing.T) {
	cfg := &Config{
		AccessSecret:  DefaultAccessSecret,
		RefreshSecret: DefaultRefreshSecret,
		DBType:        DBTypePostgres,
		RegistryType:  RegistryRedis,
	}
	require.Len(t, cfg.Checklist(), 2)

	cfg.AccessSecret, cfg.RefreshSecret = "same", "same"
	warnings := cfg.Checklist()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "must differ")

	cfg.AccessSecret, cfg.RefreshSecret = "a", "b"
	assert.Empty(t, cfg.Checklist())
}

func TestGetters(t *testing.T) {
	t.Setenv("SEED_AGE", "25_34")
	t.Setenv("SOME_EMPTY", "")
	t.Setenv("SOME_DURATION", "90s")

	assert.Equal(t, "25_34", GetString("SEED_AGE", "18_24"))
	assert.Equal(t, "18_24", GetString("SOME_EMPTY", "18_24"))
	assert.Equal(t, 90*time.Second, GetDuration("SOME_DURATION", time.Minute))
}

func TestGetters_FallBackOnGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "x")
	t.Setenv("SOME_DURATION", "soon")

	assert.Equal(t, 3, GetInt("SOME_INT", 3))
	assert.Equal(t, time.Minute, GetDuration("SOME_DURATION", time.Minute))
}

func TestFromMap(t *testing.T) {
	cfg := FromMap(map[string]string{"DB_TYPE": "sqlite", "JWT_SECRET": "s"})

	assert.Equal(t, DBTypeSQLite, cfg.DBType)
	assert.Equal(t, "s", cfg.AccessSecret)
	assert.Equal(t, DefaultRefreshSecret, cfg.RefreshSecret)
}
