package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "PORT", "ENV", "DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USER",
		"DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "DB_MAX_CONNS", "JWT_TTL")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, int32(20), cfg.DBMaxConns)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=postgres dbname=courtbooking sslmode=disable",
		cfg.DSN())
}

func TestLoad_RequiresSecret(t *testing.T) {
	unsetEnv(t, "JWT_SECRET")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ENV", "production")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/courts")
	t.Setenv("DB_CONNECT_ATTEMPTS", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, "postgres://u:p@db:5432/courts", cfg.DSN())
	assert.Equal(t, 1, cfg.DBConnectAttempts)
}
