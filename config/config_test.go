package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("UPSTASH_REDIS_URL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 60, cfg.RateLimitWindowSeconds)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SUPABASE_URL", "https://abc.supabase.co/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://jobs.example.com/, ,http://localhost:3001")
	t.Setenv("RATE_LIMIT_GLOBAL_THRESHOLD", "not-a-number")
	t.Setenv("DB_AUTO_MIGRATE", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "https://abc.supabase.co", cfg.SupabaseUrl)
	assert.Equal(t, []string{"https://jobs.example.com", "http://localhost:3001"}, cfg.AllowedOrigins)
	assert.Equal(t, 100, cfg.RateLimitGlobalThreshold)
	assert.False(t, cfg.DBAutoMigrate)
}
