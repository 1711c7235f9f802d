package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "ENV", "PORT", "DATABASE_URL", "JWT_SECRET", "JWT_ACCESS_TTL", "APP_TIMEZONE",
		"REDIS_ADDR", "ALLOWED_ORIGINS", "COMPLETION_SCHEDULE", "COMPLETION_GRACE", "DB_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
	for k, v := range kv {
		t.Setenv(k, v)
	}
}

func TestLoadDefaults(t *testing.T) {
	setEnv(t, map[string]string{"DATABASE_URL": "file:test.db"})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "Asia/Seoul", cfg.Location.String())
	assert.Equal(t, 24*time.Hour, cfg.Auth.JWTAccessTTL)
	assert.Equal(t, "*/15 * * * *", cfg.CompletionSchedule)
	assert.Equal(t, 24*time.Hour, cfg.CompletionGrace)
	assert.False(t, cfg.Redis.Enabled())
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	setEnv(t, map[string]string{
		"DATABASE_URL":     "postgres://localhost/rooms",
		"APP_TIMEZONE":     "UTC",
		"REDIS_ADDR":       "localhost:6379",
		"ALLOWED_ORIGINS":  "https://rooms.example.com, http://localhost:5173 ,",
		"JWT_ACCESS_TTL":   "30m",
		"COMPLETION_GRACE": "0s",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, []string{"https://rooms.example.com", "http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, 30*time.Minute, cfg.Auth.JWTAccessTTL)
	assert.Zero(t, cfg.CompletionGrace)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	cases := map[string]map[string]string{
		"missing database": {},
		"bad timezone":     {"DATABASE_URL": "x", "APP_TIMEZONE": "Mars/Olympus"},
		"bad schedule":     {"DATABASE_URL": "x", "COMPLETION_SCHEDULE": "sometimes"},
		"bad ttl":          {"DATABASE_URL": "x", "JWT_ACCESS_TTL": "-1m"},
		"bad log level":    {"DATABASE_URL": "x", "DB_LOG_LEVEL": "loud"},
		"negative grace":   {"DATABASE_URL": "x", "COMPLETION_GRACE": "-1h"},
		"unparsable grace": {"DATABASE_URL": "x", "COMPLETION_GRACE": "a while"},
		"default prod key": {"DATABASE_URL": "x", "APP_ENV": "production"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			setEnv(t, env)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestProdWithSecret(t *testing.T) {
	setEnv(t, map[string]string{"DATABASE_URL": "x", "APP_ENV": "release", "JWT_SECRET": "s3cret"})
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProdLike())
}
