package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const (
	defaultPort               = "8080"
	defaultJWTSecret          = "change-me-jwt-secret"
	defaultJWTAccessTTL       = "24h"
	defaultTimezone           = "Asia/Seoul"
	defaultCompletionSchedule = "*/15 * * * *"
	defaultCompletionGrace    = "24h"
	defaultRedisKeyPrefix     = "meetingroom:lock:"
	defaultDBLogLevel         = "warn"
)

type Config struct {
	AppEnv   string
	Port     string
	GinMode  string
	Database DatabaseConfig
	Auth     AuthConfig
	Redis    RedisConfig

	// Location is where operating hours and calendar dates are evaluated.
	Location *time.Location
	// AllowedOrigins extends the CORS and websocket origin allow-list.
	AllowedOrigins     []string
	CompletionSchedule string
	// CompletionGrace is how long after its end a confirmed booking stays
	// open for an administrator to record a no-show.
	CompletionGrace time.Duration
}

type DatabaseConfig struct {
	URL      string
	LogLevel string
}

type AuthConfig struct {
	JWTSecret    string
	JWTAccessTTL time.Duration
}

// RedisConfig is optional. Without an address the process serializes
// bookings with in-memory locks, which is only correct for one instance.
type RedisConfig struct {
	Addr      string
	Username  string
	Password  string
	KeyPrefix string
}

func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// Load reads the environment, after merging a .env file when one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Printf("config: loaded .env")
	}

	cfg := &Config{
		AppEnv:  strings.ToLower(firstNonEmpty(os.Getenv("APP_ENV"), os.Getenv("ENV"), "dev")),
		Port:    strings.TrimSpace(getEnv("PORT", defaultPort)),
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),
		Database: DatabaseConfig{
			URL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
			LogLevel: strings.ToLower(strings.TrimSpace(getEnv("DB_LOG_LEVEL", defaultDBLogLevel))),
		},
		Auth: AuthConfig{
			JWTSecret: strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret)),
		},
		Redis: RedisConfig{
			Addr:      strings.TrimSpace(os.Getenv("REDIS_ADDR")),
			Username:  strings.TrimSpace(os.Getenv("REDIS_USERNAME")),
			Password:  os.Getenv("REDIS_PASSWORD"),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", defaultRedisKeyPrefix),
		},
		AllowedOrigins:     splitList(os.Getenv("ALLOWED_ORIGINS")),
		CompletionSchedule: strings.TrimSpace(getEnv("COMPLETION_SCHEDULE", defaultCompletionSchedule)),
	}

	var err error
	cfg.Auth.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}

	cfg.CompletionGrace, err = parseDurationEnv("COMPLETION_GRACE", defaultCompletionGrace)
	if err != nil {
		return nil, err
	}

	tz := strings.TrimSpace(getEnv("APP_TIMEZONE", defaultTimezone))
	cfg.Location, err = time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", tz, err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("config: env=%s port=%s timezone=%s redis=%t completion_schedule=%q completion_grace=%s",
		cfg.AppEnv, cfg.Port, cfg.Location, cfg.Redis.Enabled(), cfg.CompletionSchedule, cfg.CompletionGrace)
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL must be set")
	}
	if cfg.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if cfg.Auth.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	switch cfg.Database.LogLevel {
	case "silent", "error", "warn", "info":
	default:
		return fmt.Errorf("DB_LOG_LEVEL must be one of: silent, error, warn, info")
	}
	if _, err := cron.ParseStandard(cfg.CompletionSchedule); err != nil {
		return fmt.Errorf("invalid COMPLETION_SCHEDULE %q: %w", cfg.CompletionSchedule, err)
	}
	if cfg.CompletionGrace < 0 {
		return fmt.Errorf("COMPLETION_GRACE must be >= 0")
	}

	if cfg.IsProdLike() {
		if isEmptyOrDefault(cfg.Auth.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
	}
	return nil
}

func (c *Config) IsProdLike() bool {
	return isProdLike(c.AppEnv)
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
