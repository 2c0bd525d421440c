// Package config reads process settings from the environment, with an
// optional .env file for local development.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/comitanigiacomo/kanso-habits/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/repository"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

type Config struct {
	Port string

	DBDriver string
	DBDSN    string

	// RedisEnabled is false when REDIS_HOST is unset.
	RedisEnabled bool
	Redis        cache.Options

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	Location     *time.Location
	SaveDebounce time.Duration

	// StateIdleTTL is how long a user's state stays in memory after the
	// last request once it has been persisted.
	StateIdleTTL time.Duration

	RateLimit  int
	RateWindow time.Duration
}

// Load reads envFiles (missing ones are ignored) and then the environment.
// Malformed optional values fall back to their defaults with a warning.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			log.Printf("[CONFIG] No .env loaded: %v", err)
		}
	}

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DBDriver:     getEnv("DB_DRIVER", repository.DriverPgx),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTIssuer:    getEnv("JWT_ISSUER", "kanso-habits"),
		JWTTTL:       getDuration("JWT_TTL", 72*time.Hour),
		SaveDebounce: getDuration("SAVE_DEBOUNCE", 500*time.Millisecond),
		StateIdleTTL: getDuration("STATE_IDLE_TTL", 30*time.Minute),
		RateLimit:    getInt("RATE_LIMIT", 100),
		RateWindow:   getDuration("RATE_WINDOW", time.Minute),
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	switch cfg.DBDriver {
	case repository.DriverSQLite:
		cfg.DBDSN = getEnv("SQLITE_PATH", "kanso.db")
	case repository.DriverPgx, repository.DriverPostgres:
		cfg.DBDSN = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			os.Getenv("DB_NAME"),
			getEnv("DB_SSLMODE", "disable"),
		)
	default:
		return nil, fmt.Errorf("config: unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.RedisEnabled = true
		cfg.Redis = cache.Options{
			Host:     host,
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		}
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "Local"))
	if err != nil {
		log.Printf("[CONFIG] Unknown TIMEZONE, using Local: %v", err)
		loc = time.Local
	}
	cfg.Location = loc

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		log.Printf("[CONFIG] Invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		log.Printf("[CONFIG] Invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return v
}
