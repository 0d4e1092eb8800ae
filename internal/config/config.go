package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Config holds all configuration for the application
type Config struct {
	Port          string
	DatabaseURL   string
	SessionSecret string
	SessionTTL    time.Duration
	LogLevel      string
	CORSOrigin    string
}

// Load loads configuration from environment variables. All missing required
// variables are reported together rather than one at a time.
func Load() (*Config, error) {
	cfg := &Config{
		Port:       getEnvOrDefault("PORT", "8080"),
		LogLevel:   getEnvOrDefault("LOG_LEVEL", "info"),
		CORSOrigin: getEnvOrDefault("CORS_ORIGIN", "http://localhost:5173"),
		SessionTTL: 24 * time.Hour,
	}

	var errs *multierror.Error
	if cfg.DatabaseURL = os.Getenv("DATABASE_URL"); cfg.DatabaseURL == "" {
		errs = multierror.Append(errs, fmt.Errorf("DATABASE_URL environment variable is required"))
	}
	if cfg.SessionSecret = os.Getenv("SESSION_SECRET"); cfg.SessionSecret == "" {
		errs = multierror.Append(errs, fmt.Errorf("SESSION_SECRET environment variable is required"))
	}

	if raw := os.Getenv("SESSION_TTL_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			errs = multierror.Append(errs, fmt.Errorf("SESSION_TTL_HOURS must be a positive integer, got %q", raw))
		} else {
			cfg.SessionTTL = time.Duration(hours) * time.Hour
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
