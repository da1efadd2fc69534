package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	JWTSecret   string
	JWTIssuer   string
	TokenTTL    time.Duration
	// Security policies applied at registration.
	MinPasswordLength int
	MinAge            int
	CORSOrigins       []string
}

// Load reads configuration from the environment and performs minimal
// validation. A missing signing secret or database URL is fatal; there is no
// server-side revocation, so the secret is the only session kill switch.
func Load() (Config, error) {
	cfg := Config{
		Port:              fallback(os.Getenv("PORT"), "8080"),
		Environment:       fallback(os.Getenv("APP_ENV"), "development"),
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:         strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:         fallback(os.Getenv("JWT_ISSUER"), "userhub-backend"),
		TokenTTL:          minutesOrDefault("JWT_TTL_MINUTES", 30),
		MinPasswordLength: intOrDefault("MIN_PASSWORD_LENGTH", 12),
		MinAge:            intOrDefault("MIN_AGE", 13),
		CORSOrigins:       parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// IsProduction reports whether the process runs with the production profile.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func intOrDefault(key string, def int) int {
	if value, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key))); err == nil && value > 0 {
		return value
	}
	return def
}

func minutesOrDefault(key string, def int) time.Duration {
	return time.Duration(intOrDefault(key, def)) * time.Minute
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
