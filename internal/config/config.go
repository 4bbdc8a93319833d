package config

import (
	"os"
	"strconv"
)

// Auth modes
const (
	AuthModeNone    = "none"
	AuthModeGateway = "gateway"
	AuthModeJWT     = "jwt"
)

// Config holds the application configuration
type Config struct {
	// Environment
	Environment string
	Port        string

	// Storage
	// - "postgres://..." or a libpq DSN
	// - "sqlite://path/to/file.db" or "sqlite://:memory:"
	DatabaseURL string
	SeedCatalog bool // Load the embedded cantus firmus catalog into an empty table

	// Observability
	SentryDSN string // Sentry DSN for error tracking

	// Auth mode
	// - "none": No auth (self-hosted, local dev)
	// - "gateway": Trust X-User-* headers from an upstream gateway
	// - "jwt": Validate HS256 bearer tokens signed with JWTSecret
	AuthMode  string
	JWTSecret string

	// Rate limiting for the validation endpoint, per client IP
	RateLimitRPS   float64
	RateLimitBurst int
}

func Load() *Config {
	return &Config{
		Environment:    getEnv("ENVIRONMENT", "development"),
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", "sqlite://counterpoint.db"),
		SeedCatalog:    getEnv("SEED_CATALOG", "true") == "true",
		SentryDSN:      getEnv("SENTRY_DSN", ""),
		AuthMode:       getEnv("AUTH_MODE", AuthModeNone), // Default to no auth for self-hosted
		JWTSecret:      getEnv("JWT_SECRET", ""),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 20),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return defaultValue
}

// IsGatewayMode returns true if running behind an auth gateway
func (c *Config) IsGatewayMode() bool {
	return c.AuthMode == AuthModeGateway
}

// IsJWTMode returns true if the API validates its own tokens
func (c *Config) IsJWTMode() bool {
	return c.AuthMode == AuthModeJWT
}

// IsProduction reports the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
