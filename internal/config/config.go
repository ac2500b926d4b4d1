// Package config handles configuration loading for the CRM auth service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment names recognized in ENVIRONMENT.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// minSecretLength is the minimum accepted JWT signing secret length in bytes.
const minSecretLength = 32

// Config holds all configuration for the auth service.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisHost     string
	RedisPort     string
	RedisPassword string

	JWTSecret string
	JWTExpiry time.Duration

	// Requests allowed per 15-minute window. Auth covers register/login,
	// General covers everything behind a bearer token.
	AuthRateLimit    int
	GeneralRateLimit int

	AllowedOrigins []string
	SwaggerHost    string
	Port           string
	Environment    string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        getEnv("DB_NAME", "crm_db"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTExpiry:     parseDuration(getEnv("JWT_EXPIRY", "168h"), 168*time.Hour),
		SwaggerHost:   os.Getenv("SWAGGER_HOST"),
		Port:          getEnv("PORT", "5000"),
		Environment:   getEnv("ENVIRONMENT", EnvDevelopment),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if len(cfg.JWTSecret) < minSecretLength {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d bytes", minSecretLength)
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = splitAndTrim(origins)
	} else {
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	}

	// Stricter limits on the auth endpoints in production.
	if cfg.IsProduction() {
		cfg.AuthRateLimit = parseInt(getEnv("AUTH_RATE_LIMIT", "5"), 5)
	} else {
		cfg.AuthRateLimit = parseInt(getEnv("AUTH_RATE_LIMIT", "30"), 30)
	}
	cfg.GeneralRateLimit = parseInt(getEnv("GENERAL_RATE_LIMIT", "100"), 100)

	return cfg, nil
}

// IsProduction reports whether the service runs with the production profile.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func parseInt(value string, defaultValue int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func splitAndTrim(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
