package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string
	DatabaseURL    string
	DatabasePath   string
	MigrationsPath string

	// TokenSecret signs bearer tokens. Loaded once at startup; rotating it
	// invalidates every outstanding token.
	TokenSecret   string
	TokenDuration time.Duration

	SESRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string
}

// defaultTokenSecret is only acceptable for local development
const defaultTokenSecret = "dev-only-insecure-secret"

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg := &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:    getEnv("DB_URL", ""),
		DatabasePath:   getEnv("DB_PATH", "./kidic.db"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		TokenSecret:    getEnv("TOKEN_SECRET", defaultTokenSecret),
		TokenDuration:  getEnvHours("TOKEN_DURATION_HOURS", 24),
		SESRegion:      getEnv("SES_REGION", "us-east-1"),
		SESFromEmail:   getEnv("SES_FROM_EMAIL", ""),
		SESFromName:    getEnv("SES_FROM_NAME", "Kidic"),
		AppBaseURL:     getEnv("APP_BASE_URL", "http://localhost:8080"),
	}

	if cfg.TokenSecret == defaultTokenSecret {
		log.Println("Warning: TOKEN_SECRET not set, using insecure development secret")
	}

	return cfg
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvHours reads an environment variable holding a whole number of hours
func getEnvHours(key string, defaultValue int64) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil && n > 0 {
			return time.Duration(n) * time.Hour
		}
		log.Printf("Warning: invalid %s value %q, using default", key, value)
	}
	return time.Duration(defaultValue) * time.Hour
}
