package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configuration for the application. Third-party API keys
// are read by the services that own them; this struct carries the wiring
// the process itself needs.
type Config struct {
	// Server configuration
	ServerPort string

	// JWT configuration (validation only; tokens are issued elsewhere)
	JWTSecret string

	// Image store backend: "host" (default) or "s3"
	ImageStoreBackend string

	// Database configuration for the experience store
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration for the card cache
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

// LoadConfig creates a new Config instance from environment variables, with
// Docker secrets as a fallback for sensitive values.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		JWTSecret:         getSecret("JWT_SECRET", "jwt_secret"),
		ImageStoreBackend: getEnv("IMAGE_STORE_BACKEND", "host"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getSecret("DB_PASSWORD", "db_password"),
		DBName:            getEnv("DB_NAME", "autonomeal"),
		DBSSLMode:         getEnv("DB_SSL_MODE", "disable"),
		RedisHost:         getEnv("REDIS_HOST", "localhost"),
		RedisPort:         getEnv("REDIS_PORT", "6379"),
		RedisPassword:     getSecret("REDIS_PASSWORD", "redis_password"),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	if cfg.ImageStoreBackend != "host" && cfg.ImageStoreBackend != "s3" {
		return nil, fmt.Errorf("IMAGE_STORE_BACKEND must be \"host\" or \"s3\", got %q", cfg.ImageStoreBackend)
	}

	return cfg, nil
}

// DSN builds the postgres connection string for the experience store.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getSecret prefers the environment variable and falls back to a Docker
// secret file of the given name.
func getSecret(envKey, secretName string) string {
	if value := os.Getenv(envKey); value != "" {
		return value
	}

	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, secretName)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
