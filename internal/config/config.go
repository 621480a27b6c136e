// Package config loads application configuration from the environment.
// Defaults preserve the zero-config behavior of a local two-tier setup:
// the API on :5000, the web frontend on :8080, and a sqlite database file.
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds configuration for both tiers.
type Config struct {
	Env string

	// API tier
	APIPort string

	// Web tier
	WebPort       string
	APIBaseURL    string
	SessionSecret string

	// Database
	DBDriver   string // "sqlite" or "postgres"
	DBPath     string // sqlite file path
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
}

// Load loads configuration from environment variables, reading a .env file
// first if one is present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	return &Config{
		Env: getEnv("ENV", "development"),

		APIPort: getEnv("API_PORT", "5000"),

		WebPort:       getEnv("WEB_PORT", "8080"),
		APIBaseURL:    getEnv("API_BASE_URL", "http://127.0.0.1:5000"),
		SessionSecret: getEnv("SESSION_SECRET", "dev-session-secret"),

		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBPath:     getEnv("DB_PATH", "database/database.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "outlay"),
		DBPassword: getEnv("DB_PASSWORD", "outlay"),
		DBName:     getEnv("DB_NAME", "outlay"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
	}, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
