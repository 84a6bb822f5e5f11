// Package config loads application configuration from the environment.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv   string
	LogLevel string
	UserID   string

	// Database
	DBDriver      string
	SQLitePath    string
	MongoURI      string
	MongoDatabase string

	// Redis (optional; timer state falls back to in-memory storage)
	RedisURL string

	// RabbitMQ (optional; events stay on the in-process bus when empty)
	RabbitMQURL string

	// History
	DefaultHistoryDays int
}

// Load loads configuration from environment variables, reading a .env file
// if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		UserID:   getEnv("PULSE_USER_ID", "00000000-0000-0000-0000-000000000001"),

		DBDriver:      getEnv("PULSE_DB_DRIVER", "sqlite"),
		SQLitePath:    getEnv("PULSE_SQLITE_PATH", ""),
		MongoURI:      getEnv("MONGODB_URI", ""),
		MongoDatabase: getEnv("MONGODB_DATABASE", "pulse"),

		RedisURL:    getEnv("REDIS_URL", ""),
		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		DefaultHistoryDays: getIntEnv("PULSE_HISTORY_DAYS", 30),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
