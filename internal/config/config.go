package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL   string
	MigrationsDir string

	// Redis
	RedisURL string

	// Quiz
	DefaultUserID       string
	SessionTTL          time.Duration
	RecentActivityLimit int
	RecordCompletions   bool
	FallbackContentPath string

	// Workers
	WorkerCount int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                getEnvOrDefault("PORT", "8080"),
		Env:                 getEnvOrDefault("ENV", "development"),
		DatabaseURL:         mustGetEnv("DATABASE_URL"),
		MigrationsDir:       getEnvOrDefault("MIGRATIONS_DIR", "migrations"),
		RedisURL:            mustGetEnv("REDIS_URL"),
		DefaultUserID:       getEnvOrDefault("DEFAULT_USER_ID", "demo-user"),
		SessionTTL:          getEnvAsDurationOrDefault("SESSION_TTL", 2*time.Hour),
		RecentActivityLimit: getEnvAsIntOrDefault("RECENT_ACTIVITY_LIMIT", 5),
		RecordCompletions:   getEnvAsBoolOrDefault("RECORD_COMPLETIONS", false),
		FallbackContentPath: getEnvOrDefault("FALLBACK_CONTENT_PATH", ""),
		WorkerCount:         getEnvAsIntOrDefault("WORKER_COUNT", 2),
		FrontendURL:         getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsBoolOrDefault(key string, defaultVal bool) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}
