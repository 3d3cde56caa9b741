package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer      string // Issuer claim for access tokens (default: herfa-gate)
	TokenSecret string // Required: HMAC secret for signing access tokens

	DatabaseFile string // Path to SQLite database file (default: ./gate.db)
	PepperFile   string // Path to pepper file for password hashing (default: ./pepper)

	SessionTTL time.Duration // Authenticated session lifetime (default: 24h)
	PendingTTL time.Duration // Second-factor challenge window (default: 5m)

	SessionAreaBackend string // Session-scoped area backend: memory or redis (default: memory)
	RedisAddr          string
	RedisUsername      string
	RedisPassword      string
	RedisDB            int

	SeedUsers    bool   // Seed development accounts on an empty directory
	SeedPassword string // Shared password for seeded accounts

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:      getEnvOrDefault("GATE_ISSUER", "herfa-gate"),
		TokenSecret: os.Getenv("GATE_TOKEN_SECRET"),

		DatabaseFile: getEnvOrDefault("GATE_DATABASE_FILE", "gate.db"),
		PepperFile:   getEnvOrDefault("GATE_PEPPER_FILE", "pepper"),

		SessionTTL: getEnvDurationOrDefault("GATE_SESSION_TTL", 24*time.Hour),
		PendingTTL: getEnvDurationOrDefault("GATE_PENDING_TTL", 5*time.Minute),

		SessionAreaBackend: getEnvOrDefault("GATE_SESSION_AREA", "memory"),
		RedisAddr:          os.Getenv("GATE_REDIS_ADDR"),
		RedisUsername:      os.Getenv("GATE_REDIS_USERNAME"),
		RedisPassword:      os.Getenv("GATE_REDIS_PASSWORD"),
		RedisDB:            getEnvIntOrDefault("GATE_REDIS_DB", 0),

		SeedUsers:    getEnvBoolOrDefault("GATE_SEED_USERS", false),
		SeedPassword: os.Getenv("GATE_SEED_PASSWORD"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Integer values read as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
