package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/wpdevquiz/proctor/pkg/jwtx"
)

type Config struct {
	JWTSecret      string        // Required: shared secret for HS256 tokens
	AdminSecretKey string        // Optional: shared key that grants the admin flag at register/login
	Issuer         string        // Optional: issuer claim for tokens (default: proctor)
	TokenTTL       time.Duration // Optional: access token lifetime (default: 168h)

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./proctor.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads configuration from the environment, after loading an
// optional .env file for local development. Real environment variables win
// over .env entries.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		JWTSecret:           os.Getenv("JWT_SECRET"),
		AdminSecretKey:      os.Getenv("ADMIN_SECRET_KEY"),
		Issuer:              getEnvOrDefault("TOKEN_ISSUER", "proctor"),
		TokenTTL:            getEnvDurationOrDefault("TOKEN_TTL", jwtx.DefaultTokenTTL),
		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "proctor.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "168h", "30m")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer hours
	if hours, err := strconv.Atoi(value); err == nil {
		return time.Duration(hours) * time.Hour
	}

	return defaultValue
}
