package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	TablePrefix string
	CORSOrigins string
	// Storage
	StorageBackend string // "postgres" or "memory"
	AutoMigrate    bool
	// Identity
	JWTSecret string // HS256 shared secret
	JWKSURL   string // RS256/ES256 keys, takes precedence over JWTSecret
	// Blob storage
	BlobDir        string
	BlobBaseURL    string
	MaxUploadBytes int64
	// Request handling
	RequestTimeout time.Duration
	// Logging
	LogDir      string
	LogMaxFiles int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	tablePrefix := getTablePrefix(env)

	return &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    env,
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		TablePrefix:    tablePrefix,
		CORSOrigins:    getEnv("CORS_ORIGINS", "http://localhost:3000"),
		StorageBackend: getEnv("STORAGE_BACKEND", "postgres"),
		AutoMigrate:    getEnv("AUTO_MIGRATE", getDefaultAutoMigrate(env)) == "true",
		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWKSURL:        getEnv("JWKS_URL", ""),
		BlobDir:        getEnv("BLOB_DIR", "./uploads"),
		BlobBaseURL:    getEnv("BLOB_BASE_URL", ""),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		LogDir:         getEnv("LOG_DIR", ""),
		LogMaxFiles:    int(getEnvInt64("LOG_MAX_FILES", 10)),
	}
}

// getDefaultAutoMigrate creates tables on startup outside production
func getDefaultAutoMigrate(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
