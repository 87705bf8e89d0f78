package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	DatabasePath         string
	RemoteAPIURL         string
	RedisURL             string
	JWTSecret            string
	JWTTTLHours          int
	ServerPort           string
	SyncIntervalSec      int
	RemoteTimeoutSec     int
	BcryptCost           int
	ArchiveRetentionDays int
}

func Load() *Config {
	// Load .env file if exists
	godotenv.Load()

	return &Config{
		DatabasePath:         getEnv("DATABASE_PATH", "gescom.db"),
		RemoteAPIURL:         getEnv("REMOTE_API_URL", "http://localhost:3000"),
		RedisURL:             getEnv("REDIS_URL", ""),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		JWTTTLHours:          getEnvAsInt("JWT_TTL_HOURS", 24),
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		SyncIntervalSec:      getEnvAsInt("SYNC_INTERVAL_SECONDS", 60),
		RemoteTimeoutSec:     getEnvAsInt("REMOTE_TIMEOUT_SECONDS", 10),
		BcryptCost:           getEnvAsInt("BCRYPT_COST", bcrypt.DefaultCost),
		ArchiveRetentionDays: getEnvAsInt("ARCHIVE_RETENTION_DAYS", 90),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
