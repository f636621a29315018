package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	FrontendURL string

	// Persistence: "postgres" needs DATABASE_URL, "memory" needs nothing.
	RepositoryDriver string
	DBUrl            string

	// File storage: "s3" or "local".
	StorageDriver string
	UploadDir     string
	// S3-compatible storage; Endpoint overrides AWS (LocalStack, MinIO).
	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string

	// Redis for rate limiting; optional, in-memory fallback when absent.
	RedisURL      string
	RedisPassword string

	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	RateLimitUploadThreshold int
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when no .env exists.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:4200"), "/"),

		RepositoryDriver: getEnv("REPOSITORY_DRIVER", ""),
		DBUrl:            getEnv("DATABASE_URL", ""),

		StorageDriver:     getEnv("STORAGE_DRIVER", "local"),
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
		S3Bucket:          getEnv("S3_BUCKET_NAME", "candidates-files"),
		S3Region:          getEnv("AWS_REGION", "us-east-1"),
		S3Endpoint:        getEnv("AWS_ENDPOINT", ""),
		S3AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		RateLimitUploadThreshold: getEnvInt("RATE_LIMIT_UPLOAD_THRESHOLD", 10),
	}

	// Driver selection: explicit env wins, otherwise follow DATABASE_URL.
	if cfg.RepositoryDriver == "" {
		if cfg.DBUrl != "" {
			cfg.RepositoryDriver = "postgres"
		} else {
			cfg.RepositoryDriver = "memory"
		}
	}

	if cfg.RepositoryDriver == "postgres" && cfg.DBUrl == "" {
		log.Println("WARNING: REPOSITORY_DRIVER is postgres but DATABASE_URL is missing.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
