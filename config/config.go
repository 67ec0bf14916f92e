package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	LogLevel    string
	DBUrl       string
	FrontendURL string
	AutoMigrate bool
	// Token Configuration
	JWTSecret    string
	JWTExpiry    time.Duration
	CookieSecure bool
	// Attachment Store (S3 or S3-compatible)
	AWSRegion          string
	AWSBucketName      string
	AWSAccessKey       string
	AWSSecretKey       string
	S3Endpoint         string // Optional, enables path-style addressing (MinIO, LocalStack)
	S3SignedURLTTL     time.Duration
	MaxResumeSizeBytes int64
	// Timeouts on outbound calls
	StorageTimeout time.Duration
	DBTimeout      time.Duration
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitLoginThreshold  int
	RateLimitGlobalThreshold int
	FailedLoginBlockMinutes  int
	FailedLoginMaxAttempts   int
}

func LoadConfig() (*Config, error) {
	// .env is optional; real environment variables always win
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "debug"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		AutoMigrate: getEnvBool("AUTO_MIGRATE", true),
		// Token Configuration
		JWTSecret:    getEnv("JWT_SECRET_ACCESS_TOKEN", ""),
		JWTExpiry:    getEnvDuration("JWT_SECRET_ACCESS_TOKEN_EXPIRY", 24*time.Hour),
		CookieSecure: getEnvBool("COOKIE_SECURE", true),
		// Attachment Store
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSBucketName:      getEnv("AWS_BUCKET_NAME", ""),
		AWSAccessKey:       getEnv("AWS_ACCESS_KEY", ""),
		AWSSecretKey:       getEnv("AWS_SECRET_KEY", ""),
		S3Endpoint:         strings.TrimRight(getEnv("S3_ENDPOINT", ""), "/"),
		S3SignedURLTTL:     getEnvDuration("S3_SIGNED_URL_TTL", time.Hour),
		MaxResumeSizeBytes: int64(getEnvInt("MAX_RESUME_SIZE_MB", 5)) << 20,
		// Timeouts
		StorageTimeout: time.Duration(getEnvInt("STORAGE_TIMEOUT_SECONDS", 10)) * time.Second,
		DBTimeout:      time.Duration(getEnvInt("DB_TIMEOUT_SECONDS", 5)) * time.Second,
		// Redis
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate Limiting (with sensible defaults)
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitLoginThreshold:  getEnvInt("RATE_LIMIT_LOGIN_THRESHOLD", 10),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		FailedLoginBlockMinutes:  getEnvInt("FAILED_LOGIN_BLOCK_MINUTES", 15),
		FailedLoginMaxAttempts:   getEnvInt("FAILED_LOGIN_MAX_ATTEMPTS", 5),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}

	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET_ACCESS_TOKEN is missing. Tokens cannot be issued.")
	}

	if cfg.AWSBucketName == "" {
		log.Println("WARNING: AWS_BUCKET_NAME is missing. Resume uploads will fail.")
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting and token revocation will use in-memory fallback.")
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

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("24h") and the bare-number day
// shorthand used by older deployments ("1d").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if strings.HasSuffix(value, "d") {
		if days, err := strconv.Atoi(strings.TrimSuffix(value, "d")); err == nil && days > 0 {
			return time.Duration(days) * 24 * time.Hour
		}
	}
	return fallback
}
