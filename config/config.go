package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config is built once at startup and passed by reference into each service.
// It is never mutated afterwards.
type Config struct {
	HTTPAddr    string
	Environment string

	DatabaseURL string

	JWTSecret       []byte
	JWTIssuer       string
	SessionTokenTTL time.Duration
	ResetTokenTTL   time.Duration

	BcryptCost int

	S3Region       string
	S3Bucket       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string

	ResendAPIKey string
	EmailFrom    string
	AppBaseURL   string
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:        envOr("HTTP_ADDR", ":4000"),
		Environment:     envOr("APP_ENV", "development"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       []byte(os.Getenv("JWT_SECRET")),
		JWTIssuer:       envOr("JWT_ISSUER", "VaultGuard"),
		SessionTokenTTL: envDurationOr("SESSION_TOKEN_TTL", 24*time.Hour),
		ResetTokenTTL:   envDurationOr("RESET_TOKEN_TTL", time.Hour),
		BcryptCost:      envIntOr("BCRYPT_COST", 10),
		S3Region:        envOr("S3_REGION", "us-east-1"),
		S3Bucket:        os.Getenv("S3_BUCKET"),
		S3BaseEndpoint:  os.Getenv("S3_BASE_ENDPOINT"),
		S3AccessKey:     os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:     os.Getenv("S3_SECRET_KEY"),
		ResendAPIKey:    os.Getenv("RESEND_API_KEY"),
		EmailFrom:       os.Getenv("EMAIL_FROM"),
		AppBaseURL:      envOr("APP_BASE_URL", "http://localhost:3000"),
	}

	if len(cfg.JWTSecret) == 0 {
		return nil, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func ConnectDB(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
	})
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envIntOr(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
