package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries everything the server needs from the environment. A
// .env file is read when present; real environment variables win.
type Config struct {
	DatabaseURL string
	Port        int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	ReportBucket   string

	JWKSURL       string
	WebhookSecret string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
	TwilioBaseURL    string
}

func Load() (*Config, error) {
	// .env is optional; missing file is not an error
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		Port:             envInt("PORT", 8080),
		RedisAddr:        envDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          envInt("REDIS_DB", 0),
		MinioEndpoint:    envDefault("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:   envDefault("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey:   envDefault("MINIO_SECRET_KEY", "minioadmin"),
		MinioUseSSL:      os.Getenv("MINIO_USE_SSL") == "true",
		ReportBucket:     envDefault("REPORT_BUCKET", "property-reports"),
		JWKSURL:          os.Getenv("JWKS_URL"),
		WebhookSecret:    os.Getenv("WEBHOOK_SECRET"),
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
		TwilioBaseURL:    envDefault("TWILIO_BASE_URL", "https://api.twilio.com/2010-04-01"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.JWKSURL == "" {
		return nil, fmt.Errorf("JWKS_URL environment variable is required")
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
