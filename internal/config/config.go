package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Storage backends.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config holds the environment driven configuration of the API server and its tools.
type Config struct {
	Port            int           `env:"PORT" envDefault:"8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"INFO"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Store: mongodb:// or mongodb+srv:// selects MongoDB, anything else is a Postgres DSN.
	DatabaseURL  string `env:"DATABASE_URL" envDefault:"mongodb://localhost:27017/seekers"`
	DatabaseName string `env:"DATABASE_NAME" envDefault:"seekers"`

	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`

	// Admin authentication
	JWTSecret     string        `env:"JWT_SECRET" envDefault:"dev-only-change-me"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	AdminEmail    string        `env:"ADMIN_EMAIL" envDefault:"admin@seekersentertainment.com"`
	AdminPassword string        `env:"ADMIN_PASSWORD" envDefault:"admin123"`
	AuthRequired  bool          `env:"AUTH_REQUIRED" envDefault:"false"`

	// Uploads
	StorageBackend        string `env:"STORAGE_BACKEND" envDefault:"local"`
	UploadDir             string `env:"UPLOAD_DIR" envDefault:"./public/uploads"`
	UploadURLPrefix       string `env:"UPLOAD_URL_PREFIX" envDefault:"/uploads"`
	MaxUploadRequestBytes int64  `env:"MAX_UPLOAD_REQUEST_BYTES" envDefault:"536870912"`

	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3Region          string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Bucket          string `env:"S3_BUCKET"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	S3PublicURL       string `env:"S3_PUBLIC_URL"`
	S3UsePathStyle    bool   `env:"S3_USE_PATH_STYLE" envDefault:"false"`

	// Seeding
	AutoSeedDatabase bool   `env:"AUTO_SEED_DATABASE" envDefault:"false"`
	ClearDBOnSeed    bool   `env:"CLEAR_DB_ON_SEED" envDefault:"false"`
	SeedSecret       string `env:"SEED_SECRET" envDefault:"default-seed-secret"`

	// Per-IP contact form submissions per minute.
	ContactRateLimit int `env:"CONTACT_RATE_LIMIT" envDefault:"5"`
}

// Load reads .env (if present) and parses the environment into Config.
func Load() (*Config, error) {
	_ = godotenv.Load()
	_ = godotenv.Load("../.env")
	return Parse()
}

// Parse parses the current environment without touching .env files.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}
	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))
	cfg.S3Bucket = strings.TrimSpace(cfg.S3Bucket)
	cfg.S3Endpoint = strings.TrimSpace(cfg.S3Endpoint)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageBackend {
	case StorageLocal:
	case StorageS3:
		if c.S3Bucket == "" {
			return errors.New("S3_BUCKET is required when STORAGE_BACKEND is s3")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", StorageLocal, StorageS3, c.StorageBackend)
	}
	if c.AuthRequired && strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET is required when AUTH_REQUIRED is true")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if c.MaxUploadRequestBytes <= 0 {
		return errors.New("MAX_UPLOAD_REQUEST_BYTES must be positive")
	}
	if c.ContactRateLimit <= 0 {
		return errors.New("CONTACT_RATE_LIMIT must be positive")
	}
	return nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// IsS3Storage reports whether uploads go to S3.
func (c *Config) IsS3Storage() bool {
	return c.StorageBackend == StorageS3
}
