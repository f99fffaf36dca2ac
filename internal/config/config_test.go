package config

import (
	"strings"
	"testing"
	"time"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Port != 8080 || cfg.Addr() != ":8080" {
		t.Errorf("port = %d, addr = %q", cfg.Port, cfg.Addr())
	}
	if cfg.DatabaseURL != "mongodb://localhost:27017/seekers" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v", cfg.TokenTTL)
	}
	if cfg.MaxUploadRequestBytes != 512<<20 {
		t.Errorf("MaxUploadRequestBytes = %d", cfg.MaxUploadRequestBytes)
	}
	if cfg.IsS3Storage() || cfg.UploadDir != "./public/uploads" {
		t.Errorf("expected local storage under ./public/uploads, got %q %q", cfg.StorageBackend, cfg.UploadDir)
	}
	if cfg.AuthRequired || cfg.AutoSeedDatabase {
		t.Error("auth and auto-seed should default to off")
	}
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://seekers:seekers@db:5432/seekers")
	t.Setenv("STORAGE_BACKEND", " S3 ")
	t.Setenv("S3_BUCKET", "media")
	t.Setenv("AUTH_REQUIRED", "true")
	t.Setenv("TOKEN_TTL", "2h")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Port != 9090 || !cfg.IsS3Storage() || cfg.S3Bucket != "media" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if !cfg.AuthRequired || cfg.TokenTTL != 2*time.Hour {
		t.Errorf("auth = %v ttl = %v", cfg.AuthRequired, cfg.TokenTTL)
	}
}

func TestParse_S3WithoutBucket(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "s3")
	_, err := Parse()
	if err == nil || !strings.Contains(err.Error(), "S3_BUCKET") {
		t.Fatalf("expected S3_BUCKET error, got %v", err)
	}
}

func TestParse_UnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "gcs")
	if _, err := Parse(); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestParse_InvalidDuration(t *testing.T) {
	t.Setenv("READ_TIMEOUT", "soon")
	if _, err := Parse(); err == nil {
		t.Fatal("expected parse error")
	}
}
