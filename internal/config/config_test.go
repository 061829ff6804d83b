package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PSQL_HOST", "db")
	t.Setenv("MAX_IMAGE_SIZE", "not-a-number")

	cfg := Load()

	if cfg.Port != "5000" {
		t.Fatalf("expected default port 5000 got %q", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://postgres:postgres@db:5432/classifieds?sslmode=disable" {
		t.Fatalf("unexpected database url %q", cfg.DatabaseURL)
	}
	if cfg.MaxImageSize != 10<<20 {
		t.Fatalf("expected invalid MAX_IMAGE_SIZE to fall back, got %d", cfg.MaxImageSize)
	}
	if cfg.MaxUploadFiles != 10 || cfg.MaxUploadFileSize != 50<<20 {
		t.Fatalf("unexpected upload limits %d/%d", cfg.MaxUploadFiles, cfg.MaxUploadFileSize)
	}
	if cfg.StorageDriver != StorageDriverDisk {
		t.Fatalf("expected disk storage got %q", cfg.StorageDriver)
	}
}

func TestNodeEnvWinsOverEnvironment(t *testing.T) {
	t.Setenv("NODE_ENV", "production")
	t.Setenv("ENVIRONMENT", "development")

	cfg := Load()
	if !cfg.IsProduction() {
		t.Fatalf("expected production, got %q", cfg.Environment)
	}
}
