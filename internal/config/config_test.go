package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-32-characters-long!")
	os.Setenv("DB_PASSWORD", "test")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if cfg.Database.Name != "refind" {
		t.Errorf("Database.Name: got %q, want %q", cfg.Database.Name, "refind")
	}
	if cfg.Cleanup.Interval != 24*time.Hour {
		t.Errorf("Cleanup.Interval: got %v, want %v", cfg.Cleanup.Interval, 24*time.Hour)
	}
	if cfg.Auth.AccessTokenExpiry != 24*time.Hour {
		t.Errorf("Auth.AccessTokenExpiry: got %v, want %v", cfg.Auth.AccessTokenExpiry, 24*time.Hour)
	}
	if cfg.Uploads.Dir != "uploads" {
		t.Errorf("Uploads.Dir: got %q, want %q", cfg.Uploads.Dir, "uploads")
	}
}

func TestLoad_CustomCleanupInterval(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-32-characters-long!")
	os.Setenv("DB_PASSWORD", "test")
	os.Setenv("CLEANUP_INTERVAL", "6h")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if cfg.Cleanup.Interval != 6*time.Hour {
		t.Errorf("Cleanup.Interval: got %v, want %v", cfg.Cleanup.Interval, 6*time.Hour)
	}
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-32-characters-long!")
	os.Setenv("DB_PASSWORD", "test")
	os.Setenv("CLEANUP_INTERVAL", "not-a-duration")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if cfg.Cleanup.Interval != 24*time.Hour {
		t.Errorf("Cleanup.Interval with invalid value: got %v, want %v", cfg.Cleanup.Interval, 24*time.Hour)
	}
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	os.Clearenv()
	os.Setenv("DB_PASSWORD", "test")
	defer os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() without JWT_SECRET should fail")
	}
}

func TestLoad_WeakJWTSecret(t *testing.T) {
	os.Setenv("JWT_SECRET", "short")
	os.Setenv("DB_PASSWORD", "test")
	defer os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() with short JWT_SECRET should fail")
	}
}

func TestLoad_MissingDBPassword(t *testing.T) {
	os.Clearenv()
	os.Setenv("JWT_SECRET", "test-secret-32-characters-long!")
	defer os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() without DB_PASSWORD should fail")
	}
}
