package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	resetEnv := func(t *testing.T) {
		t.Helper()
		for _, key := range []string{"PORT", "DB_PATH", "DATABASE_URL", "JWT_SECRET", "TOKEN_TTL"} {
			t.Setenv(key, "")
		}
	}

	t.Run("Defaults", func(t *testing.T) {
		resetEnv(t)
		t.Setenv("JWT_SECRET", "secret")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.Port != 8080 {
			t.Errorf("Expected Port 8080, got %d", cfg.Port)
		}
		if cfg.DBPath != "./data/mealplans.db" {
			t.Errorf("Unexpected DBPath %q", cfg.DBPath)
		}
		if cfg.TokenTTL != 24*time.Hour {
			t.Errorf("Expected TokenTTL 24h, got %v", cfg.TokenTTL)
		}
		if cfg.Addr() != ":8080" {
			t.Errorf("Unexpected Addr %q", cfg.Addr())
		}
	})

	t.Run("Overrides", func(t *testing.T) {
		resetEnv(t)
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("PORT", "9000")
		t.Setenv("TOKEN_TTL", "15m")
		t.Setenv("DATABASE_URL", "postgres://localhost/mealplans")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.Port != 9000 || cfg.TokenTTL != 15*time.Minute {
			t.Errorf("Overrides not applied: %+v", cfg)
		}
		if cfg.DatabaseURL != "postgres://localhost/mealplans" {
			t.Errorf("Unexpected DatabaseURL %q", cfg.DatabaseURL)
		}
	})

	t.Run("MissingJWTSecret", func(t *testing.T) {
		resetEnv(t)

		_, err := Load()
		if err == nil {
			t.Fatal("Expected an error for missing JWT_SECRET, got nil")
		}
		expectedError := "JWT_SECRET environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("InvalidPort", func(t *testing.T) {
		resetEnv(t)
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("PORT", "http")

		if _, err := Load(); err == nil {
			t.Fatal("Expected an error for invalid PORT, got nil")
		}
	})

	t.Run("InvalidTokenTTL", func(t *testing.T) {
		resetEnv(t)
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("TOKEN_TTL", "-1h")

		if _, err := Load(); err == nil {
			t.Fatal("Expected an error for negative TOKEN_TTL, got nil")
		}
	})

	t.Run("EnvFile", func(t *testing.T) {
		resetEnv(t)
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("PORT")

		path := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(path, []byte("JWT_SECRET=from-file\nPORT=7070\n"), 0o600); err != nil {
			t.Fatalf("write env file: %v", err)
		}

		cfg, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.JWTSecret != "from-file" || cfg.Port != 7070 {
			t.Errorf("env file not applied: %+v", cfg)
		}
	})
}
