package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.SignBytesMode != ModeCometLengthPrefix {
		t.Fatalf("expected default sign-bytes mode %s, got %s", ModeCometLengthPrefix, cfg.SignBytesMode)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SignBytesMode != ModeCometLengthPrefix {
		t.Fatalf("expected default, got %v", cfg)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("LIGHTCOMMIT_TEST_LOG_LEVEL", "debug")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "log_level: ${LIGHTCOMMIT_TEST_LOG_LEVEL}\nsign_bytes_mode: ${LIGHTCOMMIT_TEST_MODE:-fixed-prefix-0x71}\nmax_workers: 4\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected env-substituted log_level=debug, got %s", cfg.LogLevel)
	}
	if cfg.SignBytesMode != ModeFixedPrefix0x71 {
		t.Fatalf("expected default-substituted sign_bytes_mode, got %s", cfg.SignBytesMode)
	}
}

func TestValidateRejectsUnknownMode(t *testing.T) {
	cfg := Default()
	cfg.SignBytesMode = "not-a-real-mode"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown sign-bytes mode")
	}
}

func TestValidateRejectsParallelWithoutWorkers(t *testing.T) {
	cfg := Default()
	cfg.Parallel = true
	cfg.MaxWorkers = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for parallel mode with zero workers")
	}
}
