package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRuntimeDefaults(t *testing.T) {
	cfg := Default()
	if cfg.ErrorTimeout() != 3*time.Second {
		t.Fatalf("unexpected error timeout default: %+v", cfg)
	}
	if cfg.RequestTimeout() != 10*time.Second || cfg.BaseURL != DefaultBaseURL {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
	if cfg.HasIdentity() {
		t.Fatal("expected no identity by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestRuntimeFromEnv(t *testing.T) {
	t.Setenv("TODOSYNC_USER_ID", "970")
	t.Setenv("TODOSYNC_BASE_URL", "http://localhost:3000")
	t.Setenv("TODOSYNC_ERROR_TIMEOUT_MS", "1500")
	t.Setenv("TODOSYNC_REQUEST_TIMEOUT_MS", "250")
	t.Setenv("TODOSYNC_DEBUG", "yes")
	t.Setenv("TODOSYNC_LOG_FILE", "logs/debug.log")

	cfg := FromEnv(Default())
	if cfg.UserID != 970 || !cfg.HasIdentity() {
		t.Fatalf("unexpected user id: %+v", cfg)
	}
	if cfg.BaseURL != "http://localhost:3000" || cfg.ErrorTimeoutMS != 1500 || cfg.RequestTimeoutMS != 250 {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if !cfg.Debug || cfg.LogFile != "logs/debug.log" {
		t.Fatalf("unexpected logging overrides: %+v", cfg)
	}
}

func TestRuntimeFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("TODOSYNC_USER_ID", "abc")
	t.Setenv("TODOSYNC_ERROR_TIMEOUT_MS", "-5")
	t.Setenv("TODOSYNC_DEBUG", "maybe")

	cfg := FromEnv(Default())
	if cfg != Default() {
		t.Fatalf("expected defaults to survive invalid env, got %+v", cfg)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todosync.yaml")
	body := "user_id: 42\nbase_url: http://127.0.0.1:3000\nerror_timeout_ms: 500\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path, Default())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.UserID != 42 || cfg.BaseURL != "http://127.0.0.1:3000" || cfg.ErrorTimeoutMS != 500 {
		t.Fatalf("unexpected loaded config: %+v", cfg)
	}
	if cfg.RequestTimeoutMS != DefaultRequestTimeoutMS {
		t.Fatalf("expected unset fields to keep defaults: %+v", cfg)
	}
}

func TestLoadMissingFileKeepsBase(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), Default())
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("user_id: [1, 2"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path, Default()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.BaseURL = "not a url"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for base url, got %v", err)
	}

	cfg = Default()
	cfg.ErrorTimeoutMS = 0
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for timeout, got %v", err)
	}

	cfg = Default()
	cfg.UserID = -1
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for user id, got %v", err)
	}
}
