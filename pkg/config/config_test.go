package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}

	if cfg.Catalog.BaseURL != "https://api.escuelajs.co/api/v1" {
		t.Fatalf("unexpected catalog base url: %q", cfg.Catalog.BaseURL)
	}

	if got := cfg.Catalog.Timeout; got != 10*time.Second {
		t.Fatalf("expected default catalog timeout 10s, got %v", got)
	}

	if cfg.Dashboard.DefaultPageSize != 10 {
		t.Fatalf("expected default page size 10, got %d", cfg.Dashboard.DefaultPageSize)
	}

	if cfg.Redis.Enabled() {
		t.Fatalf("redis should be disabled without a URL")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsBadCatalogURL(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCatalogBaseURL, "ftp://catalog.example.com")

	if _, err := Load(); err == nil {
		t.Fatal("expected non-http catalog url to be rejected")
	}
}

func TestLoad_TrimsTrailingSlash(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCatalogBaseURL, "https://api.escuelajs.co/api/v1/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Catalog.BaseURL != "https://api.escuelajs.co/api/v1" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Catalog.BaseURL)
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvCatalogBaseURL, "https://api.escuelajs.co/api/v1")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "Production"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
	if prodConfig.IsDev() {
		t.Fatalf("expected IsDev false for %q", prodConfig.Env)
	}
}
