package config

import (
	"strings"
	"testing"
	"time"
)

// setRequired sets the env vars without which Load refuses to start.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("RECAPTCHA_SECRET", "sec")
	t.Setenv("RECAPTCHA_SITE_KEY", "site")
	t.Setenv("S3_BUCKET", "uploads-bucket")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("default port = %q", cfg.Port)
	}
	if cfg.GinMode != "release" {
		t.Fatalf("default gin mode = %q", cfg.GinMode)
	}
	if cfg.MaxUploadBytes != DefaultMaxUploadBytes {
		t.Fatalf("default upload cap = %d", cfg.MaxUploadBytes)
	}
	if cfg.MaxUploadBytes != 15*1024*1024 {
		t.Fatalf("upload cap must be 15 MiB, got %d", cfg.MaxUploadBytes)
	}
	if cfg.APIBasePath != "/api/v1" {
		t.Fatalf("default base path = %q", cfg.APIBasePath)
	}
	if cfg.Storage.Backend != "s3" || cfg.Storage.KeyPrefix != "uploads" {
		t.Fatalf("unexpected storage defaults: %+v", cfg.Storage)
	}
	if !strings.Contains(cfg.Recaptcha.VerifyURL, "siteverify") {
		t.Fatalf("unexpected verify URL: %q", cfg.Recaptcha.VerifyURL)
	}
	if cfg.Webhook.URL != "" {
		t.Fatalf("webhook must default to disabled")
	}
	if cfg.OTEL.Enabled {
		t.Fatalf("tracing must default to disabled")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("API_BASE_PATH", "intake/")
	t.Setenv("LOG_LEVEL", "WARNING")
	t.Setenv("STORAGE_KEY_PREFIX", "/docs/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("WEBHOOK_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if cfg.MaxUploadBytes != 1<<20 {
		t.Fatalf("upload cap = %d", cfg.MaxUploadBytes)
	}
	if cfg.APIBasePath != "/intake" {
		t.Fatalf("base path not normalized: %q", cfg.APIBasePath)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("\"warning\" must normalize to warn, got %q", cfg.LogLevel)
	}
	if cfg.Storage.KeyPrefix != "docs" {
		t.Fatalf("key prefix not trimmed: %q", cfg.Storage.KeyPrefix)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("CSV origins not parsed: %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Webhook.Timeout != 3*time.Second {
		t.Fatalf("webhook timeout = %v", cfg.Webhook.Timeout)
	}
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"missing recaptcha secret", map[string]string{"RECAPTCHA_SECRET": " "}},
		{"missing site key", map[string]string{"RECAPTCHA_SITE_KEY": " "}},
		{"bad log level", map[string]string{"LOG_LEVEL": "verbose"}},
		{"zero upload cap", map[string]string{"MAX_UPLOAD_BYTES": "0"}},
		{"negative rps", map[string]string{"RATE_RPS": "-1"}},
		{"zero burst", map[string]string{"RATE_BURST": "0"}},
		{"unknown storage backend", map[string]string{"STORAGE_BACKEND": "gcs"}},
		{"s3 without bucket", map[string]string{"S3_BUCKET": " "}},
		{"sample ratio out of range", map[string]string{"OTEL_TRACES_SAMPLER_ARG": "1.5"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoad_MemoryBackendNeedsNoBucket(t *testing.T) {
	t.Setenv("RECAPTCHA_SECRET", "sec")
	t.Setenv("RECAPTCHA_SITE_KEY", "site")
	t.Setenv("STORAGE_BACKEND", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Backend != "memory" {
		t.Fatalf("backend = %q", cfg.Storage.Backend)
	}
}

func TestMustLoad_PanicsOnInvalid(t *testing.T) {
	t.Setenv("RECAPTCHA_SECRET", "")
	t.Setenv("RECAPTCHA_SITE_KEY", "")
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	MustLoad()
}

func TestNormalizeBasePath(t *testing.T) {
	cases := map[string]string{
		"":         "/",
		"/":        "/",
		"api":      "/api",
		"/api/v1/": "/api/v1",
	}
	for in, want := range cases {
		if got := normalizeBasePath(in); got != want {
			t.Fatalf("normalizeBasePath(%q) = %q, want %q", in, got, want)
		}
	}
}
