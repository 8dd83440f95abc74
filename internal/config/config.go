// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, database path, upload limits, reCAPTCHA
// credentials, blob storage, and observability.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "doc-intake-backend")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// RecaptchaConfig holds the bot-challenge credentials. Both keys are injected
// at deploy time; absence of either is a startup-fatal misconfiguration
// (validated in Load, enforced by MustLoad) rather than a first-use failure.
type RecaptchaConfig struct {
	SiteKey   string        // RECAPTCHA_SITE_KEY (public widget key, echoed to clients)
	Secret    string        // RECAPTCHA_SECRET (server-held, never logged)
	VerifyURL string        // RECAPTCHA_VERIFY_URL (override for tests)
	Timeout   time.Duration // RECAPTCHA_TIMEOUT
}

// StorageConfig selects and parametrizes the blob store backend.
//
// Backend "s3" targets any S3-compatible store (AWS, MinIO, Supabase Storage
// over its S3 endpoint). Backend "memory" is intended for tests and local
// development only.
type StorageConfig struct {
	Backend      string // STORAGE_BACKEND: s3|memory
	Bucket       string // S3_BUCKET
	Region       string // S3_REGION
	BaseEndpoint string // S3_BASE_ENDPOINT (empty for AWS)
	AccessKey    string // S3_ACCESS_KEY
	SecretKey    string // S3_SECRET_KEY
	UsePathStyle bool   // S3_USE_PATH_STYLE (true for MinIO)
	KeyPrefix    string // STORAGE_KEY_PREFIX, e.g. "uploads"
}

// WebhookConfig configures the fire-and-forget outbound notification.
type WebhookConfig struct {
	URL     string        // WEBHOOK_URL (empty disables notification)
	Timeout time.Duration // WEBHOOK_TIMEOUT
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 60s (uploads)
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	// App
	DBPath          string // SQLite path
	MaxUploadBytes  int64  // hard cap for the uploaded file
	PDFDeepValidate bool   // run pdfcpu over uploaded bytes
	IPLookupURL     string // external IP lookup fallback (empty disables)

	// Rate limiting
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// External collaborators
	Recaptcha RecaptchaConfig
	Storage   StorageConfig
	Webhook   WebhookConfig

	// Observability
	OTEL OTELConfig
}

// DefaultMaxUploadBytes is the uploaded file size cap: 15 MiB, boundary
// inclusive (a file of exactly this size is accepted).
const DefaultMaxUploadBytes = 15 * 1024 * 1024

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(getenv("API_BASE_PATH", "/api/v1")),

		// App
		DBPath:          getenv("DB_PATH", "app.db"),
		MaxUploadBytes:  getint64("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),
		PDFDeepValidate: getbool("PDF_DEEP_VALIDATE", false),
		IPLookupURL:     getenv("IP_LOOKUP_URL", ""),

		// Rate limiting
		RateRPS:   getfloat("RATE_RPS", 5.0),
		RateBurst: getint("RATE_BURST", 10),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// External collaborators
		Recaptcha: RecaptchaConfig{
			SiteKey:   getenv("RECAPTCHA_SITE_KEY", ""),
			Secret:    getenv("RECAPTCHA_SECRET", ""),
			VerifyURL: getenv("RECAPTCHA_VERIFY_URL", "https://www.google.com/recaptcha/api/siteverify"),
			Timeout:   getdur("RECAPTCHA_TIMEOUT", 10*time.Second),
		},
		Storage: StorageConfig{
			Backend:      strings.ToLower(getenv("STORAGE_BACKEND", "s3")),
			Bucket:       getenv("S3_BUCKET", ""),
			Region:       getenv("S3_REGION", "us-east-1"),
			BaseEndpoint: getenv("S3_BASE_ENDPOINT", ""),
			AccessKey:    getenv("S3_ACCESS_KEY", ""),
			SecretKey:    getenv("S3_SECRET_KEY", ""),
			UsePathStyle: getbool("S3_USE_PATH_STYLE", false),
			KeyPrefix:    strings.Trim(getenv("STORAGE_KEY_PREFIX", "uploads"), "/"),
		},
		Webhook: WebhookConfig{
			URL:     getenv("WEBHOOK_URL", ""),
			Timeout: getdur("WEBHOOK_TIMEOUT", 10*time.Second),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "doc-intake-backend"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return cfg, errors.New("DB_PATH must not be empty")
	}
	if cfg.MaxUploadBytes <= 0 {
		return cfg, errors.New("MAX_UPLOAD_BYTES must be > 0")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	// Bot verification cannot run without its credentials; fail at startup,
	// never at first use.
	if strings.TrimSpace(cfg.Recaptcha.Secret) == "" {
		return cfg, errors.New("RECAPTCHA_SECRET must not be empty")
	}
	if strings.TrimSpace(cfg.Recaptcha.SiteKey) == "" {
		return cfg, errors.New("RECAPTCHA_SITE_KEY must not be empty")
	}
	if strings.TrimSpace(cfg.Recaptcha.VerifyURL) == "" {
		return cfg, errors.New("RECAPTCHA_VERIFY_URL must not be empty")
	}
	switch cfg.Storage.Backend {
	case "s3":
		if strings.TrimSpace(cfg.Storage.Bucket) == "" {
			return cfg, errors.New("S3_BUCKET must not be empty when STORAGE_BACKEND=s3")
		}
	case "memory":
	default:
		return cfg, errors.New("STORAGE_BACKEND must be one of: s3, memory")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getint64(k string, def int64) int64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
