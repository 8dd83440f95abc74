// Package httpapi wires the HTTP transport (Gin) to the submission workflow,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture for a browser-facing
//     form API
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/doc-intake-backend/internal/captcha"
	"github.com/tbourn/doc-intake-backend/internal/config"
	"github.com/tbourn/doc-intake-backend/internal/domain"
	"github.com/tbourn/doc-intake-backend/internal/http/handlers"
	"github.com/tbourn/doc-intake-backend/internal/http/middleware"
	"github.com/tbourn/doc-intake-backend/internal/ipinfo"
	"github.com/tbourn/doc-intake-backend/internal/repo"
	"github.com/tbourn/doc-intake-backend/internal/services"
	"github.com/tbourn/doc-intake-backend/internal/storage"
	"github.com/tbourn/doc-intake-backend/internal/webhook"
)

// submissionRepoShim adapts the repository free functions to the
// services.SubmissionRepo interface expected by the SubmissionService. This
// keeps services decoupled from the concrete repo package while reusing
// existing functions.
type submissionRepoShim struct{}

// CreateSubmission proxies repo.CreateSubmission.
func (submissionRepoShim) CreateSubmission(ctx context.Context, db *gorm.DB, email, filePath, ip string) (*domain.Submission, error) {
	return repo.CreateSubmission(ctx, db, email, filePath, ip)
}

// GetSubmissionByIP proxies repo.GetSubmissionByIP.
func (submissionRepoShim) GetSubmissionByIP(ctx context.Context, db *gorm.DB, ip string) (*domain.Submission, error) {
	return repo.GetSubmissionByIP(ctx, db, ip)
}

// MarkWebhookTriggered proxies repo.MarkWebhookTriggered.
func (submissionRepoShim) MarkWebhookTriggered(ctx context.Context, db *gorm.DB, id string) error {
	return repo.MarkWebhookTriggered(ctx, db, id)
}

// markerShim binds the repository's MarkWebhookTriggered to a DB handle so it
// satisfies webhook.Marker.
type markerShim struct{ db *gorm.DB }

func (m markerShim) MarkWebhookTriggered(ctx context.Context, id string) error {
	return repo.MarkWebhookTriggered(ctx, m.db, id)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting, CORS
// and security headers, health and metrics endpoints, and then mounts the
// versioned public API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter (upload cap plus form overhead)
//  6. Gzip (JSON responses only; uploads are request-side)
//  7. Metrics
//  8. Rate limiter (per IP)
//  9. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, blobs storage.BlobStore, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction (submitter emails never reach logs)
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key",
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit: the upload cap plus 1 MiB of slack for the
	// other multipart parts and boundaries.
	r.Use(limitBody(cfg.MaxUploadBytes + 1<<20))

	// 6) Compress JSON responses
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Token-bucket rate limiter per IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      true, // responses echo submitter data
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: workflow ← repo/db/storage/external clients
	captchaClient := captcha.New(cfg.Recaptcha.Secret, cfg.Recaptcha.VerifyURL, cfg.Recaptcha.Timeout)
	resolver := ipinfo.New(cfg.IPLookupURL, 5*time.Second)

	var notifier services.Notifier
	if cfg.Webhook.URL != "" {
		notifier = webhook.New(cfg.Webhook.URL, cfg.Webhook.Timeout, markerShim{db: db})
	}

	subSvc := &services.SubmissionService{
		DB:              db,
		Repo:            submissionRepoShim{},
		Captcha:         captchaClient,
		Blobs:           blobs,
		Webhook:         notifier,
		MaxUploadBytes:  cfg.MaxUploadBytes,
		KeyPrefix:       cfg.Storage.KeyPrefix,
		DeepValidatePDF: cfg.PDFDeepValidate,
	}

	h := handlers.New(subSvc, resolver, captchaClient, cfg.MaxUploadBytes)

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		// Submissions
		api.POST("/submissions", h.SubmitForm)
		api.GET("/submissions/status", h.SubmissionStatus)

		// Bot-verification relay
		api.POST("/verify-recaptcha", h.VerifyCaptcha)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
