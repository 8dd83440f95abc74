// Command server runs the document-intake backend: a public form API that
// accepts one PDF submission per IP address, verifies a bot challenge,
// stores the document in object storage, and notifies a webhook.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/tbourn/doc-intake-backend/docs"
	"github.com/tbourn/doc-intake-backend/internal/config"
	httpapi "github.com/tbourn/doc-intake-backend/internal/http"
	"github.com/tbourn/doc-intake-backend/internal/observability"
	"github.com/tbourn/doc-intake-backend/internal/repo"
	"github.com/tbourn/doc-intake-backend/internal/storage"
	"github.com/tbourn/doc-intake-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

// @title        Document Intake API
// @version      1.0
// @description  Public PDF-upload form backend: bot-checked, one submission per IP, webhook-notified.
// @BasePath     /api/v1
func main() {
	// Local development convenience; in containers env vars come from the
	// orchestrator and no .env file exists.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	// Logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	sysutil.SetLogLevel(cfg.LogLevel)
	log.Info().
		Str("version", sysutil.FirstNonEmpty(version, "dev")).
		Str("port", cfg.Port).
		Str("storage_backend", cfg.Storage.Backend).
		Msg("starting document-intake backend")

	ctx := context.Background()

	// Tracing
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("setting up tracing")
	}

	// Database
	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("opening database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrating schema")
	}

	// Blob storage
	var blobs storage.BlobStore
	switch cfg.Storage.Backend {
	case "s3":
		blobs, err = storage.NewS3Store(ctx, cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("configuring object storage")
		}
	case "memory":
		log.Warn().Msg("using in-memory blob storage; uploads are lost on restart")
		blobs = storage.NewMemoryStore()
	}

	// HTTP
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, blobs, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server")
		}
	}()
	log.Info().Str("addr", srv.Addr).Msg("listening")

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("stopped")
}
