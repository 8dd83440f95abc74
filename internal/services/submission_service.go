// Package services – SubmissionService
//
// This file implements the SubmissionService, the orchestrator of the
// document-intake workflow. It sequences the steps of one submission:
// validate inputs → verify the bot challenge → advisory duplicate check →
// upload the file → persist the record → fire the webhook. Each external call
// is gated behind the previous step's success; the first failure
// short-circuits the remaining steps, so no later side effects occur.
//
// Service-level errors (ErrInvalidEmail, ErrCaptchaFailed,
// ErrAlreadySubmitted, ...) are returned for predictable cases so handlers
// can map them to HTTP results consistently.
package services

import (
	"bytes"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rs/zerolog/log"

	"github.com/tbourn/doc-intake-backend/internal/domain"
	"github.com/tbourn/doc-intake-backend/internal/pdfcheck"
	"github.com/tbourn/doc-intake-backend/internal/repo"
	"github.com/tbourn/doc-intake-backend/internal/storage"
)

// SubmissionRepo defines the repository contract required by
// SubmissionService. Implementations are responsible for persistence of
// submission rows and for surfacing the duplicate-IP constraint as
// repo.ErrDuplicateIP.
type SubmissionRepo interface {
	// CreateSubmission inserts a new submission row.
	CreateSubmission(ctx context.Context, db *gorm.DB, email, filePath, ip string) (*domain.Submission, error)

	// GetSubmissionByIP fetches the row for ip, or repo.ErrNotFound.
	GetSubmissionByIP(ctx context.Context, db *gorm.DB, ip string) (*domain.Submission, error)

	// MarkWebhookTriggered flips the webhook_triggered flag.
	MarkWebhookTriggered(ctx context.Context, db *gorm.DB, id string) error
}

// Verifier is the bot-verification contract. Implementations never error:
// every failure mode collapses to false.
type Verifier interface {
	Verify(ctx context.Context, token string) bool
}

// Notifier delivers the best-effort post-insert notification. Implementations
// log and swallow their own failures.
type Notifier interface {
	Notify(ctx context.Context, submissionID string)
}

// SubmissionInput is the transient, per-request form state handed to Submit.
// It is never persisted as-is.
type SubmissionInput struct {
	Email       string
	Filename    string
	ContentType string // declared by the client, not sniffed
	Data        []byte
	Token       string // bot-challenge token, may be empty
	IP          string // resolved caller IP or the "unknown" sentinel
}

// SubmissionService sequences the submission workflow. All collaborators are
// injected; the service holds no per-request state and is safe for
// concurrent use.
type SubmissionService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the submission repository.
	Repo SubmissionRepo
	// Captcha verifies bot-challenge tokens.
	Captcha Verifier
	// Blobs is the write-once object store for uploaded documents.
	Blobs storage.BlobStore
	// Webhook fires the detached post-insert notification; may be nil.
	Webhook Notifier

	// MaxUploadBytes caps the accepted file size (boundary inclusive).
	MaxUploadBytes int64
	// KeyPrefix is the folder segment object keys are placed under.
	KeyPrefix string
	// DeepValidatePDF additionally parses the bytes with pdfcpu.
	DeepValidatePDF bool

	// now is a test seam for object-key timestamps.
	now func() time.Time
}

// Now returns the service clock, defaulting to time.Now.
func (s *SubmissionService) Now() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// HasSubmitted reports whether a submission already exists for ip. This is
// the advisory check: a missing row yields false, and any other query failure
// is logged but also yields false (fail-open), because the authoritative
// block is the unique constraint exercised during insert.
func (s *SubmissionService) HasSubmitted(ctx context.Context, ip string) bool {
	_, err := s.Repo.GetSubmissionByIP(ctx, s.DB, ip)
	if err == nil {
		return true
	}
	if !errors.Is(err, repo.ErrNotFound) {
		log.Warn().Err(err).Str("ip", ip).Msg("submission: advisory duplicate check failed")
	}
	return false
}

// Submit runs the full workflow for one submission attempt.
//
// Step order and failure semantics:
//  1. Email and file validation. No external calls are made on violation.
//  2. Bot verification. A missing token yields ErrCaptchaRequired without a
//     verification call; a negative or unreachable verdict yields
//     ErrCaptchaFailed.
//  3. Advisory duplicate check, fail-open. A hit yields ErrAlreadySubmitted
//     before any upload cost is incurred.
//  4. Blob upload. Failure yields ErrUploadFailed with no record inserted.
//  5. Insert. The unique-IP constraint closes the check-then-act gap left
//     by step 3: a violation here yields the same ErrAlreadySubmitted. Any
//     other failure yields ErrSaveFailed. The blob written in step 4 is left
//     behind in that case (no compensating delete).
//  6. Webhook, detached and fire-and-forget. Never affects the returned value.
func (s *SubmissionService) Submit(ctx context.Context, in SubmissionInput) (*domain.Submission, error) {
	if !ValidEmail(in.Email) {
		return nil, ErrInvalidEmail
	}
	if len(in.Data) == 0 {
		return nil, ErrMissingFile
	}
	if err := validateFile(in.ContentType, int64(len(in.Data)), s.MaxUploadBytes); err != nil {
		return nil, err
	}
	if s.DeepValidatePDF {
		if err := pdfcheck.Validate(in.Data); err != nil {
			log.Warn().Err(err).Msg("submission: content-level PDF check failed")
			return nil, ErrNotPDF
		}
	}

	if in.Token == "" {
		return nil, ErrCaptchaRequired
	}
	if !s.Captcha.Verify(ctx, in.Token) {
		return nil, ErrCaptchaFailed
	}

	if s.HasSubmitted(ctx, in.IP) {
		return nil, ErrAlreadySubmitted
	}

	key := storage.ObjectKey(s.KeyPrefix, in.Email, in.Filename, s.Now())
	if err := s.Blobs.Put(ctx, key, in.ContentType, bytes.NewReader(in.Data), int64(len(in.Data))); err != nil {
		log.Error().Err(err).Str("key", key).Msg("submission: blob upload failed")
		return nil, ErrUploadFailed
	}

	sub, err := s.Repo.CreateSubmission(ctx, s.DB, in.Email, key, in.IP)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateIP) {
			// Lost the race between the advisory check and the insert; the
			// constraint is the authority.
			return nil, ErrAlreadySubmitted
		}
		log.Error().Err(err).Msg("submission: insert failed")
		return nil, ErrSaveFailed
	}

	if s.Webhook != nil {
		// Detached from the request context: the notification outlives the
		// HTTP exchange and its failure never reaches the submitter.
		go s.Webhook.Notify(context.Background(), sub.ID)
	}

	return sub, nil
}
