// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Submission
// model.
//
// The repository follows a "thin" approach: it performs persistence and simple
// query composition, leaving workflow sequencing to the services package.
//
// Error semantics:
//   - A duplicate ip_address relies on the database unique index and is
//     surfaced as ErrDuplicateIP so the service layer can translate it into
//     the user-facing "already submitted" outcome.
//   - A missing row is reported as ErrNotFound (alias of
//     gorm.ErrRecordNotFound).
//   - On other DB errors (connectivity, constraints, etc.), the raw gorm
//     error is propagated.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/doc-intake-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicateIP indicates that a submission row already exists for the
// given ip_address. It is the repository-level translation of the unique
// index violation, which is the authoritative one-per-IP guarantee.
var ErrDuplicateIP = errors.New("submission already exists for ip")

// CreateSubmission inserts a new Submission row for the given email, blob
// storage key, and caller IP. The ID is a randomly generated UUID (string)
// and CreatedAt is set to UTC.
//
// If a row with the same ip_address already exists, ErrDuplicateIP is
// returned and no row is created. On other failures the DB error is returned.
func CreateSubmission(ctx context.Context, db *gorm.DB, email, filePath, ip string) (*domain.Submission, error) {
	s := &domain.Submission{
		ID:        uuid.NewString(),
		Email:     email,
		FilePath:  filePath,
		IPAddress: ip,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicateIP
		}
		return nil, err
	}
	return s, nil
}

// GetSubmissionByIP fetches the submission row for ip, or ErrNotFound when no
// row exists. Exactly one row can match because of the unique index.
func GetSubmissionByIP(ctx context.Context, db *gorm.DB, ip string) (*domain.Submission, error) {
	var s domain.Submission
	err := db.WithContext(ctx).
		Where("ip_address = ?", ip).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// MarkWebhookTriggered flips the webhook_triggered flag for the submission
// with the given id. This is the only post-insert mutation the system makes.
// Returns ErrNotFound when no row was affected.
func MarkWebhookTriggered(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).
		Model(&domain.Submission{}).
		Where("id = ?", id).
		Update("webhook_triggered", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// isDuplicate detects unique-constraint violations across drivers that may
// not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// glebarez/sqlite often returns plain-text errors for UNIQUE violations;
	// Postgres reports "duplicate key value violates unique constraint".
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "constraint failed: unique") ||
		strings.Contains(msg, "duplicate key")
}
