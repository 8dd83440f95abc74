// Package handlers defines HTTP-layer error codes used across all API
// endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP
// responses (via the `fail()` helper in this package). Codes are lowercase,
// snake_case, and stable; clients branch on them programmatically while the
// accompanying message carries the localized, human-readable text.

package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeInvalidEmail     = "invalid_email"
	ErrCodeInvalidFile      = "invalid_file"
	ErrCodeFileTooLarge     = "file_too_large"
	ErrCodeCaptchaRequired  = "captcha_required"
	ErrCodeCaptchaFailed    = "captcha_failed"
	ErrCodeAlreadySubmitted = "already_submitted"
	ErrCodeUploadFailed     = "upload_failed"
	ErrCodeSaveFailed       = "save_failed"
)
