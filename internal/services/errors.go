// Package services defines the business logic of the submission workflow.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into localized user-facing messages and HTTP status codes is performed at
// the handler layer.
package services

import "errors"

// Submission workflow errors.
var (
	// ErrInvalidEmail is returned when the submitted email does not match
	// the accepted pattern (local part, "@", domain with a dot).
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrMissingFile is returned when no file part was submitted.
	ErrMissingFile = errors.New("file is missing")

	// ErrNotPDF is returned when the declared MIME type of the file does not
	// contain "pdf" (or, with deep validation enabled, when the bytes are not
	// a parsable PDF).
	ErrNotPDF = errors.New("file is not a PDF")

	// ErrFileTooLarge is returned when the file exceeds the size cap.
	// A file of exactly the cap size is accepted.
	ErrFileTooLarge = errors.New("file exceeds size limit")

	// ErrCaptchaRequired is returned when no challenge token accompanied
	// the submission. No verification call is made in this case.
	ErrCaptchaRequired = errors.New("captcha token required")

	// ErrCaptchaFailed is returned when the bot-verification service did not
	// confirm the token. Unreachable verification counts as a failure.
	ErrCaptchaFailed = errors.New("captcha verification failed")

	// ErrAlreadySubmitted is returned when a submission already exists for
	// the caller's IP, whether detected by the advisory pre-check or by the
	// unique constraint at insert time.
	ErrAlreadySubmitted = errors.New("already submitted from this ip")

	// ErrUploadFailed is returned when the blob store write failed. No
	// record is inserted and the submitter may retry.
	ErrUploadFailed = errors.New("file upload failed")

	// ErrSaveFailed is returned when the record insert failed for a reason
	// other than the duplicate-IP constraint.
	ErrSaveFailed = errors.New("saving submission failed")
)
