// Package services – input validation
//
// Field validation for the submission form. These checks run before any
// external call is made; a violation short-circuits the workflow with a
// field-level error and no side effects.
package services

import (
	"regexp"
	"strings"
)

// emailRE accepts a local part, "@", and a domain containing a dot. This is
// deliberately a simple shape check, not RFC-level parsing, and performs no
// canonicalization.
var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether email is non-empty and matches the accepted
// pattern.
func ValidEmail(email string) bool {
	return email != "" && emailRE.MatchString(email)
}

// validateFile checks the declared MIME type and the size of the uploaded
// file against the cap. The boundary is inclusive: a file of exactly
// maxBytes passes; one byte more fails.
func validateFile(contentType string, size, maxBytes int64) error {
	if !strings.Contains(strings.ToLower(contentType), "pdf") {
		return ErrNotPDF
	}
	if size > maxBytes {
		return ErrFileTooLarge
	}
	return nil
}
