package services

import (
	"errors"
	"testing"

	"github.com/tbourn/doc-intake-backend/internal/config"
)

func TestValidEmail(t *testing.T) {
	valid := []string{
		"jan@example.com",
		"jan.kowalski+tag@sub.example.pl",
		"a@b.co",
	}
	for _, e := range valid {
		if !ValidEmail(e) {
			t.Fatalf("expected %q to be valid", e)
		}
	}

	invalid := []string{
		"",
		"jan",
		"jan@",
		"@example.com",
		"jan@example", // no dot in domain
		"jan kowalski@example.com",
		"jan@exa mple.com",
	}
	for _, e := range invalid {
		if ValidEmail(e) {
			t.Fatalf("expected %q to be invalid", e)
		}
	}
}

func TestValidateFile_MIME(t *testing.T) {
	// The check is a substring match, case-insensitive.
	accepted := []string{"application/pdf", "application/PDF", "application/x-pdf"}
	for _, ct := range accepted {
		if err := validateFile(ct, 10, config.DefaultMaxUploadBytes); err != nil {
			t.Fatalf("expected %q to pass, got %v", ct, err)
		}
	}

	rejected := []string{"", "image/png", "application/octet-stream", "text/plain"}
	for _, ct := range rejected {
		if err := validateFile(ct, 10, config.DefaultMaxUploadBytes); !errors.Is(err, ErrNotPDF) {
			t.Fatalf("expected ErrNotPDF for %q, got %v", ct, err)
		}
	}
}

func TestValidateFile_SizeBoundary(t *testing.T) {
	max := int64(config.DefaultMaxUploadBytes)

	// Exactly the cap is accepted.
	if err := validateFile("application/pdf", max, max); err != nil {
		t.Fatalf("file of exactly max bytes must pass, got %v", err)
	}
	// One byte over fails.
	if err := validateFile("application/pdf", max+1, max); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge one byte over, got %v", err)
	}
}
