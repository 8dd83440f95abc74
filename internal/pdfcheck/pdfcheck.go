// Package pdfcheck validates that uploaded bytes really are a parsable PDF.
// The form's primary contract is the declared MIME type and size cap; this
// content-level check is an optional, stricter gate enabled by configuration.
package pdfcheck

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Validate parses data with pdfcpu in relaxed mode and returns an error when
// the bytes are not a readable PDF. An empty input is rejected outright.
func Validate(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty file")
	}
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.Validate(bytes.NewReader(data), conf); err != nil {
		return fmt.Errorf("invalid PDF: %w", err)
	}
	return nil
}
