package pdfcheck

import "testing"

func TestValidate_RejectsNonPDF(t *testing.T) {
	for _, data := range [][]byte{
		nil,
		[]byte(""),
		[]byte("plain text, not a document"),
		[]byte("%PDF-1.4 truncated garbage"),
	} {
		if err := Validate(data); err == nil {
			t.Fatalf("expected validation error for %q", data)
		}
	}
}
