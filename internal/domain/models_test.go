package domain

import "testing"

func TestSubmissionTableName(t *testing.T) {
	if got := (Submission{}).TableName(); got != "form_submissions" {
		t.Fatalf("TableName = %q", got)
	}
}
