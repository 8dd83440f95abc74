package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// recordingMarker remembers which submission IDs were marked.
type recordingMarker struct{ ids []string }

func (m *recordingMarker) MarkWebhookTriggered(ctx context.Context, id string) error {
	m.ids = append(m.ids, id)
	return nil
}

func TestNotify_DeliversAndMarks(t *testing.T) {
	var got Payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	marker := &recordingMarker{}
	n := New(srv.URL, time.Second, marker)
	n.Notify(context.Background(), "sub-1")

	if got.SubmissionID != "sub-1" {
		t.Fatalf("payload submissionId = %q, want sub-1", got.SubmissionID)
	}
	if got.Event != "new_submission" {
		t.Fatalf("payload event = %q, want new_submission", got.Event)
	}
	if _, err := time.Parse(time.RFC3339, got.Timestamp); err != nil {
		t.Fatalf("payload timestamp %q is not RFC3339: %v", got.Timestamp, err)
	}
	if len(marker.ids) != 1 || marker.ids[0] != "sub-1" {
		t.Fatalf("expected submission marked after delivery, got %v", marker.ids)
	}
}

func TestNotify_DeliveryFailure_NotMarked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	marker := &recordingMarker{}
	n := New(srv.URL, time.Second, marker)
	n.Notify(context.Background(), "sub-1") // must not panic or block

	if len(marker.ids) != 0 {
		t.Fatalf("a failed delivery must not mark the submission, got %v", marker.ids)
	}
}

func TestNotify_EmptyURL_NoOp(t *testing.T) {
	marker := &recordingMarker{}
	n := New("", time.Second, marker)
	n.Notify(context.Background(), "sub-1")
	if len(marker.ids) != 0 {
		t.Fatalf("notification is disabled without a URL")
	}
}

func TestNotify_Non2xxStillMarks(t *testing.T) {
	// No response contract is enforced; any completed exchange counts as an
	// attempt and flips the flag.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	marker := &recordingMarker{}
	n := New(srv.URL, time.Second, marker)
	n.Notify(context.Background(), "sub-1")
	if len(marker.ids) != 1 {
		t.Fatalf("a completed exchange must mark the submission, got %v", marker.ids)
	}
}
