// Package webhook fires the best-effort outbound notification after a
// submission has been persisted. Delivery is fire-and-forget: there is no
// retry, no acknowledgment tracking, and a failure is logged but never joined
// into the submitter's result.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// event is the fixed event name carried by every notification.
const event = "new_submission"

// Payload is the JSON body of the outbound POST.
type Payload struct {
	SubmissionID string `json:"submissionId"`
	Event        string `json:"event"`
	Timestamp    string `json:"timestamp"`
}

// Marker records that a delivery attempt completed for a submission. The
// repository's MarkWebhookTriggered satisfies this via a small adapter in the
// service layer.
type Marker interface {
	MarkWebhookTriggered(ctx context.Context, submissionID string) error
}

// Notifier posts new-submission notifications to a configured URL.
type Notifier struct {
	url    string
	http   *http.Client
	marker Marker
}

// New constructs a Notifier. An empty url disables notification entirely;
// Notify becomes a no-op.
func New(url string, timeout time.Duration, marker Marker) *Notifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Notifier{
		url:    url,
		http:   &http.Client{Timeout: timeout},
		marker: marker,
	}
}

// Notify delivers the notification for submissionID and then flips the
// webhook_triggered flag. Every failure path is logged and swallowed; the
// method never returns anything to join on. The caller runs it detached
// (go n.Notify(...)) with a context independent of the originating request.
func (n *Notifier) Notify(ctx context.Context, submissionID string) {
	if n.url == "" {
		return
	}

	body, err := json.Marshal(Payload{
		SubmissionID: submissionID,
		Event:        event,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Error().Err(err).Str("submission_id", submissionID).Msg("webhook: encoding payload")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		log.Error().Err(err).Str("submission_id", submissionID).Msg("webhook: building request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("submission_id", submissionID).Msg("webhook: delivery failed")
		return
	}
	// No response contract is enforced; drain and close so the connection
	// can be reused.
	io.Copy(io.Discard, resp.Body) //nolint:errcheck
	resp.Body.Close()

	if n.marker != nil {
		if err := n.marker.MarkWebhookTriggered(ctx, submissionID); err != nil {
			log.Warn().Err(err).Str("submission_id", submissionID).Msg("webhook: marking triggered")
			return
		}
	}
	log.Info().Str("submission_id", submissionID).Int("status", resp.StatusCode).Msg("webhook: delivered")
}
