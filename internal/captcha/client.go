// Package captcha implements the server-side half of the bot-verification
// relay: it forwards a browser-obtained challenge token to the third-party
// verification API together with the server-held secret, and reduces every
// outcome to a boolean verdict.
//
// The client never returns an error to callers. A missing token, a missing
// secret, a network failure, a non-2xx status, or an undecodable body all
// yield false; the workflow treats false uniformly as "verification failed,
// block submission".
package captcha

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Client verifies reCAPTCHA challenge tokens against the siteverify API.
type Client struct {
	secret    string
	verifyURL string
	http      *http.Client
}

// Verdict is the subset of the siteverify response the relay endpoint passes
// through to browsers.
type Verdict struct {
	Success    bool     `json:"success"`
	Hostname   string   `json:"hostname,omitempty"`
	ErrorCodes []string `json:"error-codes,omitempty"`
}

// New constructs a Client. The secret must be non-empty for verification to
// ever succeed (config validation guarantees this at startup); verifyURL
// points at the third-party API and is overridable for tests.
func New(secret, verifyURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		secret:    secret,
		verifyURL: verifyURL,
		http:      &http.Client{Timeout: timeout},
	}
}

// Verify reports whether token passes the third-party challenge check.
// It never returns an error; any failure along the way is logged and
// collapsed to false.
func (c *Client) Verify(ctx context.Context, token string) bool {
	v, _ := c.VerifyVerdict(ctx, token)
	return v.Success
}

// VerifyVerdict performs the verification call and returns the decoded
// verdict plus a machine-readable reason when the verdict is a failure that
// was produced locally (missing token/secret) rather than by the API.
func (c *Client) VerifyVerdict(ctx context.Context, token string) (Verdict, string) {
	if strings.TrimSpace(token) == "" {
		return Verdict{Success: false}, "missing token"
	}
	if c.secret == "" {
		// Should be unreachable: startup validation rejects an empty secret.
		log.Error().Msg("captcha: verification secret not configured")
		return Verdict{Success: false}, "secret not configured"
	}

	form := url.Values{
		"secret":   {c.secret},
		"response": {token},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		log.Error().Err(err).Msg("captcha: building siteverify request")
		return Verdict{Success: false}, "request error"
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("captcha: siteverify unreachable")
		return Verdict{Success: false}, "verification unreachable"
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn().Int("status", resp.StatusCode).Msg("captcha: siteverify non-2xx")
		return Verdict{Success: false}, "verification error"
	}

	var v Verdict
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		log.Warn().Err(err).Msg("captcha: decoding siteverify response")
		return Verdict{Success: false}, "verification error"
	}
	return v, ""
}
