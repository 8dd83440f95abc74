// Package ipinfo resolves the public IP address a submission came from. The
// IP is an anti-abuse signal, not a hard requirement, so resolution never
// fails: when no usable address can be determined the sentinel Unknown is
// returned instead of an error.
package ipinfo

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Unknown is the sentinel returned when no public IP could be resolved.
const Unknown = "unknown"

// maxBodyBytes bounds the lookup response read; ipify-style services return a
// bare dotted quad.
const maxBodyBytes = 256

// Resolver determines the caller's public IP. It prefers the transport-level
// client IP; when that address is private or loopback (e.g. the service runs
// behind a misconfigured proxy or on a developer machine) and a lookup URL is
// configured, it falls back to an external plain-text IP echo service.
type Resolver struct {
	lookupURL string
	http      *http.Client
}

// New constructs a Resolver. An empty lookupURL disables the external
// fallback entirely.
func New(lookupURL string, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Resolver{
		lookupURL: lookupURL,
		http:      &http.Client{Timeout: timeout},
	}
}

// Resolve returns the public IP for a request whose transport-level client
// address is remoteIP. It never returns an error; every failure path yields
// Unknown.
func (r *Resolver) Resolve(ctx context.Context, remoteIP string) string {
	if ip := net.ParseIP(strings.TrimSpace(remoteIP)); ip != nil {
		if !ip.IsPrivate() && !ip.IsLoopback() && !ip.IsUnspecified() {
			return ip.String()
		}
	}
	return r.lookup(ctx)
}

// lookup queries the external echo service. Any failure is logged and
// collapsed to Unknown.
func (r *Resolver) lookup(ctx context.Context) string {
	if r.lookupURL == "" {
		return Unknown
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.lookupURL, nil)
	if err != nil {
		log.Warn().Err(err).Msg("ipinfo: building lookup request")
		return Unknown
	}
	resp, err := r.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("ipinfo: lookup unreachable")
		return Unknown
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Msg("ipinfo: lookup non-200")
		return Unknown
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Warn().Err(err).Msg("ipinfo: reading lookup response")
		return Unknown
	}
	if ip := net.ParseIP(strings.TrimSpace(string(body))); ip != nil {
		return ip.String()
	}
	return Unknown
}
