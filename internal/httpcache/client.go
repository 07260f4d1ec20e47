// Package httpcache implements the HTTP Fetch + Cache layer (§4.2): a
// retrying HTTP client with per-session connection pooling, plus a
// persistent on-disk JSON cache keyed by logical query with per-kind TTL
// policies. The odds and rankings sources wrap their queries in the cache;
// the schedule source and web search fetch without one.
package httpcache

import (
	"context"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

// NewClient builds a connection-pooled HTTP client with bounded retry at
// the transport layer (§7: "Transport / HTTP transient: Bounded retry at
// HTTP layer; then surface as stage failure"), grounded on the teacher's
// per-session *http.Client pattern (kalshi_http/client.go,
// goalserve/client.go) but swapping the hand-rolled retry for
// hashicorp/go-retryablehttp.
func NewClient(timeout time.Duration) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 250 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.Logger = nil // telemetry wraps calls at the call site instead
	rc.HTTPClient.Timeout = timeout
	return rc.StandardClient()
}

// PolitenessLimiter enforces the small inter-call gap vendors expect
// between sequential requests (§5: "a small inter-call sleep for
// rate-limit politeness"). One limiter is meant to be shared across all
// calls to a single vendor.
func PolitenessLimiter(interval time.Duration) *rate.Limiter {
	return rate.NewLimiter(rate.Every(interval), 1)
}

// Politeness blocks until limiter next permits a call, or ctx is done.
func Politeness(ctx context.Context, limiter *rate.Limiter) error {
	return limiter.Wait(ctx)
}
