// Package ratelimit provides the token buckets used to pace calls to upstream
// data providers and outbound mail.
package ratelimit

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/config"
)

// Waiter blocks until the caller may proceed.
type Waiter interface {
	Wait(ctx context.Context) error
}

// NewLimiter builds a token bucket that refills Requests tokens per Interval.
// It returns nil when the configuration disables limiting.
func NewLimiter(cfg config.RateLimitConfig) *rate.Limiter {
	if cfg.Requests <= 0 || cfg.Interval <= 0 {
		return nil
	}

	perRequest := cfg.Interval / time.Duration(cfg.Requests)
	if perRequest <= 0 {
		perRequest = time.Second
	}

	return rate.NewLimiter(rate.Every(perRequest), cfg.Requests)
}

// Transport waits on the limiter before handing each request to Base.
type Transport struct {
	Base    http.RoundTripper
	Limiter Waiter
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Limiter != nil {
		if err := t.Limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

// NewHTTPClient returns a client whose requests are paced by the limiter.
// A nil limiter yields an unthrottled client.
func NewHTTPClient(timeout time.Duration, limiter *rate.Limiter) *http.Client {
	client := &http.Client{Timeout: timeout}
	if limiter != nil {
		client.Transport = &Transport{Limiter: limiter}
	}
	return client
}
