package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/config"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

type countingWaiter struct {
	calls int
	err   error
}

func (w *countingWaiter) Wait(ctx context.Context) error {
	w.calls++
	return w.err
}

func TestNewLimiter(t *testing.T) {
	if NewLimiter(config.RateLimitConfig{}) != nil {
		t.Fatalf("expected nil limiter for empty config")
	}

	limiter := NewLimiter(config.RateLimitConfig{Requests: 2, Interval: time.Minute})
	if limiter == nil {
		t.Fatalf("expected limiter")
	}
	if limiter.Burst() != 2 {
		t.Fatalf("expected burst 2, got %d", limiter.Burst())
	}
	if !limiter.Allow() || !limiter.Allow() {
		t.Fatalf("expected burst tokens to be available")
	}
	if limiter.Allow() {
		t.Fatalf("expected bucket to be empty after burst")
	}
}

func TestTransport_WaitsBeforeEachRequest(t *testing.T) {
	waiter := &countingWaiter{}
	transport := &Transport{
		Limiter: waiter,
		Base: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			rec := httptest.NewRecorder()
			rec.WriteHeader(http.StatusNoContent)
			return rec.Result(), nil
		}),
	}
	client := &http.Client{Transport: transport}

	for i := 0; i < 3; i++ {
		resp, err := client.Get("http://upstream.test/page")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		resp.Body.Close()
	}
	if waiter.calls != 3 {
		t.Fatalf("expected 3 waits, got %d", waiter.calls)
	}
}

func TestTransport_WaitErrorAbortsRequest(t *testing.T) {
	called := false
	transport := &Transport{
		Limiter: &countingWaiter{err: context.Canceled},
		Base: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			called = true
			return nil, nil
		}),
	}
	req := httptest.NewRequest(http.MethodGet, "http://upstream.test", nil)
	if _, err := transport.RoundTrip(req); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
	if called {
		t.Fatalf("base transport must not be called when wait fails")
	}
}

func TestLimiter_PacesBeyondBurst(t *testing.T) {
	limiter := NewLimiter(config.RateLimitConfig{Requests: 20, Interval: time.Second})
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 21; i++ {
		if err := limiter.Wait(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("expected the 21st token to wait about 50ms, waited %s", elapsed)
	}
}
