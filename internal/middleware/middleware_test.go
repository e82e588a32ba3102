package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/auth"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/config"
)

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextKeyRequestID, "rid-123")

	err := Logging(log)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	entries := logs.FilterField(zap.String("request_id", "rid-123")).All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry with request id, got %d", len(entries))
	}
	if entries[0].ContextMap()["status"] != int64(http.StatusOK) {
		t.Fatalf("expected status field 200, got %v", entries[0].ContextMap()["status"])
	}

	// ensure errors are propagated and logged
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.Set(ContextKeyRequestID, "rid-456")
	expected := errors.New("boom")
	err = Logging(log)(func(c echo.Context) error {
		return expected
	})(c)
	failed := logs.FilterMessage("request failed").All()
	if len(failed) != 1 || failed[0].ContextMap()["request_id"] != "rid-456" {
		t.Fatalf("expected failed request entry with new request id")
	}
	if !errors.Is(err, expected) {
		t.Fatalf("expected error to bubble up")
	}
}

func TestRateLimiter(t *testing.T) {
	cfg := config.RateLimitConfig{Requests: 1, Interval: time.Second}
	mw := RateLimiter(cfg, "discovery")

	e := echo.New()
	nextCalls := 0
	next := func(c echo.Context) error {
		nextCalls++
		return c.NoContent(http.StatusOK)
	}

	newContext := func(ip string) (echo.Context, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodPost, "/api/discovery/search", nil)
		req.Header.Set(echo.HeaderXRealIP, ip)
		rec := httptest.NewRecorder()
		return e.NewContext(req, rec), rec
	}

	c, rec := newContext("10.0.0.1")
	_ = mw(next)(c)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", rec.Code)
	}

	c2, rec2 := newContext("10.0.0.1")
	_ = mw(next)(c2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request rejected, got %d", rec2.Code)
	}

	// A different client has its own bucket.
	c3, rec3 := newContext("10.0.0.2")
	_ = mw(next)(c3)
	if rec3.Code != http.StatusOK {
		t.Fatalf("expected other client to pass, got %d", rec3.Code)
	}

	// zero config should behave as passthrough
	mw = RateLimiter(config.RateLimitConfig{}, "discovery")
	for i := 0; i < 3; i++ {
		c4, rec4 := newContext("10.0.0.1")
		_ = mw(next)(c4)
		if rec4.Code != http.StatusOK {
			t.Fatalf("expected passthrough when limiter disabled")
		}
	}
	if nextCalls != 5 {
		t.Fatalf("expected next handler to be invoked 5 times, got %d", nextCalls)
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	mw := RequireRole("admin")

	tests := map[string]struct {
		claims     *auth.Claims
		expectCode int
	}{
		"anonymous":      {expectCode: http.StatusForbidden},
		"empty role":     {claims: &auth.Claims{}, expectCode: http.StatusForbidden},
		"incorrect role": {claims: &auth.Claims{Role: "user"}, expectCode: http.StatusForbidden},
		"admin":          {claims: &auth.Claims{Role: "admin"}, expectCode: http.StatusOK},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/companies/import", nil), rec)
			if tt.claims != nil {
				c.Set(ContextKeyClaims, tt.claims)
			}

			if err := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d", tt.expectCode, rec.Code)
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	e := echo.New()

	tests := map[string]struct {
		incoming string
		reuse    bool
	}{
		"reuse incoming header": {incoming: "req-2026.03:01_a", reuse: true},
		"generate when missing": {},
		"reject unsafe header":  {incoming: "id\nInjected: yes"},
		"reject oversized":      {incoming: strings.Repeat("a", maxRequestIDLength+1)},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set("X-Request-ID", tt.incoming)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var seen string
			if err := RequestID()(func(c echo.Context) error {
				seen = RequestIDFromContext(c)
				return c.NoContent(http.StatusOK)
			})(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.reuse && seen != tt.incoming {
				t.Fatalf("expected incoming id %q, got %q", tt.incoming, seen)
			}
			if !tt.reuse {
				if _, err := uuid.Parse(seen); err != nil {
					t.Fatalf("expected generated uuid, got %q", seen)
				}
			}
			if rec.Header().Get("X-Request-ID") != seen {
				t.Fatalf("expected response header %q, got %q", seen, rec.Header().Get("X-Request-ID"))
			}
		})
	}
}

func TestUserIDFromContext(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	if _, ok := UserIDFromContext(c); ok {
		t.Fatalf("expected no user id")
	}
	c.Set(ContextKeyClaims, &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "not-a-uuid"}})
	if _, ok := UserIDFromContext(c); ok {
		t.Fatalf("expected invalid subject to be ignored")
	}
	id := uuid.New()
	c.Set(ContextKeyClaims, &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: id.String()}})
	if got, ok := UserIDFromContext(c); !ok || got != id {
		t.Fatalf("expected %s, got %s", id, got)
	}
}

func TestLoggerScopesRequest(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	Logger(c, base).Info("anonymous")
	if len(logs.All()[0].Context) != 0 {
		t.Fatalf("expected no request fields, got %v", logs.All()[0].ContextMap())
	}

	id := uuid.New()
	c.Set(ContextKeyRequestID, "rid-789")
	c.Set(ContextKeyClaims, &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: id.String()}})
	Logger(c, base).Info("scoped")
	fields := logs.FilterMessage("scoped").All()[0].ContextMap()
	if fields["request_id"] != "rid-789" || fields["user_id"] != id.String() {
		t.Fatalf("unexpected fields: %v", fields)
	}
}
