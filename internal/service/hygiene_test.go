package service

import (
	"context"
	"errors"
	"net"
	"testing"
)

type stubDNSResolver struct {
	mx map[string]bool
}

func (s *stubDNSResolver) LookupMX(ctx context.Context, domain string) ([]*net.MX, error) {
	if s.mx[domain] {
		return []*net.MX{{Host: "mx." + domain}}, nil
	}
	return nil, errors.New("no mx")
}

func TestHygieneEmailValidatesSyntaxAndMX(t *testing.T) {
	h := NewContactHygiene("US", WithDNSResolver(&stubDNSResolver{mx: map[string]bool{"example.com": true}}))

	cases := map[string]struct {
		input string
		want  string
		ok    bool
	}{
		"normalised":  {input: " Test@Example.com ", want: "test@example.com", ok: true},
		"syntax":      {input: "invalid@", ok: false},
		"missing mx":  {input: "user@missingmx.com", ok: false},
		"bad label":   {input: "user@-bad.com", ok: false},
		"empty input": {input: "", ok: false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, ok := h.Email(context.Background(), tc.input)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("expected (%q, %v), got (%q, %v)", tc.want, tc.ok, got, ok)
			}
		})
	}
}

func TestHygieneEmailWithoutResolverSkipsMX(t *testing.T) {
	h := NewContactHygiene("")
	if got, ok := h.Email(context.Background(), "founder@startup.bio"); !ok || got != "founder@startup.bio" {
		t.Fatalf("expected syntactic acceptance, got %q %v", got, ok)
	}
	if h.DefaultRegion != "US" {
		t.Fatalf("expected default region US, got %s", h.DefaultRegion)
	}
}

func TestHygienePhone(t *testing.T) {
	h := NewContactHygiene("US")
	if got := h.Phone(" (415) 555-1234 "); got != "+14155551234" {
		t.Fatalf("unexpected phone: %q", got)
	}
	if got := h.Phone("12345"); got != "" {
		t.Fatalf("expected invalid phone to be dropped, got %q", got)
	}
}

func TestHygieneURLs(t *testing.T) {
	h := NewContactHygiene("US")
	if got := h.Website("modernatx.com/about?utm_source=x&ref=1"); got != "https://modernatx.com/about?ref=1" {
		t.Fatalf("unexpected website: %q", got)
	}
	if got := h.LinkedIn("http://www.linkedin.com/in/jane?utm_medium=email"); got != "https://www.linkedin.com/in/jane" {
		t.Fatalf("unexpected linkedin: %q", got)
	}
	if got := h.LinkedIn("https://example.com/in/jane"); got != "" {
		t.Fatalf("expected non-linkedin url to be rejected, got %q", got)
	}
	if got := h.Website(" "); got != "" {
		t.Fatalf("expected empty website, got %q", got)
	}
}
