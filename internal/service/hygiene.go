package service

import (
	"context"
	"errors"
	"net"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	idnaProfile  = idna.Lookup
)

const (
	trackingPrefix     = "utm_"
	defaultPhoneRegion = "US"
)

// DNSResolver abstracts DNS lookups to simplify testing.
type DNSResolver interface {
	LookupMX(ctx context.Context, domain string) ([]*net.MX, error)
}

// ContactHygiene normalises contact details before they are persisted.
type ContactHygiene struct {
	DefaultRegion string
	dnsResolver   DNSResolver
}

// HygieneOption configures optional dependencies.
type HygieneOption func(*ContactHygiene)

// WithDNSResolver enables MX verification of email domains.
func WithDNSResolver(resolver DNSResolver) HygieneOption {
	return func(h *ContactHygiene) {
		h.dnsResolver = resolver
	}
}

// WithSystemResolver enables MX verification against the system resolver.
func WithSystemResolver() HygieneOption {
	return WithDNSResolver(systemDNSResolver{})
}

// NewContactHygiene builds a normaliser. Without a resolver, emails are
// checked syntactically only.
func NewContactHygiene(defaultRegion string, opts ...HygieneOption) *ContactHygiene {
	region := strings.ToUpper(strings.TrimSpace(defaultRegion))
	if region == "" {
		region = defaultPhoneRegion
	}
	h := &ContactHygiene{DefaultRegion: region}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Email lower-cases an address and converts its domain to ASCII. The second
// return is false when the address is unusable.
func (h *ContactHygiene) Email(ctx context.Context, raw string) (string, bool) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" || !emailPattern.MatchString(email) {
		return "", false
	}
	local, domain, _ := strings.Cut(email, "@")
	if !isDomainValid(domain) {
		return "", false
	}
	asciiDomain, err := idnaProfile.ToASCII(domain)
	if err != nil || asciiDomain == "" {
		return "", false
	}
	if h.dnsResolver != nil && !h.hasMXRecord(ctx, asciiDomain) {
		return "", false
	}
	return local + "@" + asciiDomain, true
}

// Phone formats a number as E.164, or returns "" when it is not a valid number.
func (h *ContactHygiene) Phone(raw string) string {
	return normalizePhone(raw, h.DefaultRegion)
}

// Website forces https and strips tracking parameters.
func (h *ContactHygiene) Website(raw string) string {
	u, err := sanitizeURL(raw)
	if err != nil {
		return ""
	}
	stripTracking(u)
	return u.String()
}

// LinkedIn keeps a URL only when it points at linkedin.com.
func (h *ContactHygiene) LinkedIn(raw string) string {
	u, err := sanitizeURL(raw)
	if err != nil {
		return ""
	}
	host := strings.ToLower(strings.Trim(u.Hostname(), "."))
	if host != "linkedin.com" && !strings.HasSuffix(host, ".linkedin.com") {
		return ""
	}
	stripTracking(u)
	return u.String()
}

// VerifiesMX reports whether emails are checked for an MX record.
func (h *ContactHygiene) VerifiesMX() bool {
	return h.dnsResolver != nil
}

func (h *ContactHygiene) hasMXRecord(ctx context.Context, domain string) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	records, err := h.dnsResolver.LookupMX(ctx, domain)
	return err == nil && len(records) > 0
}

func sanitizeURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty url")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, errors.New("invalid url")
	}
	u.Scheme = "https"
	return u, nil
}

func stripTracking(u *url.URL) {
	if u == nil {
		return
	}
	query := u.Query()
	changed := false
	for key := range query {
		if strings.HasPrefix(strings.ToLower(key), trackingPrefix) {
			query.Del(key)
			changed = true
		}
	}
	if changed {
		u.RawQuery = query.Encode()
	}
}

func normalizePhone(raw, region string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if region == "" {
		region = defaultPhoneRegion
	}
	number, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return ""
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	for _, part := range strings.Split(domain, ".") {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}

type systemDNSResolver struct{}

func (systemDNSResolver) LookupMX(ctx context.Context, domain string) ([]*net.MX, error) {
	return net.DefaultResolver.LookupMX(ctx, domain)
}
