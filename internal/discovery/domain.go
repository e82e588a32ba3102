package discovery

import (
	"net/url"
	"strings"
)

// ResolveDomain prefers the stored primary domain and otherwise parses the
// host out of the website URL, dropping any "www." prefix. It returns ""
// when neither yields a host.
func ResolveDomain(primaryDomain, website string) string {
	if d := normalizeHost(primaryDomain); d != "" {
		return d
	}
	return hostFromURL(website)
}

func hostFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return normalizeHost(parsed.Hostname())
}

func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	host = strings.TrimSuffix(host, ".")
	host = strings.TrimPrefix(host, "www.")
	if host == "" || !strings.Contains(host, ".") || strings.ContainsAny(host, "/ ") {
		return ""
	}
	return host
}
