package scraper

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeURL validates a storefront URL and normalizes a bare host into
// an https:// URL. Returns ErrInvalidURL for malformed input or
// unsupported schemes.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty URL", ErrInvalidURL)
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}

	if u.Host == "" {
		return "", fmt.Errorf("%w: missing host in %q", ErrInvalidURL, raw)
	}

	return u.String(), nil
}

// ResolveHref resolves an absolute or relative href against a base URL.
// Returns an empty string when the href cannot be parsed.
func ResolveHref(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}

	return baseURL.ResolveReference(ref).String()
}
