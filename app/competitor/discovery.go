package competitor

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
)

// Finder discovers candidate competitor storefronts for a brand URL.
type Finder struct {
	provider SearchProvider
}

func NewFinder(provider SearchProvider) *Finder {
	return &Finder{provider: provider}
}

var (
	wwwPrefixPattern = regexp.MustCompile(`^www\.`)
	tldSuffixPattern = regexp.MustCompile(`\.(com|co\.in|in|org|net)$`)
)

// storefrontMarkers enumerates the substrings that mark a URL as a likely
// online storefront.
var storefrontMarkers = []string{
	".myshopify.com",
	"shopify",
	"cart",
	"products",
}

// IsLikelyStorefront reports whether a URL looks like an online
// storefront, based on a fixed marker list.
func IsLikelyStorefront(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, marker := range storefrontMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// FindCompetitors returns at most max candidate competitor URLs for the
// given brand URL, excluding the URL itself. Failures degrade to an empty
// list, never an error.
func (f *Finder) FindCompetitors(ctx context.Context, brandURL string, max int) []string {
	if max < 1 {
		return nil
	}

	seed := seedTermFromURL(brandURL)
	if seed == "" {
		return nil
	}

	queries := []string{
		fmt.Sprintf("%s competitors", seed),
		fmt.Sprintf("similar brands to %s", seed),
		fmt.Sprintf("alternative to %s", seed),
		fmt.Sprintf("brands like %s", seed),
	}

	var competitors []string
	seen := make(map[string]struct{})

	for _, query := range queries {
		if len(competitors) >= max {
			break
		}

		results, err := f.provider.Search(ctx, query)
		if err != nil {
			slog.Warn("Competitor search failed", "query", query, "error", err)
			continue
		}

		for _, result := range results {
			if len(competitors) >= max {
				break
			}
			if result == brandURL || !IsLikelyStorefront(result) {
				continue
			}
			if _, dup := seen[result]; dup {
				continue
			}

			seen[result] = struct{}{}
			competitors = append(competitors, result)
		}
	}

	return competitors
}

// seedTermFromURL derives the search seed from the URL's hostname by
// stripping the www. prefix and common TLD suffixes.
func seedTermFromURL(rawURL string) string {
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	host = wwwPrefixPattern.ReplaceAllString(host, "")
	host = tldSuffixPattern.ReplaceAllString(host, "")

	return host
}
