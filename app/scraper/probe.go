package scraper

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// The extraction engine probes heterogeneous pages through ordered
// candidate lists: selector candidates within one document, and path
// candidates across a site. Both resolvers stop at the first success.

// firstMatch returns the selection for the first selector candidate that
// matches at least one element, or nil when none match.
func firstMatch(doc *goquery.Document, selectors []string) *goquery.Selection {
	for _, selector := range selectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			return sel
		}
	}
	return nil
}

// firstNonEmptyText returns the trimmed text of the first selector
// candidate whose first match has non-empty text.
func firstNonEmptyText(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if text != "" {
			return text
		}
	}
	return ""
}

// firstReachable tries path candidates against the base URL in order and
// returns the first page that loads as an HTML document, along with its
// raw body and resolved URL.
func (c *Client) firstReachable(ctx context.Context, baseURL string, paths []string) (*goquery.Document, []byte, string, bool) {
	for _, path := range paths {
		pageURL := ResolveHref(baseURL, path)
		if pageURL == "" {
			continue
		}

		doc, body, err := c.GetDocument(ctx, pageURL)
		if err != nil {
			slog.Debug("Probe candidate unreachable", "url", pageURL, "error", err)
			continue
		}

		return doc, body, pageURL, true
	}

	return nil, nil, "", false
}
