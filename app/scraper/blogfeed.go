package scraper

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"github.com/mmcdole/gofeed"
	"github.com/storescope/storescope/app/brand"
)

// Path candidates for the storefront's blog/news feed.
var blogFeedPaths = []string{
	"/blog/atom.xml",
	"/blog/rss.xml",
	"/feed",
	"/atom.xml",
	"/rss.xml",
}

// extractBlogFeed records the storefront's blog feed, when one exists,
// in the open metadata bag.
func (r *extractionRun) extractBlogFeed(ctx context.Context, baseURL string, bc *brand.Context) {
	parser := gofeed.NewParser()

	for _, path := range blogFeedPaths {
		feedURL := ResolveHref(baseURL, path)

		body, status, err := r.client.Get(ctx, feedURL)
		if err != nil || status != http.StatusOK {
			continue
		}

		feed, err := parser.Parse(bytes.NewReader(body))
		if err != nil {
			slog.Debug("Feed candidate did not parse", "url", feedURL, "error", err)
			continue
		}

		bc.Metadata["blog_feed"] = map[string]any{
			"url":     feedURL,
			"title":   feed.Title,
			"entries": len(feed.Items),
		}
		return
	}
}
