package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/storescope/storescope/app/brand"
)

// Keywords that mark a link as important, in match-priority order. The
// first keyword matching a link's text or href wins for that link.
var importantLinkKeywords = []string{
	"track", "order", "shipping", "delivery",
	"blog", "news", "about", "story",
	"help", "support", "contact",
	"size", "guide", "measurement",
}

func (r *extractionRun) extractImportantLinks(baseURL string, root *goquery.Document, bc *brand.Context) {
	root.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if href == "" {
			return
		}

		title := strings.Join(strings.Fields(link.Text()), " ")
		lowerTitle := strings.ToLower(title)
		lowerHref := strings.ToLower(href)

		for _, keyword := range importantLinkKeywords {
			if !strings.Contains(lowerTitle, keyword) && !strings.Contains(lowerHref, keyword) {
				continue
			}

			bc.ImportantLinks = append(bc.ImportantLinks, brand.ImportantLink{
				Title:       title,
				URL:         ResolveHref(baseURL, href),
				Description: "Important link: " + keyword,
			})
			return
		}
	})
}
