package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/storescope/storescope/app/brand"
)

// Selector candidates for the brand name, in preference order.
var brandNameSelectors = []string{
	"title",
	"h1",
	".brand-name",
	".site-title",
	".logo-text",
	"[data-brand-name]",
}

// Selector candidates for the brand description. The meta description is
// preferred over content-area classes.
var brandDescriptionSelectors = []string{
	`meta[name="description"]`,
	".brand-description",
	".site-description",
	".hero-description",
	".main-description",
}

func (r *extractionRun) extractBasicInfo(root *goquery.Document, bc *brand.Context) {
	if name := firstNonEmptyText(root, brandNameSelectors); name != "" {
		bc.BrandName = name
	}

	for _, selector := range brandDescriptionSelectors {
		sel := root.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}

		var text string
		if strings.HasPrefix(selector, "meta") {
			text, _ = sel.Attr("content")
		} else {
			text = sel.Text()
		}

		if text = strings.TrimSpace(text); text != "" {
			bc.BrandDescription = text
			return
		}
	}
}
