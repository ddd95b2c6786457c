package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/storescope/storescope/app/brand"
)

// Selector candidates for hero/featured products on the root page.
var heroProductSelectors = []string{
	".hero-product",
	".featured-product",
	".product-hero",
	".main-product",
	"[data-product-id]",
	".product-card",
	".product-item",
}

// maxHeroProductsPerSelector bounds how many matches one selector may
// contribute.
const maxHeroProductsPerSelector = 5

func (r *extractionRun) extractHeroProducts(baseURL string, root *goquery.Document, bc *brand.Context) {
	for _, selector := range heroProductSelectors {
		root.Find(selector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
			if i >= maxHeroProductsPerSelector {
				return false
			}

			product, ok := parseProductElement(baseURL, sel)
			if !ok {
				return true
			}

			// Overlapping selectors match the same elements, so dedup
			// on structural equality before appending.
			for _, existing := range bc.HeroProducts {
				if existing.Equal(product) {
					return true
				}
			}

			bc.HeroProducts = append(bc.HeroProducts, product)
			return true
		})
	}
}

// parseProductElement derives a minimal product from a matched element:
// the element text as title and its own or first descendant link as URL.
func parseProductElement(baseURL string, sel *goquery.Selection) (brand.Product, bool) {
	title := strings.Join(strings.Fields(sel.Text()), " ")
	if title == "" {
		return brand.Product{}, false
	}

	href, ok := sel.Attr("href")
	if !ok {
		href, _ = sel.Find("a[href]").First().Attr("href")
	}

	productURL := ""
	if href != "" {
		productURL = ResolveHref(baseURL, href)
	}

	return brand.Product{
		Title:     title,
		Price:     "0",
		Currency:  "USD",
		URL:       productURL,
		Available: true,
	}, true
}
