package scraper

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/storescope/storescope/app/brand"
)

// catalogFeedPath is the well-known structured product feed exposed by
// hosted storefronts.
const catalogFeedPath = "/products.json"

// catalogFeed mirrors the product feed envelope. Entries are kept raw so
// that one malformed entry does not discard the batch.
type catalogFeed struct {
	Products []json.RawMessage `json:"products"`
}

type catalogEntry struct {
	ID          json.Number `json:"id"`
	Title       string      `json:"title"`
	BodyHTML    string      `json:"body_html"`
	Handle      string      `json:"handle"`
	ProductType string      `json:"product_type"`
	Tags        []string    `json:"tags"`
	Available   *bool       `json:"available"`
	Variants    []struct {
		Price string `json:"price"`
	} `json:"variants"`
	Images []struct {
		Src string `json:"src"`
	} `json:"images"`
}

func (r *extractionRun) extractProductCatalog(ctx context.Context, baseURL string, bc *brand.Context) {
	feedURL := ResolveHref(baseURL, catalogFeedPath)

	var feed catalogFeed
	if err := r.client.GetJSON(ctx, feedURL, &feed); err != nil {
		slog.Warn("Failed to fetch product catalog", "url", feedURL, "error", err)
		return
	}

	for _, raw := range feed.Products {
		var entry catalogEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			slog.Debug("Skipping malformed catalog entry", "url", feedURL, "error", err)
			continue
		}

		bc.ProductCatalog = append(bc.ProductCatalog, parseCatalogEntry(entry, baseURL))
	}
}

func parseCatalogEntry(entry catalogEntry, baseURL string) brand.Product {
	price := "0"
	if len(entry.Variants) > 0 && entry.Variants[0].Price != "" {
		price = entry.Variants[0].Price
	}

	images := make([]string, 0, len(entry.Images))
	for _, image := range entry.Images {
		if image.Src != "" {
			images = append(images, image.Src)
		}
	}

	available := true
	if entry.Available != nil {
		available = *entry.Available
	}

	return brand.Product{
		ID:          entry.ID.String(),
		Title:       entry.Title,
		Description: entry.BodyHTML,
		Price:       price,
		Currency:    "USD",
		Images:      images,
		URL:         ResolveHref(baseURL, "/products/"+entry.Handle),
		Available:   available,
		Tags:        entry.Tags,
		Category:    entry.ProductType,
	}
}
