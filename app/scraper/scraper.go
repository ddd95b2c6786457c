package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/storescope/storescope/app/brand"
)

// Scraper reconstructs a normalized brand context from a storefront's
// public web presence. Each category is populated by an independent probe;
// a probe failure leaves its category empty and never fails the run.
type Scraper struct {
	workers   int
	timeout   time.Duration
	userAgent string
}

// New creates a scraper. workers bounds how many category probes run
// concurrently; userAgent fixes the client identity (empty means a
// rotating one).
func New(workers int, timeout time.Duration, userAgent string) *Scraper {
	if workers < 1 {
		workers = 1
	}

	return &Scraper{
		workers:   workers,
		timeout:   timeout,
		userAgent: userAgent,
	}
}

// extractionRun holds the scoped HTTP session for one extraction call.
type extractionRun struct {
	client *Client
}

type categoryProbe struct {
	category string
	run      func(ctx context.Context)
}

// FetchStoreInsights extracts a brand context for the given storefront
// URL. It fails only on invalid input or when the root document cannot be
// fetched at all; an empty but valid result is not an error. A cancelled
// context discards the partial aggregate.
func (s *Scraper) FetchStoreInsights(ctx context.Context, rawURL string) (*brand.Context, error) {
	baseURL, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	// One logical HTTP session per extraction run.
	run := &extractionRun{client: NewClient(s.timeout, s.userAgent)}

	root, _, err := run.client.GetDocument(ctx, baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch root document: %w", err)
	}

	bc := brand.NewContext(baseURL)

	probes := []categoryProbe{
		{"basic_info", func(ctx context.Context) { run.extractBasicInfo(root, bc) }},
		{"product_catalog", func(ctx context.Context) { run.extractProductCatalog(ctx, baseURL, bc) }},
		{"hero_products", func(ctx context.Context) { run.extractHeroProducts(baseURL, root, bc) }},
		{"policies", func(ctx context.Context) { run.extractPolicies(ctx, baseURL, bc) }},
		{"faqs", func(ctx context.Context) { run.extractFAQs(ctx, baseURL, bc) }},
		{"social_handles", func(ctx context.Context) { run.extractSocialHandles(root, bc) }},
		{"contact_info", func(ctx context.Context) { run.extractContactInfo(ctx, baseURL, bc) }},
		{"important_links", func(ctx context.Context) { run.extractImportantLinks(baseURL, root, bc) }},
		{"blog_feed", func(ctx context.Context) { run.extractBlogFeed(ctx, baseURL, bc) }},
	}

	s.runProbes(ctx, baseURL, probes)

	if ctx.Err() != nil {
		return nil, fmt.Errorf("%w: extraction cancelled for %s", ErrTimeout, baseURL)
	}

	slog.Info("Store insights extracted",
		"url", baseURL,
		"catalog", len(bc.ProductCatalog),
		"hero_products", len(bc.HeroProducts),
		"faqs", len(bc.FAQs),
		"social_handles", len(bc.SocialHandles),
		"policies", bc.PolicyCount())

	return bc, nil
}

// runProbes executes the category probes through a bounded worker pool.
// Probes write disjoint sub-fields of the aggregate, so no serialization
// is needed between them.
func (s *Scraper) runProbes(ctx context.Context, baseURL string, probes []categoryProbe) {
	jobs := make(chan categoryProbe)

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for probe := range jobs {
				if ctx.Err() != nil {
					continue
				}
				runProbe(ctx, baseURL, probe)
			}
		}()
	}

	for _, probe := range probes {
		jobs <- probe
	}
	close(jobs)

	wg.Wait()
}

// runProbe isolates one category probe: any failure is logged and the
// category left empty.
func runProbe(ctx context.Context, baseURL string, probe categoryProbe) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("Extraction probe panicked",
				"category", probe.category, "url", baseURL, "panic", r)
		}
	}()

	probe.run(ctx)
}
