package scraper

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/storescope/storescope/app/brand"
)

// Path candidates for FAQ pages. Probing stops at the first page that
// yields any FAQ item, not merely the first page that loads.
var faqPagePaths = []string{
	"/pages/faq",
	"/pages/faqs",
	"/faq",
	"/faqs",
	"/help",
	"/support",
}

// Selector candidates for accordion/FAQ-style containers.
var faqItemSelectors = []string{
	".faq-item",
	".faq-question",
	".accordion-item",
	"[data-faq]",
}

const (
	faqQuestionSelector = "h3, h4, h5, .question, .faq-question"
	faqAnswerSelector   = "p, div, .answer, .faq-answer"
)

func (r *extractionRun) extractFAQs(ctx context.Context, baseURL string, bc *brand.Context) {
	for _, path := range faqPagePaths {
		pageURL := ResolveHref(baseURL, path)

		doc, _, err := r.client.GetDocument(ctx, pageURL)
		if err != nil {
			slog.Debug("FAQ candidate unreachable", "url", pageURL, "error", err)
			continue
		}

		if faqs := parseFAQPage(doc); len(faqs) > 0 {
			bc.FAQs = faqs
			return
		}
	}
}

func parseFAQPage(doc *goquery.Document) []brand.FAQ {
	var faqs []brand.FAQ

	for _, selector := range faqItemSelectors {
		doc.Find(selector).Each(func(_ int, item *goquery.Selection) {
			question := strings.TrimSpace(item.Find(faqQuestionSelector).First().Text())
			answer := strings.TrimSpace(item.Find(faqAnswerSelector).First().Text())

			if question == "" || answer == "" {
				return
			}

			faqs = append(faqs, brand.FAQ{Question: question, Answer: answer})
		})
	}

	return faqs
}
