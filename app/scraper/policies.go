package scraper

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/storescope/storescope/app/brand"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// maxPolicyContentLength bounds stored policy text.
const maxPolicyContentLength = 1000

type policyKind struct {
	kind  string
	paths []string
	slot  func(*brand.Context) **brand.Policy
}

// Path candidates per policy kind, in preference order. Probing a kind
// stops at the first page that loads.
var policyKinds = []policyKind{
	{
		kind:  "privacy",
		paths: []string{"/pages/privacy-policy", "/pages/privacy", "/privacy-policy", "/privacy"},
		slot:  func(bc *brand.Context) **brand.Policy { return &bc.PrivacyPolicy },
	},
	{
		kind:  "return",
		paths: []string{"/pages/return-policy", "/pages/returns", "/return-policy", "/returns"},
		slot:  func(bc *brand.Context) **brand.Policy { return &bc.ReturnPolicy },
	},
	{
		kind:  "refund",
		paths: []string{"/pages/refund-policy", "/pages/refunds", "/refund-policy", "/refunds"},
		slot:  func(bc *brand.Context) **brand.Policy { return &bc.RefundPolicy },
	},
}

var titleCaser = cases.Title(language.English)

func (r *extractionRun) extractPolicies(ctx context.Context, baseURL string, bc *brand.Context) {
	for _, kind := range policyKinds {
		slot := kind.slot(bc)
		if *slot != nil {
			// First success wins, the slot is never overwritten.
			continue
		}

		doc, body, pageURL, ok := r.client.firstReachable(ctx, baseURL, kind.paths)
		if !ok {
			continue
		}

		*slot = parsePolicyPage(doc, body, pageURL, kind.kind)
	}
}

func parsePolicyPage(doc *goquery.Document, body []byte, pageURL, kind string) *brand.Policy {
	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if title == "" {
		title = titleCaser.String(kind) + " Policy"
	}

	return &brand.Policy{
		Title:   title,
		Content: truncateContent(policyContent(doc, body), maxPolicyContentLength),
		URL:     pageURL,
	}
}

// policyContent prefers the readability-extracted article text and falls
// back to the document's full visible text.
func policyContent(doc *goquery.Document, body []byte) string {
	if article, err := readability.FromReader(bytes.NewReader(body), nil); err == nil {
		if text := strings.TrimSpace(article.TextContent); text != "" {
			return text
		}
	}

	return strings.TrimSpace(doc.Text())
}

func truncateContent(content string, limit int) string {
	runes := []rune(content)
	if len(runes) <= limit {
		return content
	}
	return string(runes[:limit]) + "..."
}
