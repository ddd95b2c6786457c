package competitor

import (
	"fmt"
	"strings"

	"github.com/storescope/storescope/app/brand"
)

// GenerateSummary produces a deterministic, human-readable comparison of
// the main brand against the analyzed competitors. Every denominator is
// guarded so an empty competitor list reports zero averages instead of
// dividing by zero.
func GenerateSummary(main *brand.Context, competitors []*brand.Context) string {
	divisor := float64(max(len(competitors), 1))

	name := main.BrandName
	if name == "" {
		name = "Main Brand"
	}

	var totalProducts, totalSocial, totalFAQs, totalPolicies int
	for _, c := range competitors {
		totalProducts += len(c.ProductCatalog)
		totalSocial += len(c.SocialHandles)
		totalFAQs += len(c.FAQs)
		totalPolicies += c.PolicyCount()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analysis Summary for %s\n", name)
	fmt.Fprintf(&b, "Total competitors analyzed: %d\n", len(competitors))

	fmt.Fprintf(&b, "\nProduct Catalog:\n")
	fmt.Fprintf(&b, "- Main brand products: %d\n", len(main.ProductCatalog))
	fmt.Fprintf(&b, "- Average competitor products: %.1f\n", float64(totalProducts)/divisor)

	fmt.Fprintf(&b, "\nSocial Media Presence:\n")
	fmt.Fprintf(&b, "- Main brand social handles: %d\n", len(main.SocialHandles))
	fmt.Fprintf(&b, "- Average competitor social handles: %.1f\n", float64(totalSocial)/divisor)

	fmt.Fprintf(&b, "\nCustomer Support (FAQs):\n")
	fmt.Fprintf(&b, "- Main brand FAQs: %d\n", len(main.FAQs))
	fmt.Fprintf(&b, "- Average competitor FAQs: %.1f\n", float64(totalFAQs)/divisor)

	fmt.Fprintf(&b, "\nPolicy Completeness:\n")
	fmt.Fprintf(&b, "- Main brand policies: %d/3\n", main.PolicyCount())
	fmt.Fprintf(&b, "- Average competitor policies: %.1f/3", float64(totalPolicies)/divisor)

	return b.String()
}
