package scraper

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/storescope/storescope/app/brand"
)

type socialPattern struct {
	platform brand.Platform
	re       *regexp.Regexp
}

// Fixed per-platform patterns with the handle as the capture group. The
// scan order matters: a single href matches at most one platform, first
// pattern wins.
var socialPatterns = []socialPattern{
	{brand.PlatformInstagram, regexp.MustCompile(`instagram\.com/([^/\s?]+)`)},
	{brand.PlatformFacebook, regexp.MustCompile(`facebook\.com/([^/\s?]+)`)},
	{brand.PlatformTwitter, regexp.MustCompile(`twitter\.com/([^/\s?]+)`)},
	{brand.PlatformTikTok, regexp.MustCompile(`tiktok\.com/@([^/\s?]+)`)},
	{brand.PlatformYouTube, regexp.MustCompile(`youtube\.com/([^/\s?]+)`)},
	{brand.PlatformLinkedIn, regexp.MustCompile(`linkedin\.com/([^/\s?]+)`)},
}

func (r *extractionRun) extractSocialHandles(root *goquery.Document, bc *brand.Context) {
	seen := make(map[string]struct{})

	root.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if href == "" {
			return
		}

		for _, pattern := range socialPatterns {
			match := pattern.re.FindStringSubmatch(href)
			if match == nil {
				continue
			}

			handle := match[1]
			key := string(pattern.platform) + "/" + handle
			if _, dup := seen[key]; !dup {
				seen[key] = struct{}{}
				bc.SocialHandles = append(bc.SocialHandles, brand.SocialHandle{
					Platform: pattern.platform,
					URL:      href,
					Handle:   handle,
				})
			}

			break
		}
	})
}
