package scraper

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nyaruka/phonenumbers"
	"github.com/storescope/storescope/app/brand"
)

// Path candidates for contact pages. Probing stops at the first page
// containing any contact field.
var contactPagePaths = []string{
	"/pages/contact",
	"/contact",
	"/pages/contact-us",
	"/contact-us",
}

var emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

// phoneCandidatePattern only narrows the text to phone-shaped digit runs;
// candidates are then validated as actual phone numbers. Only literal
// spaces are allowed between digits: a tab or newline ends the candidate,
// so a phone number does not merge with a street number on the next line.
var phoneCandidatePattern = regexp.MustCompile(`\+?\d[ \d().-]{6,18}\d`)

const phoneDefaultRegion = "US"

const addressSelector = "address, .address, .contact-address"

func (r *extractionRun) extractContactInfo(ctx context.Context, baseURL string, bc *brand.Context) {
	for _, path := range contactPagePaths {
		pageURL := ResolveHref(baseURL, path)

		doc, _, err := r.client.GetDocument(ctx, pageURL)
		if err != nil {
			slog.Debug("Contact candidate unreachable", "url", pageURL, "error", err)
			continue
		}

		if info := parseContactPage(doc); !info.IsEmpty() {
			bc.ContactInfo = info
			return
		}
	}
}

func parseContactPage(doc *goquery.Document) brand.ContactInfo {
	text := doc.Text()

	return brand.ContactInfo{
		Email:   emailPattern.FindString(text),
		Phone:   findValidPhone(text),
		Address: strings.TrimSpace(doc.Find(addressSelector).First().Text()),
	}
}

// findValidPhone returns the first phone-shaped token that parses as a
// possible, valid phone number, formatted as E.164.
func findValidPhone(text string) string {
	for _, candidate := range phoneCandidatePattern.FindAllString(text, 10) {
		number, err := phonenumbers.Parse(candidate, phoneDefaultRegion)
		if err != nil {
			continue
		}

		if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
			continue
		}

		return phonenumbers.Format(number, phonenumbers.E164)
	}

	return ""
}
