package brand

import (
	"slices"
	"time"
)

// Platform identifies a supported social media platform.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformTwitter   Platform = "twitter"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
	PlatformLinkedIn  Platform = "linkedin"
)

type Product struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Price       string   `json:"price,omitempty"`
	Currency    string   `json:"currency,omitempty"`
	Images      []string `json:"images"`
	URL         string   `json:"url,omitempty"`
	Available   bool     `json:"available"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category,omitempty"`
}

// Equal reports structural equality between two products. Hero products
// scraped from overlapping selectors rarely carry an ID, so deduplication
// compares every field instead.
func (p Product) Equal(other Product) bool {
	return p.ID == other.ID &&
		p.Title == other.Title &&
		p.Description == other.Description &&
		p.Price == other.Price &&
		p.Currency == other.Currency &&
		p.URL == other.URL &&
		p.Available == other.Available &&
		p.Category == other.Category &&
		slices.Equal(p.Images, other.Images) &&
		slices.Equal(p.Tags, other.Tags)
}

type Policy struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url,omitempty"`
}

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type SocialHandle struct {
	Platform Platform `json:"platform"`
	URL      string   `json:"url"`
	Handle   string   `json:"handle,omitempty"`
}

type ContactInfo struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// IsEmpty reports whether no contact field was found.
func (c ContactInfo) IsEmpty() bool {
	return c.Email == "" && c.Phone == "" && c.Address == ""
}

type ImportantLink struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// Context is the normalized brand record extracted from one storefront.
// It is fully populated during a single extraction run and treated as
// immutable once returned to a caller.
type Context struct {
	StoreURL         string          `json:"store_url"`
	BrandName        string          `json:"brand_name,omitempty"`
	BrandDescription string          `json:"brand_description,omitempty"`
	HeroProducts     []Product       `json:"hero_products"`
	ProductCatalog   []Product       `json:"product_catalog"`
	PrivacyPolicy    *Policy         `json:"privacy_policy,omitempty"`
	ReturnPolicy     *Policy         `json:"return_policy,omitempty"`
	RefundPolicy     *Policy         `json:"refund_policy,omitempty"`
	FAQs             []FAQ           `json:"faqs"`
	SocialHandles    []SocialHandle  `json:"social_handles"`
	ContactInfo      ContactInfo     `json:"contact_info"`
	ImportantLinks   []ImportantLink `json:"important_links"`
	ExtractedAt      time.Time       `json:"extracted_at"`
	Metadata         map[string]any  `json:"metadata"`
}

// NewContext creates an empty brand context for the given store URL with
// the extraction timestamp set.
func NewContext(storeURL string) *Context {
	return &Context{
		StoreURL:    storeURL,
		ExtractedAt: time.Now().UTC(),
		Metadata:    make(map[string]any),
	}
}

// PolicyCount returns how many of the three policy slots are populated.
func (c *Context) PolicyCount() int {
	count := 0
	for _, p := range []*Policy{c.PrivacyPolicy, c.ReturnPolicy, c.RefundPolicy} {
		if p != nil {
			count++
		}
	}
	return count
}
