package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newStorefrontServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			w.Write([]byte(`<html><head>
				<title>Glow Lamps</title>
				<meta name="description" content="Handmade lamps.">
			</head><body>
				<div class="featured-product"><a href="/products/aurora">Aurora Lamp</a></div>
				<a href="https://instagram.com/glowlamps">Instagram</a>
				<a href="https://facebook.com/glowlamps">Facebook</a>
				<a href="/pages/track-order">Track Order</a>
			</body></html>`))
		case "/products.json":
			w.Write([]byte(`{"products": [
				{"id": 1, "title": "Aurora Lamp", "handle": "aurora", "variants": [{"price": "49.00"}]},
				{"id": 2, "title": "Dusk Lamp", "handle": "dusk"},
				{"id": 3, "title": "Dawn Lamp", "handle": "dawn"}
			]}`))
		case "/pages/privacy-policy":
			w.Write([]byte(`<html><body><h1>Privacy Policy</h1><p>We respect your privacy.</p></body></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestFetchStoreInsights(t *testing.T) {
	server := newStorefrontServer()
	defer server.Close()

	s := New(4, 5*time.Second, "test-agent")
	bc, err := s.FetchStoreInsights(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if bc.StoreURL != server.URL {
		t.Errorf("Expected store URL '%s', got '%s'", server.URL, bc.StoreURL)
	}
	if bc.BrandName != "Glow Lamps" {
		t.Errorf("Expected brand name 'Glow Lamps', got '%s'", bc.BrandName)
	}
	if len(bc.ProductCatalog) != 3 {
		t.Errorf("Expected 3 catalog products, got %d", len(bc.ProductCatalog))
	}
	if len(bc.HeroProducts) != 1 {
		t.Errorf("Expected 1 hero product, got %d", len(bc.HeroProducts))
	}
	if len(bc.SocialHandles) != 2 {
		t.Errorf("Expected 2 social handles, got %d", len(bc.SocialHandles))
	}
	if bc.PrivacyPolicy == nil {
		t.Error("Expected privacy policy to be found")
	}
	if bc.ReturnPolicy != nil || bc.RefundPolicy != nil {
		t.Error("Expected only the privacy policy to be found")
	}
	if len(bc.FAQs) != 0 {
		t.Errorf("Expected no FAQs, got %d", len(bc.FAQs))
	}
	if len(bc.ImportantLinks) != 1 {
		t.Errorf("Expected 1 important link, got %d", len(bc.ImportantLinks))
	}
	if bc.ExtractedAt.IsZero() {
		t.Error("Expected extraction timestamp to be set")
	}
}

func TestFetchStoreInsightsInvalidURL(t *testing.T) {
	s := New(2, time.Second, "test-agent")

	_, err := s.FetchStoreInsights(context.Background(), "ftp://example.com")
	if !errors.Is(err, ErrInvalidURL) {
		t.Errorf("Expected ErrInvalidURL, got %v", err)
	}
}

func TestFetchStoreInsightsRootNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	s := New(2, 5*time.Second, "test-agent")

	_, err := s.FetchStoreInsights(context.Background(), server.URL)
	if !errors.Is(err, ErrWebsiteNotFound) {
		t.Errorf("Expected ErrWebsiteNotFound, got %v", err)
	}
}

func TestFetchStoreInsightsUnreachableHost(t *testing.T) {
	s := New(2, 2*time.Second, "test-agent")

	_, err := s.FetchStoreInsights(context.Background(), "http://127.0.0.1:1")
	if !errors.Is(err, ErrWebsiteNotFound) {
		t.Errorf("Expected ErrWebsiteNotFound, got %v", err)
	}
}

func TestFetchStoreInsightsCancelledContext(t *testing.T) {
	server := newStorefrontServer()
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(2, 5*time.Second, "test-agent")

	_, err := s.FetchStoreInsights(ctx, server.URL)
	if err == nil {
		t.Fatal("Expected error for cancelled context, got nil")
	}
}
