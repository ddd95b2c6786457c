package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/storescope/storescope/app/brand"
	"github.com/storescope/storescope/app/scraper"
)

type stubScraper struct {
	insights *brand.Context
	err      error
	calls    int
}

func (s *stubScraper) FetchStoreInsights(_ context.Context, rawURL string) (*brand.Context, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.insights, nil
}

type stubFinder struct {
	candidates []string
}

func (s *stubFinder) FindCompetitors(_ context.Context, _ string, max int) []string {
	if len(s.candidates) > max {
		return s.candidates[:max]
	}
	return s.candidates
}

type stubAnalyzer struct {
	insights []*brand.Context
}

func (s *stubAnalyzer) AnalyzeCompetitors(_ context.Context, _ []string) []*brand.Context {
	return s.insights
}

type stubRepo struct {
	stored  map[string]*brand.Context
	enabled bool
	saved   []*brand.Context
}

func newStubRepo(enabled bool) *stubRepo {
	return &stubRepo{stored: make(map[string]*brand.Context), enabled: enabled}
}

func (r *stubRepo) GetByURL(storeURL string) (*brand.Context, error) {
	return r.stored[storeURL], nil
}

func (r *stubRepo) Save(bc *brand.Context) (string, error) {
	if !r.enabled {
		return "", nil
	}
	r.saved = append(r.saved, bc)
	r.stored[bc.StoreURL] = bc
	return "id-" + bc.StoreURL, nil
}

func (r *stubRepo) ListAll() ([]*brand.Context, error) {
	var all []*brand.Context
	for _, bc := range r.stored {
		all = append(all, bc)
	}
	return all, nil
}

func (r *stubRepo) Enabled() bool {
	return r.enabled
}

func newTestRouter(h *Handler) *gin.Engine {
	return NewServer(h, "")
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeInsightsResponse(t *testing.T, w *httptest.ResponseRecorder) StoreInsightsResponse {
	t.Helper()

	var resp StoreInsightsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return resp
}

func TestGetStoreInsights(t *testing.T) {
	bc := brand.NewContext("https://acme.com")
	bc.BrandName = "Acme"

	s := &stubScraper{insights: bc}
	repo := newStubRepo(true)
	h := NewHandler(s, &stubFinder{}, &stubAnalyzer{}, repo, 5)
	router := newTestRouter(h)

	w := postJSON(t, router, "/store-insights", StoreInsightsRequest{WebsiteURL: "acme.com"})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := decodeInsightsResponse(t, w)
	if !resp.Success {
		t.Error("Expected success response")
	}
	if resp.Message != "Store insights successfully extracted" {
		t.Errorf("Expected extraction message, got '%s'", resp.Message)
	}
	if resp.Data == nil || resp.Data.BrandName != "Acme" {
		t.Errorf("Expected extracted data in response, got %+v", resp.Data)
	}
	if len(repo.saved) != 1 {
		t.Errorf("Expected insight to be persisted, got %d saves", len(repo.saved))
	}
}

func TestGetStoreInsightsCacheHit(t *testing.T) {
	cached := brand.NewContext("https://acme.com")
	cached.BrandName = "Acme Cached"

	s := &stubScraper{insights: brand.NewContext("https://acme.com")}
	repo := newStubRepo(true)
	repo.stored["https://acme.com"] = cached

	h := NewHandler(s, &stubFinder{}, &stubAnalyzer{}, repo, 5)
	router := newTestRouter(h)

	w := postJSON(t, router, "/store-insights", StoreInsightsRequest{WebsiteURL: "https://acme.com"})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	resp := decodeInsightsResponse(t, w)
	if resp.Message != "Store insights retrieved from cache" {
		t.Errorf("Expected cache message, got '%s'", resp.Message)
	}
	if resp.Data.BrandName != "Acme Cached" {
		t.Errorf("Expected cached data, got '%s'", resp.Data.BrandName)
	}
	if s.calls != 0 {
		t.Errorf("Expected no extraction on cache hit, got %d calls", s.calls)
	}
}

func TestGetStoreInsightsPersistenceDisabled(t *testing.T) {
	s := &stubScraper{insights: brand.NewContext("https://acme.com")}
	h := NewHandler(s, &stubFinder{}, &stubAnalyzer{}, newStubRepo(false), 5)
	router := newTestRouter(h)

	w := postJSON(t, router, "/store-insights", StoreInsightsRequest{WebsiteURL: "acme.com"})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	resp := decodeInsightsResponse(t, w)
	expected := "Store insights successfully extracted (not cached - database not available)"
	if resp.Message != expected {
		t.Errorf("Expected message '%s', got '%s'", expected, resp.Message)
	}
}

func TestGetStoreInsightsErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   ErrorCode
	}{
		{"website not found", fmt.Errorf("%w: https://gone.com", scraper.ErrWebsiteNotFound),
			http.StatusNotFound, ErrorCodeWebsiteNotFound},
		{"timeout", fmt.Errorf("%w: https://slow.com", scraper.ErrTimeout),
			http.StatusRequestTimeout, ErrorCodeTimeout},
		{"parse failure", fmt.Errorf("%w: bad html", scraper.ErrParse),
			http.StatusInternalServerError, ErrorCodeParseError},
		{"unclassified", fmt.Errorf("boom"),
			http.StatusInternalServerError, ErrorCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &stubScraper{err: tt.err}
			h := NewHandler(s, &stubFinder{}, &stubAnalyzer{}, newStubRepo(true), 5)
			router := newTestRouter(h)

			w := postJSON(t, router, "/store-insights", StoreInsightsRequest{WebsiteURL: "acme.com"})

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			resp := decodeInsightsResponse(t, w)
			if resp.Success {
				t.Error("Expected failure response")
			}
			if resp.ErrorCode != tt.expectedCode {
				t.Errorf("Expected error code '%s', got '%s'", tt.expectedCode, resp.ErrorCode)
			}
		})
	}
}

func TestGetStoreInsightsInvalidURL(t *testing.T) {
	h := NewHandler(&stubScraper{}, &stubFinder{}, &stubAnalyzer{}, newStubRepo(true), 5)
	router := newTestRouter(h)

	w := postJSON(t, router, "/store-insights", StoreInsightsRequest{WebsiteURL: "ftp://acme.com"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}

	resp := decodeInsightsResponse(t, w)
	if resp.ErrorCode != ErrorCodeInvalidURL {
		t.Errorf("Expected error code INVALID_URL, got '%s'", resp.ErrorCode)
	}
}

func TestGetStoreInsightsMissingBody(t *testing.T) {
	h := NewHandler(&stubScraper{}, &stubFinder{}, &stubAnalyzer{}, newStubRepo(true), 5)
	router := newTestRouter(h)

	w := postJSON(t, router, "/store-insights", map[string]string{})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for missing website_url, got %d", w.Code)
	}
}

func TestAnalyzeCompetitors(t *testing.T) {
	main := brand.NewContext("https://acme.com")
	main.BrandName = "Acme"

	rival := brand.NewContext("https://rival.myshopify.com")
	rival.BrandName = "Rival"

	s := &stubScraper{insights: main}
	finder := &stubFinder{candidates: []string{"https://rival.myshopify.com"}}
	analyzer := &stubAnalyzer{insights: []*brand.Context{rival}}
	repo := newStubRepo(true)

	h := NewHandler(s, finder, analyzer, repo, 5)
	router := newTestRouter(h)

	w := postJSON(t, router, "/competitor-analysis", CompetitorAnalysisRequest{WebsiteURL: "acme.com"})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp CompetitorAnalysisResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	if resp.MainBrand == nil || resp.MainBrand.BrandName != "Acme" {
		t.Errorf("Expected main brand 'Acme', got %+v", resp.MainBrand)
	}
	if len(resp.Competitors) != 1 || resp.Competitors[0].BrandName != "Rival" {
		t.Errorf("Expected 1 competitor 'Rival', got %+v", resp.Competitors)
	}
	if resp.AnalysisSummary == "" {
		t.Error("Expected a non-empty analysis summary")
	}
	// Main brand and the competitor are both persisted.
	if len(repo.saved) != 2 {
		t.Errorf("Expected 2 saves, got %d", len(repo.saved))
	}
}

func TestAnalyzeCompetitorsMainBrandFailure(t *testing.T) {
	s := &stubScraper{err: fmt.Errorf("%w: https://gone.com", scraper.ErrWebsiteNotFound)}
	h := NewHandler(s, &stubFinder{}, &stubAnalyzer{}, newStubRepo(true), 5)
	router := newTestRouter(h)

	w := postJSON(t, router, "/competitor-analysis", CompetitorAnalysisRequest{WebsiteURL: "gone.com"})

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestGetCachedStoreInsights(t *testing.T) {
	cached := brand.NewContext("https://acme.com")
	cached.BrandName = "Acme"

	repo := newStubRepo(true)
	repo.stored["https://acme.com"] = cached

	h := NewHandler(&stubScraper{}, &stubFinder{}, &stubAnalyzer{}, repo, 5)
	router := newTestRouter(h)

	req := httptest.NewRequest("GET", "/store-insights/https://acme.com", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := decodeInsightsResponse(t, w)
	if resp.Data == nil || resp.Data.BrandName != "Acme" {
		t.Errorf("Expected cached data, got %+v", resp.Data)
	}
}

func TestGetCachedStoreInsightsNormalizesLookupKey(t *testing.T) {
	cached := brand.NewContext("https://acme.com")
	cached.BrandName = "Acme"

	repo := newStubRepo(true)
	repo.stored["https://acme.com"] = cached

	h := NewHandler(&stubScraper{}, &stubFinder{}, &stubAnalyzer{}, repo, 5)
	router := newTestRouter(h)

	// A bare host must resolve to the record stored under the
	// scheme-normalized URL.
	req := httptest.NewRequest("GET", "/store-insights/acme.com", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := decodeInsightsResponse(t, w)
	if resp.Data == nil || resp.Data.BrandName != "Acme" {
		t.Errorf("Expected cached data for normalized key, got %+v", resp.Data)
	}
}

func TestGetCachedStoreInsightsMiss(t *testing.T) {
	h := NewHandler(&stubScraper{}, &stubFinder{}, &stubAnalyzer{}, newStubRepo(true), 5)
	router := newTestRouter(h)

	req := httptest.NewRequest("GET", "/store-insights/https://unknown.com", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for cache miss, got %d", w.Code)
	}
}

func TestDeleteStoreInsightsNotImplemented(t *testing.T) {
	h := NewHandler(&stubScraper{}, &stubFinder{}, &stubAnalyzer{}, newStubRepo(true), 5)
	router := newTestRouter(h)

	req := httptest.NewRequest("DELETE", "/store-insights/https://acme.com", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotImplemented {
		t.Errorf("Expected status 501, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["message"] != "Delete functionality not implemented yet" {
		t.Errorf("Expected not-implemented message, got '%s'", body["message"])
	}
}

func TestGetHealth(t *testing.T) {
	h := NewHandler(&stubScraper{}, &stubFinder{}, &stubAnalyzer{}, newStubRepo(true), 5)
	router := newTestRouter(h)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var health map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatal(err)
	}
	if health["persistence"] != true {
		t.Errorf("Expected persistence true, got %v", health["persistence"])
	}
}

func TestAPIEndpointsRequireKey(t *testing.T) {
	h := NewHandler(&stubScraper{}, &stubFinder{}, &stubAnalyzer{}, newStubRepo(true), 5)
	router := NewServer(h, "secret")

	req := httptest.NewRequest("GET", "/api/store-insights", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without key, got %d", w.Code)
	}

	req = httptest.NewRequest("GET", "/api/store-insights", nil)
	req.Header.Set("X-API-Key", "secret")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 with key, got %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest("GET", "/api/store-insights", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 with bearer token, got %d", w.Code)
	}
}
