package competitor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/storescope/storescope/app/scraper"
)

func newCompetitorServer(title string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			w.Write([]byte(`<html><head><title>` + title + `</title></head><body></body></html>`))
			return
		}
		http.NotFound(w, r)
	}))
}

func TestAnalyzeCompetitors(t *testing.T) {
	first := newCompetitorServer("Rival One")
	defer first.Close()
	second := newCompetitorServer("Rival Two")
	defer second.Close()

	analyzer := NewAnalyzer(scraper.New(2, 5*time.Second, "test-agent"), 2, 10*time.Second)

	// The middle candidate is unreachable and must be skipped without
	// failing the batch or disturbing result order.
	candidates := []string{first.URL, "http://127.0.0.1:1", second.URL}
	insights := analyzer.AnalyzeCompetitors(context.Background(), candidates)

	if len(insights) != 2 {
		t.Fatalf("Expected 2 competitor insights, got %d", len(insights))
	}
	if insights[0].BrandName != "Rival One" {
		t.Errorf("Expected first insight 'Rival One', got '%s'", insights[0].BrandName)
	}
	if insights[1].BrandName != "Rival Two" {
		t.Errorf("Expected second insight 'Rival Two', got '%s'", insights[1].BrandName)
	}
}

func TestAnalyzeCompetitorsEmptyInput(t *testing.T) {
	analyzer := NewAnalyzer(scraper.New(1, time.Second, "test-agent"), 1, time.Second)

	if insights := analyzer.AnalyzeCompetitors(context.Background(), nil); insights != nil {
		t.Errorf("Expected nil for empty candidate list, got %v", insights)
	}
}
