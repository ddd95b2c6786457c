package competitor

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestStaticSearchProviderDefaults(t *testing.T) {
	provider := NewStaticSearchProvider()

	results, err := provider.Search(context.Background(), "any query")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(results) == 0 {
		t.Fatal("Expected built-in result list to be non-empty")
	}

	for _, result := range results {
		if !IsLikelyStorefront(result) {
			t.Errorf("Expected built-in result '%s' to pass the storefront filter", result)
		}
	}
}

func TestStaticSearchProviderReturnsCopy(t *testing.T) {
	provider := NewStaticSearchProvider()

	first, _ := provider.Search(context.Background(), "q")
	first[0] = "mutated"

	second, _ := provider.Search(context.Background(), "q")
	if second[0] == "mutated" {
		t.Error("Expected Search to return a copy, not the backing slice")
	}
}

func TestNewStaticSearchProviderFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "competitors.yml")
	content := `results:
  - https://rival1.myshopify.com
  - https://rival2.com/products
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	provider, err := NewStaticSearchProviderFromFile(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	results, _ := provider.Search(context.Background(), "q")
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0] != "https://rival1.myshopify.com" {
		t.Errorf("Expected first result from file, got '%s'", results[0])
	}
}

func TestNewStaticSearchProviderFromFileErrors(t *testing.T) {
	if _, err := NewStaticSearchProviderFromFile("/nonexistent/competitors.yml"); err == nil {
		t.Error("Expected error for missing file")
	}

	empty := filepath.Join(t.TempDir(), "empty.yml")
	if err := os.WriteFile(empty, []byte("results: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStaticSearchProviderFromFile(empty); err == nil {
		t.Error("Expected error for empty result list")
	}
}
