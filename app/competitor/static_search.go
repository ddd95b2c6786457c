package competitor

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var _ SearchProvider = (*StaticSearchProvider)(nil)

// StaticSearchProvider answers every query with a fixed URL list. It is a
// demonstration stand-in for a real search integration and can be seeded
// from a YAML file.
type StaticSearchProvider struct {
	urls []string
}

// Default demonstration list used when no competitors file is configured.
var defaultSearchResults = []string{
	"https://allbirds.com/products",
	"https://gymshark.com/cart",
	"https://colourpop.myshopify.com",
	"https://fashionnova.myshopify.com",
	"https://ruggable.com/products",
}

type staticSearchFile struct {
	Results []string `yaml:"results"`
}

func NewStaticSearchProvider() *StaticSearchProvider {
	return &StaticSearchProvider{urls: defaultSearchResults}
}

// NewStaticSearchProviderFromFile loads the result list from a YAML file
// with a top-level "results" sequence.
func NewStaticSearchProviderFromFile(path string) (*StaticSearchProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read competitors file: %w", err)
	}

	var parsed staticSearchFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse competitors file: %w", err)
	}

	if len(parsed.Results) == 0 {
		return nil, fmt.Errorf("competitors file %s contains no results", path)
	}

	return &StaticSearchProvider{urls: parsed.Results}, nil
}

func (p *StaticSearchProvider) Search(_ context.Context, _ string) ([]string, error) {
	results := make([]string, len(p.urls))
	copy(results, p.urls)
	return results, nil
}
