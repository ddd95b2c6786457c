package competitor

import "context"

// SearchProvider is the pluggable lookup used for competitor discovery.
// The shipped StaticSearchProvider returns a fixed demonstration list;
// production deployments substitute a real search integration.
type SearchProvider interface {
	Search(ctx context.Context, query string) ([]string, error)
}
