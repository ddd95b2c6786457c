package database

import (
	"github.com/storescope/storescope/app/brand"
)

// StoreRepository persists extracted brand contexts keyed by store URL.
// The backing store is best-effort: when persistence is unavailable the
// disabled variant is selected at startup and every operation degrades to
// a no-op instead of failing.
type StoreRepository interface {
	// GetByURL returns the stored brand context for a store URL, or nil
	// when none exists.
	GetByURL(storeURL string) (*brand.Context, error)

	// Save creates or replaces the record for the context's store URL.
	// All child collections of an existing record are replaced, never
	// merged. Returns the persisted record ID, empty when persistence
	// is disabled.
	Save(bc *brand.Context) (string, error)

	ListAll() ([]*brand.Context, error)

	// Enabled reports whether saves actually persist.
	Enabled() bool
}
