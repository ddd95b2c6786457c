package database

import (
	"github.com/storescope/storescope/app/brand"
)

var _ StoreRepository = (*DisabledStoreRepository)(nil)

// DisabledStoreRepository is selected at startup when the backing store
// is unavailable. Every operation is a silent no-op; persistence being
// off is a degraded mode, not an error.
type DisabledStoreRepository struct{}

func NewDisabledStoreRepository() *DisabledStoreRepository {
	return &DisabledStoreRepository{}
}

func (r *DisabledStoreRepository) Enabled() bool {
	return false
}

func (r *DisabledStoreRepository) GetByURL(_ string) (*brand.Context, error) {
	return nil, nil
}

func (r *DisabledStoreRepository) Save(_ *brand.Context) (string, error) {
	return "", nil
}

func (r *DisabledStoreRepository) ListAll() ([]*brand.Context, error) {
	return nil, nil
}
