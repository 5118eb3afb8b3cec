package usecase

import "context"

// ImageUsecase defines the interface for product photo retrieval. Lookups
// for the same product are coalesced and results are cached across restarts.
type ImageUsecase interface {
	// ProductImage returns the photo bytes for a product, from cache when
	// possible.
	ProductImage(ctx context.Context, productID string) ([]byte, error)

	// ClearCache drops both the in-memory and the persistent image tiers.
	ClearCache(ctx context.Context) error
}
