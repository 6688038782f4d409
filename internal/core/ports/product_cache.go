package ports

import (
	"context"

	"github.com/shopstack/storefront-api/internal/core/domain"
)

// ProductCache is the read-through cache for the featured-product list.
// Any write to a product's featured flag must repopulate the entry
// synchronously before the write returns.
type ProductCache interface {
	// FeaturedProducts returns the cached list, or (nil, nil) on a miss.
	FeaturedProducts(ctx context.Context) ([]*domain.Product, error)
	StoreFeaturedProducts(ctx context.Context, products []*domain.Product) error
	InvalidateFeaturedProducts(ctx context.Context) error
}
