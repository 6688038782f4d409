package ports

import (
	"context"

	"github.com/shopstack/storefront-api/internal/core/domain"
)

// CreateProductInput carries a new catalog entry. Image is an optional
// base64 data-URI uploaded to the image store before insertion.
type CreateProductInput struct {
	Name        string
	Description string
	PriceCents  int64
	Category    string
	Image       string
}

// ProductService owns the catalog, including the featured-product
// read-through cache.
type ProductService interface {
	All(ctx context.Context) ([]*domain.Product, error)
	Featured(ctx context.Context) ([]*domain.Product, error)
	ByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	Recommendations(ctx context.Context) ([]*domain.Product, error)
	Create(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	// ToggleFeatured flips the flag and repopulates the featured cache
	// before returning.
	ToggleFeatured(ctx context.Context, id string) (*domain.Product, error)
}
