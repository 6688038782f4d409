package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopstack/storefront-api/internal/core/domain"
)

const (
	featuredProductsKey = "featured_products"
	featuredTTL         = time.Hour
)

// ProductCache caches the featured-product list as a JSON blob under a
// single key. Writers repopulate it synchronously, so a bounded TTL is
// only a safety net against missed invalidations.
type ProductCache struct {
	client *redis.Client
}

func NewProductCache(client *redis.Client) *ProductCache {
	return &ProductCache{client: client}
}

// FeaturedProducts returns the cached list, or (nil, nil) on a miss.
func (c *ProductCache) FeaturedProducts(ctx context.Context) ([]*domain.Product, error) {
	raw, err := c.client.Get(ctx, featuredProductsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("read featured cache: %w", err)
	}

	var products []*domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("decode featured cache: %w", err)
	}
	return products, nil
}

func (c *ProductCache) StoreFeaturedProducts(ctx context.Context, products []*domain.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("encode featured cache: %w", err)
	}
	if err := c.client.Set(ctx, featuredProductsKey, raw, featuredTTL).Err(); err != nil {
		return fmt.Errorf("write featured cache: %w", err)
	}
	return nil
}

func (c *ProductCache) InvalidateFeaturedProducts(ctx context.Context) error {
	if err := c.client.Del(ctx, featuredProductsKey).Err(); err != nil {
		return fmt.Errorf("invalidate featured cache: %w", err)
	}
	return nil
}
