package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopstack/storefront-api/internal/api/metrics"
	"github.com/shopstack/storefront-api/internal/core/domain"
	"github.com/shopstack/storefront-api/internal/core/ports"
)

const recommendationCount = 4

// ProductService owns the catalog and the featured-product cache.
type ProductService struct {
	products ports.ProductRepository
	cache    ports.ProductCache
	images   ports.ImageStore
	log      zerolog.Logger
}

func NewProductService(products ports.ProductRepository, cache ports.ProductCache, images ports.ImageStore, log zerolog.Logger) *ProductService {
	return &ProductService{products: products, cache: cache, images: images, log: log}
}

func (s *ProductService) All(ctx context.Context) ([]*domain.Product, error) {
	return s.products.FindAll(ctx)
}

// Featured serves the featured list read-through: cache first, database
// on a miss, repopulating the cache synchronously. Cache failures
// degrade to the database instead of failing the request.
func (s *ProductService) Featured(ctx context.Context) ([]*domain.Product, error) {
	cached, err := s.cache.FeaturedProducts(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("featured cache read failed, falling back to database")
	} else if cached != nil {
		metrics.FeaturedCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.FeaturedCacheTotal.WithLabelValues("miss").Inc()

	products, err := s.products.FindFeatured(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.StoreFeaturedProducts(ctx, products); err != nil {
		s.log.Warn().Err(err).Msg("failed to repopulate featured cache")
	}
	return products, nil
}

func (s *ProductService) ByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.products.FindByCategory(ctx, category)
}

func (s *ProductService) Recommendations(ctx context.Context) ([]*domain.Product, error) {
	return s.products.Sample(ctx, recommendationCount)
}

func (s *ProductService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	product := &domain.Product{
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Category:    in.Category,
		CreatedAt:   time.Now().UTC(),
	}

	if in.Image != "" {
		uploaded, err := s.images.Upload(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		product.ImageURL = uploaded.URL
		product.ImagePublicID = uploaded.PublicID
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("product_id", created.ID).Str("name", created.Name).Msg("product created")
	return created, nil
}

// Delete removes the product and, best-effort, its hosted image. A
// failed image deletion is logged and swallowed; it never blocks the
// catalog deletion.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if product.ImagePublicID != "" {
		if err := s.images.Delete(ctx, product.ImagePublicID); err != nil {
			s.log.Warn().Err(err).Str("product_id", id).Str("public_id", product.ImagePublicID).Msg("image deletion failed")
		}
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	if product.IsFeatured {
		if err := s.refreshFeaturedCache(ctx); err != nil {
			s.log.Warn().Err(err).Msg("failed to refresh featured cache after delete")
		}
	}

	s.log.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

// ToggleFeatured flips the flag and repopulates the featured cache
// before returning, so readers never observe a stale list after the
// write completes.
func (s *ProductService) ToggleFeatured(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.products.SetFeatured(ctx, id, !product.IsFeatured)
	if err != nil {
		return nil, err
	}

	if err := s.refreshFeaturedCache(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ProductService) refreshFeaturedCache(ctx context.Context) error {
	featured, err := s.products.FindFeatured(ctx)
	if err != nil {
		return err
	}
	return s.cache.StoreFeaturedProducts(ctx, featured)
}
