package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/shopstack/storefront-api/internal/core/domain"
	"github.com/shopstack/storefront-api/internal/core/ports"
)

// CartService implements cart mutations on top of the atomic
// field-update operations exposed by the user repository.
type CartService struct {
	users    ports.UserRepository
	products ports.ProductRepository
	log      zerolog.Logger
}

func NewCartService(users ports.UserRepository, products ports.ProductRepository, log zerolog.Logger) *CartService {
	return &CartService{users: users, products: products, log: log}
}

// AddItem increments the existing line for productID by one, or appends
// a new line with quantity 1.
func (s *CartService) AddItem(ctx context.Context, userID, productID string) ([]domain.CartLine, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.users.AddCartItem(ctx, userID, productID)
}

// UpdateQuantity overwrites the quantity of an existing line. A
// quantity of zero or below removes the line entirely.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) ([]domain.CartLine, error) {
	if quantity <= 0 {
		return s.users.RemoveCartItem(ctx, userID, productID)
	}
	return s.users.SetCartItemQuantity(ctx, userID, productID, quantity)
}

// RemoveItem removes the line for productID. An empty productID clears
// the whole cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) ([]domain.CartLine, error) {
	if productID == "" {
		return s.users.ClearCart(ctx, userID)
	}
	return s.users.RemoveCartItem(ctx, userID, productID)
}

// Items joins the stored cart lines against current product records.
// Lines whose product no longer resolves are dropped from the result;
// the stored line itself is left untouched.
func (s *CartService) Items(ctx context.Context, userID string) ([]*domain.CartProduct, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.CartItems) == 0 {
		return []*domain.CartProduct{}, nil
	}

	ids := make([]string, 0, len(user.CartItems))
	for _, line := range user.CartItems {
		ids = append(ids, line.ProductID)
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]*domain.CartProduct, 0, len(user.CartItems))
	for _, line := range user.CartItems {
		p, ok := byID[line.ProductID]
		if !ok {
			s.log.Debug().Str("user_id", userID).Str("product_id", line.ProductID).Msg("cart line references missing product, dropped")
			continue
		}
		items = append(items, &domain.CartProduct{Product: *p, Quantity: line.Quantity})
	}
	return items, nil
}
