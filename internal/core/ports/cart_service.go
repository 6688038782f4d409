package ports

import (
	"context"

	"github.com/shopstack/storefront-api/internal/core/domain"
)

// CartService mutates and reads a user's cart. Every operation takes an
// explicit user id; core logic never reads an ambient request context.
type CartService interface {
	AddItem(ctx context.Context, userID, productID string) ([]domain.CartLine, error)
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) ([]domain.CartLine, error)
	// RemoveItem removes the line for productID; an empty productID
	// clears the entire cart.
	RemoveItem(ctx context.Context, userID, productID string) ([]domain.CartLine, error)
	// Items joins cart lines against current products. Lines whose
	// product no longer exists are dropped from the result.
	Items(ctx context.Context, userID string) ([]*domain.CartProduct, error)
}
