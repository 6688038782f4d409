package ports

import (
	"context"

	"github.com/shopstack/storefront-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts and the embedded
// cart. Cart mutations must be atomic field updates on the user
// document, never read-modify-write, so concurrent mutations for the
// same user cannot lose updates.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)

	// AddCartItem increments the quantity of an existing line by one, or
	// appends a new line with quantity 1.
	AddCartItem(ctx context.Context, userID, productID string) ([]domain.CartLine, error)
	// SetCartItemQuantity overwrites the quantity of an existing line.
	// Returns domain.ErrCartItemNotFound when no line matches productID.
	SetCartItemQuantity(ctx context.Context, userID, productID string, quantity int) ([]domain.CartLine, error)
	// RemoveCartItem removes the line for productID. Returns
	// domain.ErrCartItemNotFound when no line matches.
	RemoveCartItem(ctx context.Context, userID, productID string) ([]domain.CartLine, error)
	// ClearCart removes every line from the user's cart.
	ClearCart(ctx context.Context, userID string) ([]domain.CartLine, error)
}
