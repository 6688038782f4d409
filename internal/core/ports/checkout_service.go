package ports

import (
	"context"

	"github.com/shopstack/storefront-api/internal/core/domain"
)

// CheckoutItem is one cart line as submitted for checkout: the client's
// snapshot of the product plus the desired quantity.
type CheckoutItem struct {
	ProductID  string
	Name       string
	ImageURL   string
	PriceCents int64
	Quantity   int64
}

// CheckoutSessionResult is the created payment session reference plus
// the server-computed pre-discount total.
type CheckoutSessionResult struct {
	SessionID  string
	TotalCents int64
}

// CheckoutService prices a cart, opens an external payment session and
// materializes orders on confirmed payments.
type CheckoutService interface {
	CreateSession(ctx context.Context, userID string, items []CheckoutItem, couponCode string) (*CheckoutSessionResult, error)
	// Confirm retrieves the external session and, when its payment
	// status is paid, deactivates the session's coupon and creates the
	// order. Repeated calls for the same session yield the same order.
	Confirm(ctx context.Context, sessionID string) (*domain.Order, error)
}
