package ports

import (
	"context"

	"github.com/shopstack/storefront-api/internal/core/domain"
)

// CouponService owns the per-user single-active-coupon lifecycle.
type CouponService interface {
	// Active returns the user's active coupon, or nil when none exists.
	Active(ctx context.Context, userID string) (*domain.Coupon, error)
	// Validate checks an active coupon by code. Coupons past their
	// expiration are deactivated on the spot and fail with
	// domain.ErrCouponExpired (lazy expiration).
	Validate(ctx context.Context, userID, code string) (*domain.Coupon, error)
	// IssueGift replaces any existing coupon with a fresh 10%-off code
	// expiring in 30 days. Invoked by checkout on large orders.
	IssueGift(ctx context.Context, userID string) (*domain.Coupon, error)
}
