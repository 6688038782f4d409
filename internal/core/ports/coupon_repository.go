package ports

import (
	"context"

	"github.com/shopstack/storefront-api/internal/core/domain"
)

// CouponRepository defines persistence for per-user discount coupons.
type CouponRepository interface {
	Create(ctx context.Context, c *domain.Coupon) (*domain.Coupon, error)
	// FindActive returns the user's active coupon, or nil when none
	// exists. "No coupon" is not an error.
	FindActive(ctx context.Context, userID string) (*domain.Coupon, error)
	// FindActiveByCode returns the active coupon matching code for the
	// user, or domain.ErrCouponNotFound.
	FindActiveByCode(ctx context.Context, userID, code string) (*domain.Coupon, error)
	// Deactivate flips is_active to false for the coupon matching code
	// and user. Missing coupons are a no-op.
	Deactivate(ctx context.Context, userID, code string) error
	// DeleteByUser removes every coupon row for the user.
	DeleteByUser(ctx context.Context, userID string) error
}
