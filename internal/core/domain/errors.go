package domain

import "errors"

// Sentinel errors shared across services, repositories and the HTTP
// error handler. Infrastructure wraps these with %w so callers can
// match with errors.Is.
var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrNoRefreshToken      = errors.New("no refresh token provided")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrTokenExpired        = errors.New("token expired")
	ErrInvalidToken        = errors.New("invalid token")
	ErrForbidden           = errors.New("access forbidden")

	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("cart item not found")

	ErrCouponNotFound = errors.New("coupon not found")
	ErrCouponExpired  = errors.New("coupon expired")

	ErrEmptyCart         = errors.New("invalid or empty products")
	ErrOrderNotFound     = errors.New("order not found")
	ErrPaymentIncomplete = errors.New("payment not completed")
)
