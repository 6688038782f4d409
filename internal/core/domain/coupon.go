package domain

import "time"

// Coupon is a per-user percentage discount. At most one coupon per user
// is active at any time; the invariant is enforced structurally by
// deleting existing rows before issuing a new one.
type Coupon struct {
	ID                 string    `json:"id"`
	Code               string    `json:"code"`
	DiscountPercentage int       `json:"discount_percentage"`
	ExpirationDate     time.Time `json:"expiration_date"`
	UserID             string    `json:"user_id"`
	IsActive           bool      `json:"is_active"`
}

// Expired reports whether the coupon's expiration date has passed.
// Expiry is only observed lazily, at validation time.
func (c *Coupon) Expired(now time.Time) bool {
	return c.ExpirationDate.Before(now)
}
