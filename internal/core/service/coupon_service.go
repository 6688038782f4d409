package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopstack/storefront-api/internal/api/metrics"
	"github.com/shopstack/storefront-api/internal/core/domain"
	"github.com/shopstack/storefront-api/internal/core/ports"
)

const (
	giftDiscountPercentage = 10
	giftValidity           = 30 * 24 * time.Hour
)

// CouponService implements the per-user single-active-coupon lifecycle
// with lazy expiration.
type CouponService struct {
	coupons ports.CouponRepository
	log     zerolog.Logger
	now     func() time.Time
}

func NewCouponService(coupons ports.CouponRepository, log zerolog.Logger) *CouponService {
	return &CouponService{coupons: coupons, log: log, now: time.Now}
}

// Active returns the user's active coupon, or nil when there is none.
func (s *CouponService) Active(ctx context.Context, userID string) (*domain.Coupon, error) {
	return s.coupons.FindActive(ctx, userID)
}

// Validate checks an active coupon by code. Expiry is enforced here and
// only here: a coupon found past its expiration date is flipped
// inactive, persisted, and reported as expired.
func (s *CouponService) Validate(ctx context.Context, userID, code string) (*domain.Coupon, error) {
	coupon, err := s.coupons.FindActiveByCode(ctx, userID, code)
	if err != nil {
		return nil, err
	}

	if coupon.Expired(s.now().UTC()) {
		if err := s.coupons.Deactivate(ctx, userID, coupon.Code); err != nil {
			return nil, err
		}
		s.log.Info().Str("user_id", userID).Str("code", coupon.Code).Msg("coupon lazily expired")
		return nil, domain.ErrCouponExpired
	}

	return coupon, nil
}

// IssueGift replaces any existing coupon for the user with a fresh
// 10%-off code valid for 30 days. Deleting first keeps the at-most-one
// invariant structural rather than flag-based.
func (s *CouponService) IssueGift(ctx context.Context, userID string) (*domain.Coupon, error) {
	if err := s.coupons.DeleteByUser(ctx, userID); err != nil {
		return nil, err
	}

	coupon := &domain.Coupon{
		Code:               "GIFT" + randomCode(6),
		DiscountPercentage: giftDiscountPercentage,
		ExpirationDate:     s.now().UTC().Add(giftValidity),
		UserID:             userID,
		IsActive:           true,
	}

	created, err := s.coupons.Create(ctx, coupon)
	if err != nil {
		return nil, err
	}

	metrics.GiftCouponsIssuedTotal.Inc()
	s.log.Info().Str("user_id", userID).Str("code", created.Code).Msg("gift coupon issued")
	return created, nil
}

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// randomCode returns n random characters from codeAlphabet.
func randomCode(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// fallback: derive from the clock
		return fmt.Sprintf("%0*X", n, time.Now().UnixNano())[:n]
	}
	for i := range b {
		b[i] = codeAlphabet[int(b[i])%len(codeAlphabet)]
	}
	return string(b)
}
