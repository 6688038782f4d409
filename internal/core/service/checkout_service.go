package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopstack/storefront-api/internal/api/metrics"
	"github.com/shopstack/storefront-api/internal/core/domain"
	"github.com/shopstack/storefront-api/internal/core/ports"
)

// giftThresholdCents: carts totalling $200 or more earn the customer a
// gift coupon for their next purchase.
const giftThresholdCents = 20000

// CheckoutService prices carts in integer cents, opens external payment
// sessions and materializes orders on confirmed payments.
type CheckoutService struct {
	coupons    ports.CouponRepository
	gifts      ports.CouponService
	orders     ports.OrderRepository
	gateway    ports.PaymentGateway
	successURL string
	cancelURL  string
	log        zerolog.Logger
}

func NewCheckoutService(
	coupons ports.CouponRepository,
	gifts ports.CouponService,
	orders ports.OrderRepository,
	gateway ports.PaymentGateway,
	successURL, cancelURL string,
	log zerolog.Logger,
) *CheckoutService {
	return &CheckoutService{
		coupons:    coupons,
		gifts:      gifts,
		orders:     orders,
		gateway:    gateway,
		successURL: successURL,
		cancelURL:  cancelURL,
		log:        log,
	}
}

// manifestLine is one entry of the serialized product manifest embedded
// in the session metadata. The manifest, not the provider session, is
// the source of truth when the order is created later.
type manifestLine struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

func (s *CheckoutService) CreateSession(ctx context.Context, userID string, items []ports.CheckoutItem, couponCode string) (*ports.CheckoutSessionResult, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	var totalCents int64
	lineItems := make([]ports.CheckoutLineItem, 0, len(items))
	manifest := make([]manifestLine, 0, len(items))
	for _, it := range items {
		if it.ProductID == "" || it.PriceCents < 0 || it.Quantity < 0 {
			return nil, domain.ErrEmptyCart
		}
		qty := it.Quantity
		if qty == 0 {
			qty = 1
		}
		totalCents += it.PriceCents * qty
		lineItems = append(lineItems, ports.CheckoutLineItem{
			Name:           it.Name,
			ImageURL:       it.ImageURL,
			UnitAmountCent: it.PriceCents,
			Quantity:       qty,
		})
		manifest = append(manifest, manifestLine{ID: it.ProductID, Quantity: int(qty), Price: it.PriceCents})
	}

	discountPct := 0
	if couponCode != "" {
		coupon, err := s.coupons.FindActiveByCode(ctx, userID, couponCode)
		switch {
		case err == nil:
			discountPct = coupon.DiscountPercentage
		case errors.Is(err, domain.ErrCouponNotFound):
			// An unknown or inactive code simply yields no discount.
			s.log.Warn().Str("user_id", userID).Str("code", couponCode).Msg("checkout with unknown coupon code")
			couponCode = ""
		default:
			return nil, err
		}
	}

	manifestJSON, err := json.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("marshal product manifest: %w", err)
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, ports.CreateSessionInput{
		LineItems:          lineItems,
		DiscountPercentage: discountPct,
		Metadata: map[string]string{
			"userId":     userID,
			"couponCode": couponCode,
			"products":   string(manifestJSON),
		},
		SuccessURL: s.successURL,
		CancelURL:  s.cancelURL,
	})
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	// Large orders earn a gift coupon, whether or not payment ever
	// completes. Failure to issue one must not break checkout.
	if totalCents >= giftThresholdCents {
		if _, err := s.gifts.IssueGift(ctx, userID); err != nil {
			s.log.Error().Err(err).Str("user_id", userID).Msg("failed to issue gift coupon")
		}
	}

	metrics.CheckoutSessionsTotal.Inc()
	s.log.Info().Str("user_id", userID).Str("session_id", session.ID).Int64("total_cents", totalCents).Msg("checkout session created")

	return &ports.CheckoutSessionResult{SessionID: session.ID, TotalCents: totalCents}, nil
}

func (s *CheckoutService) Confirm(ctx context.Context, sessionID string) (*domain.Order, error) {
	session, err := s.gateway.RetrieveCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("retrieve checkout session: %w", err)
	}

	if session.PaymentStatus != ports.PaymentStatusPaid {
		return nil, domain.ErrPaymentIncomplete
	}

	userID := session.Metadata["userId"]
	if code := session.Metadata["couponCode"]; code != "" {
		if err := s.coupons.Deactivate(ctx, userID, code); err != nil {
			return nil, fmt.Errorf("deactivate coupon: %w", err)
		}
	}

	var manifest []manifestLine
	if err := json.Unmarshal([]byte(session.Metadata["products"]), &manifest); err != nil {
		return nil, fmt.Errorf("decode product manifest: %w", err)
	}

	lines := make([]domain.OrderLine, 0, len(manifest))
	for _, m := range manifest {
		lines = append(lines, domain.OrderLine{ProductID: m.ID, Quantity: m.Quantity, PriceCents: m.Price})
	}

	order, alreadyExisted, err := s.orders.Create(ctx, &domain.Order{
		UserID:          userID,
		Lines:           lines,
		TotalCents:      session.AmountTotalCents,
		StripeSessionID: session.ID,
		CreatedAt:       time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if alreadyExisted {
		s.log.Info().Str("session_id", session.ID).Str("order_id", order.ID).Msg("duplicate confirmation, existing order returned")
		return order, nil
	}

	metrics.OrdersCreatedTotal.Inc()
	s.log.Info().Str("session_id", session.ID).Str("order_id", order.ID).Int64("total_cents", order.TotalCents).Msg("order created")
	return order, nil
}
