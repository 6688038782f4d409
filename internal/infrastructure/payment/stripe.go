// Package payment adapts the Stripe API to the ports.PaymentGateway
// interface. The rest of the system never sees Stripe types.
package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/shopstack/storefront-api/internal/core/ports"
)

const gatewayTimeout = 15 * time.Second

type StripeGateway struct {
	sc *client.API
}

func NewStripeGateway(apiKey string) *StripeGateway {
	sc := &client.API{}
	sc.Init(apiKey, nil)
	return &StripeGateway{sc: sc}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, in ports.CreateSessionInput) (*ports.CheckoutSession, error) {
	ctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(in.LineItems))
	for _, li := range in.LineItems {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(li.Name),
		}
		if li.ImageURL != "" {
			productData.Images = []*string{stripe.String(li.ImageURL)}
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(string(stripe.CurrencyUSD)),
				ProductData: productData,
				UnitAmount:  stripe.Int64(li.UnitAmountCent),
			},
			Quantity: stripe.Int64(li.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(in.SuccessURL),
		CancelURL:          stripe.String(in.CancelURL),
	}
	params.Context = ctx
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	// Discounts are realized as a one-time Stripe coupon created for
	// this session only.
	if in.DiscountPercentage > 0 {
		couponParams := &stripe.CouponParams{
			PercentOff: stripe.Float64(float64(in.DiscountPercentage)),
			Duration:   stripe.String(string(stripe.CouponDurationOnce)),
		}
		couponParams.Context = ctx
		coupon, err := g.sc.Coupons.New(couponParams)
		if err != nil {
			return nil, fmt.Errorf("create stripe coupon: %w", err)
		}
		params.Discounts = []*stripe.CheckoutSessionDiscountParams{
			{Coupon: stripe.String(coupon.ID)},
		}
	}

	sess, err := g.sc.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create stripe session: %w", err)
	}
	return toSession(sess), nil
}

func (g *StripeGateway) RetrieveCheckoutSession(ctx context.Context, sessionID string) (*ports.CheckoutSession, error) {
	ctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := g.sc.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("retrieve stripe session: %w", err)
	}
	return toSession(sess), nil
}

func toSession(sess *stripe.CheckoutSession) *ports.CheckoutSession {
	return &ports.CheckoutSession{
		ID:               sess.ID,
		PaymentStatus:    string(sess.PaymentStatus),
		AmountTotalCents: sess.AmountTotal,
		Metadata:         sess.Metadata,
	}
}
