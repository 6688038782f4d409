package ports

import "context"

// CheckoutLineItem is one priced line sent to the payment provider.
type CheckoutLineItem struct {
	Name           string
	ImageURL       string
	UnitAmountCent int64
	Quantity       int64
}

// CreateSessionInput carries everything the provider needs to build a
// hosted checkout session. Metadata is the source of truth for order
// creation later; the session itself is stateless from our side.
type CreateSessionInput struct {
	LineItems          []CheckoutLineItem
	DiscountPercentage int // 0 = no discount
	Metadata           map[string]string
	SuccessURL         string
	CancelURL          string
}

// CheckoutSession is the provider-side session as we observe it.
type CheckoutSession struct {
	ID               string
	PaymentStatus    string
	AmountTotalCents int64
	Metadata         map[string]string
}

// PaymentStatusPaid is the provider status that permits order creation.
const PaymentStatusPaid = "paid"

// PaymentGateway abstracts the external payment provider.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, in CreateSessionInput) (*CheckoutSession, error)
	RetrieveCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}
