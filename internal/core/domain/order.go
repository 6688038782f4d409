package domain

import "time"

// OrderLine snapshots a purchased product at checkout time. PriceCents
// is the unit price paid, not the product's current price.
type OrderLine struct {
	ProductID  string `json:"product_id" bson:"product_id"`
	Quantity   int    `json:"quantity" bson:"quantity"`
	PriceCents int64  `json:"price_cents" bson:"price_cents"`
}

// Order is an immutable record of a confirmed payment. StripeSessionID
// is unique so repeated confirmations of the same external session
// never materialize a second order.
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	Lines           []OrderLine `json:"lines"`
	TotalCents      int64       `json:"total_cents"`
	StripeSessionID string      `json:"stripe_session_id"`
	CreatedAt       time.Time   `json:"created_at"`
}
