package ports

import (
	"context"
	"time"

	"github.com/shopstack/storefront-api/internal/core/domain"
)

// DailySales is one day of the zero-filled analytics series.
type DailySales struct {
	Date         string `json:"date"`
	Sales        int64  `json:"sales"`
	RevenueCents int64  `json:"revenue_cents"`
}

// OrderRepository defines persistence for confirmed orders.
type OrderRepository interface {
	// Create inserts the order. When an order with the same stripe
	// session id already exists (unique index), the existing order is
	// returned with alreadyExisted=true, keeping confirmation idempotent.
	Create(ctx context.Context, o *domain.Order) (order *domain.Order, alreadyExisted bool, err error)
	FindByStripeSession(ctx context.Context, sessionID string) (*domain.Order, error)
	// Totals returns the all-time order count and summed revenue.
	Totals(ctx context.Context) (count int64, revenueCents int64, err error)
	// SalesByDay groups orders created in [from, to] by calendar day.
	// Days without orders are absent from the result.
	SalesByDay(ctx context.Context, from, to time.Time) (map[string]DailySales, error)
}
