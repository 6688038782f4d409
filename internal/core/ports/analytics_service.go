package ports

import "context"

// AnalyticsOverview is the site-wide aggregate counters.
type AnalyticsOverview struct {
	Users        int64 `json:"users"`
	Products     int64 `json:"products"`
	TotalSales   int64 `json:"total_sales"`
	RevenueCents int64 `json:"revenue_cents"`
}

// AnalyticsService aggregates store activity for the admin dashboard.
type AnalyticsService interface {
	Overview(ctx context.Context) (*AnalyticsOverview, error)
	// DailySales returns one entry per calendar day over the last `days`
	// days, zero-filled for days without orders, oldest first.
	DailySales(ctx context.Context, days int) ([]DailySales, error)
}
