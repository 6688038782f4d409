package service

import (
	"context"
	"time"

	"github.com/shopstack/storefront-api/internal/core/ports"
)

// AnalyticsService aggregates store activity for the admin dashboard.
type AnalyticsService struct {
	users  ports.UserRepository
	orders ports.OrderRepository
	prods  ports.ProductRepository
	now    func() time.Time
}

func NewAnalyticsService(users ports.UserRepository, products ports.ProductRepository, orders ports.OrderRepository) *AnalyticsService {
	return &AnalyticsService{users: users, prods: products, orders: orders, now: time.Now}
}

func (s *AnalyticsService) Overview(ctx context.Context) (*ports.AnalyticsOverview, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.prods.Count(ctx)
	if err != nil {
		return nil, err
	}
	sales, revenue, err := s.orders.Totals(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.AnalyticsOverview{
		Users:        users,
		Products:     products,
		TotalSales:   sales,
		RevenueCents: revenue,
	}, nil
}

// DailySales returns one entry per calendar day over the trailing
// window, oldest first. Days without orders are zero-filled so the
// series always has exactly `days`+1 points (today inclusive).
func (s *AnalyticsService) DailySales(ctx context.Context, days int) ([]ports.DailySales, error) {
	end := s.now().UTC()
	start := end.AddDate(0, 0, -days)

	byDay, err := s.orders.SalesByDay(ctx, start, end)
	if err != nil {
		return nil, err
	}

	series := make([]ports.DailySales, 0, days+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		if found, ok := byDay[key]; ok {
			series = append(series, found)
			continue
		}
		series = append(series, ports.DailySales{Date: key})
	}
	return series, nil
}
