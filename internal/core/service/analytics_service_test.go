package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopstack/storefront-api/internal/core/domain"
	"github.com/shopstack/storefront-api/internal/core/ports"
)

func TestAnalyticsService_Overview(t *testing.T) {
	users := newStubUserRepo()
	products := newStubProductRepo()
	orders := newStubOrderRepo()

	_, _ = users.Create(context.Background(), &domain.User{Email: "a@example.com"})
	_, _ = users.Create(context.Background(), &domain.User{Email: "b@example.com"})
	products.add(&domain.Product{Name: "Mug"})
	_, _, _ = orders.Create(context.Background(), &domain.Order{StripeSessionID: "cs_1", TotalCents: 1500})
	_, _, _ = orders.Create(context.Background(), &domain.Order{StripeSessionID: "cs_2", TotalCents: 2500})

	svc := NewAnalyticsService(users, products, orders)
	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview returned error: %v", err)
	}
	if overview.Users != 2 || overview.Products != 1 {
		t.Fatalf("unexpected counts: %+v", overview)
	}
	if overview.TotalSales != 2 || overview.RevenueCents != 4000 {
		t.Fatalf("unexpected totals: %+v", overview)
	}
}

// Days without orders appear as zero entries, so the series always has
// a fixed length with today as the last point.
func TestAnalyticsService_DailySales_ZeroFilled(t *testing.T) {
	orders := newStubOrderRepo()
	orders.byDay["2026-08-30"] = ports.DailySales{Date: "2026-08-30", Sales: 3, RevenueCents: 9000}

	svc := NewAnalyticsService(newStubUserRepo(), newStubProductRepo(), orders)
	svc.now = func() time.Time { return time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC) }

	series, err := svc.DailySales(context.Background(), 7)
	if err != nil {
		t.Fatalf("DailySales returned error: %v", err)
	}
	if len(series) != 8 {
		t.Fatalf("expected 8 points, got %d", len(series))
	}
	if series[0].Date != "2026-08-25" || series[len(series)-1].Date != "2026-09-01" {
		t.Fatalf("unexpected window: first=%s last=%s", series[0].Date, series[len(series)-1].Date)
	}
	for _, point := range series {
		switch point.Date {
		case "2026-08-30":
			if point.Sales != 3 || point.RevenueCents != 9000 {
				t.Fatalf("unexpected point: %+v", point)
			}
		default:
			if point.Sales != 0 || point.RevenueCents != 0 {
				t.Fatalf("expected zero-filled point, got %+v", point)
			}
		}
	}
}
