package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/shopstack/storefront-api/internal/core/domain"
)

func newCartFixture(t *testing.T) (*CartService, *stubUserRepo, *stubProductRepo, string) {
	t.Helper()
	users := newStubUserRepo()
	products := newStubProductRepo()

	user, err := users.Create(context.Background(), &domain.User{Email: "cart@example.com", Name: "Cart"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return NewCartService(users, products, zerolog.Nop()), users, products, user.ID
}

func TestCartService_AddItem_NewLine(t *testing.T) {
	svc, _, products, userID := newCartFixture(t)
	p := products.add(&domain.Product{Name: "Mug", PriceCents: 1500})

	lines, err := svc.AddItem(context.Background(), userID, p.ID)
	if err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}
	if len(lines) != 1 || lines[0].ProductID != p.ID || lines[0].Quantity != 1 {
		t.Fatalf("unexpected cart: %+v", lines)
	}
}

func TestCartService_AddItem_IncrementsExisting(t *testing.T) {
	svc, _, products, userID := newCartFixture(t)
	p := products.add(&domain.Product{Name: "Mug", PriceCents: 1500})

	if _, err := svc.AddItem(context.Background(), userID, p.ID); err != nil {
		t.Fatalf("first AddItem failed: %v", err)
	}
	lines, err := svc.AddItem(context.Background(), userID, p.ID)
	if err != nil {
		t.Fatalf("second AddItem failed: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 2 {
		t.Fatalf("expected single line with quantity 2, got %+v", lines)
	}
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	svc, _, _, userID := newCartFixture(t)

	if _, err := svc.AddItem(context.Background(), userID, "missing"); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCartService_UpdateQuantity(t *testing.T) {
	svc, _, products, userID := newCartFixture(t)
	p := products.add(&domain.Product{Name: "Mug", PriceCents: 1500})
	_, _ = svc.AddItem(context.Background(), userID, p.ID)

	lines, err := svc.UpdateQuantity(context.Background(), userID, p.ID, 5)
	if err != nil {
		t.Fatalf("UpdateQuantity returned error: %v", err)
	}
	if lines[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %+v", lines)
	}
}

func TestCartService_UpdateQuantity_ZeroRemovesLine(t *testing.T) {
	svc, _, products, userID := newCartFixture(t)
	p := products.add(&domain.Product{Name: "Mug", PriceCents: 1500})
	_, _ = svc.AddItem(context.Background(), userID, p.ID)

	lines, err := svc.UpdateQuantity(context.Background(), userID, p.ID, 0)
	if err != nil {
		t.Fatalf("UpdateQuantity returned error: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", lines)
	}
}

func TestCartService_UpdateQuantity_MissingLine(t *testing.T) {
	svc, _, products, userID := newCartFixture(t)
	p := products.add(&domain.Product{Name: "Mug", PriceCents: 1500})

	if _, err := svc.UpdateQuantity(context.Background(), userID, p.ID, 3); err != domain.ErrCartItemNotFound {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
}

func TestCartService_RemoveItem_EmptyIDClearsCart(t *testing.T) {
	svc, _, products, userID := newCartFixture(t)
	a := products.add(&domain.Product{Name: "Mug", PriceCents: 1500})
	b := products.add(&domain.Product{Name: "Cap", PriceCents: 2500})
	_, _ = svc.AddItem(context.Background(), userID, a.ID)
	_, _ = svc.AddItem(context.Background(), userID, b.ID)

	lines, err := svc.RemoveItem(context.Background(), userID, "")
	if err != nil {
		t.Fatalf("RemoveItem returned error: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected cleared cart, got %+v", lines)
	}
}

func TestCartService_Items_JoinsProducts(t *testing.T) {
	svc, _, products, userID := newCartFixture(t)
	p := products.add(&domain.Product{Name: "Mug", PriceCents: 1500})
	_, _ = svc.AddItem(context.Background(), userID, p.ID)
	_, _ = svc.AddItem(context.Background(), userID, p.ID)

	items, err := svc.Items(context.Background(), userID)
	if err != nil {
		t.Fatalf("Items returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one item, got %d", len(items))
	}
	if items[0].Name != "Mug" || items[0].PriceCents != 1500 || items[0].Quantity != 2 {
		t.Fatalf("unexpected item: %+v", items[0])
	}
}

// Lines whose product has been deleted since they were added are
// dropped from the response instead of failing the whole cart.
func TestCartService_Items_DropsUnresolvableLines(t *testing.T) {
	svc, _, products, userID := newCartFixture(t)
	kept := products.add(&domain.Product{Name: "Mug", PriceCents: 1500})
	gone := products.add(&domain.Product{Name: "Cap", PriceCents: 2500})
	_, _ = svc.AddItem(context.Background(), userID, kept.ID)
	_, _ = svc.AddItem(context.Background(), userID, gone.ID)

	if err := products.Delete(context.Background(), gone.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}

	items, err := svc.Items(context.Background(), userID)
	if err != nil {
		t.Fatalf("Items returned error: %v", err)
	}
	if len(items) != 1 || items[0].ID != kept.ID {
		t.Fatalf("expected only the surviving product, got %+v", items)
	}
}

func TestCartService_Items_EmptyCart(t *testing.T) {
	svc, _, _, userID := newCartFixture(t)

	items, err := svc.Items(context.Background(), userID)
	if err != nil {
		t.Fatalf("Items returned error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty slice, got %+v", items)
	}
}
