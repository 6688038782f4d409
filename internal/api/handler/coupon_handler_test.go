package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/storefront-api/internal/api/middleware"
	"github.com/shopstack/storefront-api/internal/core/domain"
)

type stubCouponService struct {
	activeFn   func(ctx context.Context, userID string) (*domain.Coupon, error)
	validateFn func(ctx context.Context, userID, code string) (*domain.Coupon, error)
}

func (s *stubCouponService) Active(ctx context.Context, userID string) (*domain.Coupon, error) {
	return s.activeFn(ctx, userID)
}

func (s *stubCouponService) Validate(ctx context.Context, userID, code string) (*domain.Coupon, error) {
	return s.validateFn(ctx, userID, code)
}

func (s *stubCouponService) IssueGift(context.Context, string) (*domain.Coupon, error) {
	panic("unused")
}

func couponContext(e *echo.Echo, method, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/api/coupons", nil)
	} else {
		req = httptest.NewRequest(method, "/api/coupons/validate", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.UserContextKey, &domain.User{ID: "user_1", Role: domain.RoleCustomer})
	return c, rec
}

func TestCouponHandler_Get(t *testing.T) {
	e := echo.New()
	stub := &stubCouponService{
		activeFn: func(_ context.Context, userID string) (*domain.Coupon, error) {
			return &domain.Coupon{
				Code:               "GIFTABC123",
				DiscountPercentage: 10,
				ExpirationDate:     time.Now().Add(time.Hour),
				UserID:             userID,
				IsActive:           true,
			}, nil
		},
	}
	handler := NewCouponHandler(stub)

	c, rec := couponContext(e, http.MethodGet, "")
	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["code"] != "GIFTABC123" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

// No active coupon serializes as a JSON null with status 200.
func TestCouponHandler_Get_NoCoupon(t *testing.T) {
	e := echo.New()
	stub := &stubCouponService{
		activeFn: func(context.Context, string) (*domain.Coupon, error) {
			return nil, nil
		},
	}
	handler := NewCouponHandler(stub)

	c, rec := couponContext(e, http.MethodGet, "")
	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "null" {
		t.Fatalf("expected null body, got %q", rec.Body.String())
	}
}

func TestCouponHandler_Validate(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubCouponService{
		validateFn: func(_ context.Context, userID, code string) (*domain.Coupon, error) {
			if code != "GIFTABC123" {
				t.Fatalf("unexpected code %q", code)
			}
			return &domain.Coupon{Code: code, DiscountPercentage: 10, IsActive: true}, nil
		},
	}
	handler := NewCouponHandler(stub)

	c, rec := couponContext(e, http.MethodPost, `{"code":"GIFTABC123"}`)
	if err := handler.Validate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp validateCouponResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Code != "GIFTABC123" || resp.DiscountPercentage != 10 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestCouponHandler_Validate_Expired(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubCouponService{
		validateFn: func(context.Context, string, string) (*domain.Coupon, error) {
			return nil, domain.ErrCouponExpired
		},
	}
	handler := NewCouponHandler(stub)

	c, _ := couponContext(e, http.MethodPost, `{"code":"GIFTOLD001"}`)
	if err := handler.Validate(c); err != domain.ErrCouponExpired {
		t.Fatalf("expected ErrCouponExpired, got %v", err)
	}
}
