package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shopstack/storefront-api/internal/core/domain"
)

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{domain.ErrUserExists, http.StatusConflict, "user already exists"},
		{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{domain.ErrNoRefreshToken, http.StatusBadRequest, "no refresh token provided"},
		{domain.ErrInvalidRefreshToken, http.StatusUnauthorized, "invalid refresh token"},
		{domain.ErrTokenExpired, http.StatusUnauthorized, "access token expired"},
		{domain.ErrInvalidToken, http.StatusUnauthorized, "invalid access token"},
		{domain.ErrForbidden, http.StatusForbidden, "access denied: admin only"},
		{domain.ErrProductNotFound, http.StatusNotFound, "product not found"},
		{domain.ErrCartItemNotFound, http.StatusNotFound, "cart item not found"},
		{domain.ErrCouponNotFound, http.StatusNotFound, "coupon not found"},
		{domain.ErrCouponExpired, http.StatusBadRequest, "coupon expired"},
		{domain.ErrEmptyCart, http.StatusBadRequest, "invalid or empty products"},
		{domain.ErrPaymentIncomplete, http.StatusBadRequest, "payment not completed"},
		{domain.ErrOrderNotFound, http.StatusNotFound, "order not found"},
	}

	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler(tc.err, c)

		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		var resp errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%v: invalid json: %v", tc.err, err)
		}
		if resp.Error != tc.msg {
			t.Fatalf("%v: expected %q, got %q", tc.err, tc.msg, resp.Error)
		}
	}
}

// Wrapped domain errors still map to their status code; errors that
// merely share the message text do not.
func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(fmt.Errorf("create checkout session: %w", domain.ErrEmptyCart), c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected wrapped sentinel to map to 400, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	handler(errors.New(domain.ErrEmptyCart.Error()), c)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("string lookalike must not map, got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_EchoHTTPErrorPassthrough(t *testing.T) {
	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(echo.NewHTTPError(http.StatusTeapot, "short and stout"), c)
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Error != "short and stout" {
		t.Fatalf("unexpected message %q", resp.Error)
	}
}

func TestHTTPErrorHandler_UnexpectedError(t *testing.T) {
	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(errors.New("mongo: connection reset"), c)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Error != "internal server error" {
		t.Fatalf("internal detail leaked: %q", resp.Error)
	}
}
