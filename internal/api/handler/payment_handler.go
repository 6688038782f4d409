package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/storefront-api/internal/core/ports"
)

type PaymentHandler struct {
	checkout ports.CheckoutService
}

func NewPaymentHandler(checkout ports.CheckoutService) *PaymentHandler {
	return &PaymentHandler{checkout: checkout}
}

type checkoutProductRequest struct {
	ID         string `json:"id"          validate:"required"`
	Name       string `json:"name"        validate:"required"`
	ImageURL   string `json:"image_url"`
	PriceCents int64  `json:"price_cents" validate:"gte=0"`
	Quantity   int64  `json:"quantity"    validate:"gte=0"`
}

type createCheckoutSessionRequest struct {
	Products   []checkoutProductRequest `json:"products"    validate:"required,min=1,dive"`
	CouponCode string                   `json:"coupon_code"`
}

type createCheckoutSessionResponse struct {
	ID         string `json:"id"`
	TotalCents int64  `json:"total_cents"`
}

type checkoutSuccessRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

type checkoutSuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"order_id"`
}

// CreateCheckoutSession prices the submitted cart and opens an external
// payment session.
//
// @Summary      Create a checkout session
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      createCheckoutSessionRequest  true  "Cart snapshot and optional coupon"
// @Success      200   {object}  createCheckoutSessionResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/payments/create-checkout-session [post]
func (h *PaymentHandler) CreateCheckoutSession(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createCheckoutSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	items := make([]ports.CheckoutItem, 0, len(req.Products))
	for _, p := range req.Products {
		items = append(items, ports.CheckoutItem{
			ProductID:  p.ID,
			Name:       p.Name,
			ImageURL:   p.ImageURL,
			PriceCents: p.PriceCents,
			Quantity:   p.Quantity,
		})
	}

	result, err := h.checkout.CreateSession(c.Request().Context(), user.ID, items, req.CouponCode)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, createCheckoutSessionResponse{
		ID:         result.SessionID,
		TotalCents: result.TotalCents,
	})
}

// CheckoutSuccess confirms a completed payment and materializes the
// order. Safe to call more than once for the same session.
//
// @Summary      Confirm a successful checkout
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      checkoutSuccessRequest  true  "External session id"
// @Success      200   {object}  checkoutSuccessResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/payments/checkout-success [post]
func (h *PaymentHandler) CheckoutSuccess(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}

	var req checkoutSuccessRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.checkout.Confirm(c.Request().Context(), req.SessionID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, checkoutSuccessResponse{
		Success: true,
		Message: "payment successful, order created, and coupon deactivated",
		OrderID: order.ID,
	})
}
