package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/storefront-api/internal/core/ports"
)

type CouponHandler struct {
	coupons ports.CouponService
}

func NewCouponHandler(coupons ports.CouponService) *CouponHandler {
	return &CouponHandler{coupons: coupons}
}

type validateCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

type validateCouponResponse struct {
	Message            string `json:"message"`
	Code               string `json:"code"`
	DiscountPercentage int    `json:"discount_percentage"`
}

// Get returns the user's active coupon, or a JSON null when none
// exists; "no coupon" is never an error.
//
// @Summary      Get active coupon
// @Tags         coupon
// @Produce      json
// @Success      200  {object}  domain.Coupon
// @Failure      401  {object}  errorResponse
// @Router       /api/coupons [get]
func (h *CouponHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	coupon, err := h.coupons.Active(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, coupon)
}

// Validate checks a coupon code for the authenticated user.
//
// @Summary      Validate a coupon code
// @Tags         coupon
// @Accept       json
// @Produce      json
// @Param        body  body      validateCouponRequest  true  "Coupon code"
// @Success      200   {object}  validateCouponResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/coupons/validate [post]
func (h *CouponHandler) Validate(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req validateCouponRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	coupon, err := h.coupons.Validate(c.Request().Context(), user.ID, req.Code)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, validateCouponResponse{
		Message:            "coupon is valid",
		Code:               coupon.Code,
		DiscountPercentage: coupon.DiscountPercentage,
	})
}
