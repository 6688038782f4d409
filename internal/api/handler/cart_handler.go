package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/storefront-api/internal/core/ports"
)

// CartHandler owns the cart endpoints. All routes run behind the
// identity guard; the user id is taken from the attached user, never
// from the payload.
type CartHandler struct {
	cart ports.CartService
}

func NewCartHandler(cart ports.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

type addToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type removeFromCartRequest struct {
	// Empty clears the whole cart.
	ProductID string `json:"product_id"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// Get returns the cart resolved against current product records.
//
// @Summary      Get cart contents
// @Tags         cart
// @Produce      json
// @Success      200  {array}   domain.CartProduct
// @Failure      401  {object}  errorResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.cart.Items(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Add puts one unit of a product into the cart, merging with an
// existing line for the same product.
//
// @Summary      Add a product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      addToCartRequest  true  "Product reference"
// @Success      200   {array}   domain.CartLine
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/cart [post]
func (h *CartHandler) Add(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lines, err := h.cart.AddItem(c.Request().Context(), user.ID, req.ProductID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lines)
}

// Remove deletes one line from the cart, or every line when no
// product_id is given.
//
// @Summary      Remove from the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      removeFromCartRequest  false  "Product reference (omit to clear)"
// @Success      200   {array}   domain.CartLine
// @Failure      404   {object}  errorResponse
// @Router       /api/cart [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req removeFromCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	lines, err := h.cart.RemoveItem(c.Request().Context(), user.ID, req.ProductID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lines)
}

// UpdateQuantity overwrites a line's quantity; zero or below removes
// the line.
//
// @Summary      Update a cart line's quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Product id"
// @Param        body  body      updateQuantityRequest  true  "New quantity"
// @Success      200   {array}   domain.CartLine
// @Failure      404   {object}  errorResponse
// @Router       /api/cart/{id} [put]
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	lines, err := h.cart.UpdateQuantity(c.Request().Context(), user.ID, c.Param("id"), req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lines)
}
