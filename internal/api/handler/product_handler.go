package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/storefront-api/internal/core/domain"
	"github.com/shopstack/storefront-api/internal/core/ports"
)

type ProductHandler struct {
	products ports.ProductService
}

func NewProductHandler(products ports.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

type createProductRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents" validate:"required,gte=0"`
	Category    string `json:"category"    validate:"required"`
	Image       string `json:"image"`
}

type productListResponse struct {
	Products []*domain.Product `json:"products"`
}

// All lists the entire catalog (admin view).
//
// @Summary      List all products
// @Tags         products
// @Produce      json
// @Success      200  {object}  productListResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/products [get]
func (h *ProductHandler) All(c echo.Context) error {
	products, err := h.products.All(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productListResponse{Products: products})
}

// Featured serves the homepage promotion list from the read-through
// cache.
//
// @Summary      List featured products
// @Tags         products
// @Produce      json
// @Success      200  {array}  domain.Product
// @Router       /api/products/featured [get]
func (h *ProductHandler) Featured(c echo.Context) error {
	products, err := h.products.Featured(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// ByCategory lists products in one category.
//
// @Summary      List products by category
// @Tags         products
// @Produce      json
// @Param        category  path     string  true  "Category name"
// @Success      200       {array}  domain.Product
// @Router       /api/products/category/{category} [get]
func (h *ProductHandler) ByCategory(c echo.Context) error {
	products, err := h.products.ByCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Recommendations returns a small random product selection.
//
// @Summary      Get product recommendations
// @Tags         products
// @Produce      json
// @Success      200  {array}  domain.Product
// @Router       /api/products/recommendations [get]
func (h *ProductHandler) Recommendations(c echo.Context) error {
	products, err := h.products.Recommendations(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Create adds a product, uploading its image when one is provided.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.products.Create(c.Request().Context(), ports.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Category:    req.Category,
		Image:       req.Image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// Delete removes a product and, best-effort, its hosted image.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Param        id  path      string  true  "Product id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.products.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "product deleted"})
}

// ToggleFeatured flips a product's featured flag and refreshes the
// featured cache before responding.
//
// @Summary      Toggle a product's featured flag
// @Tags         products
// @Produce      json
// @Param        id  path      string  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  errorResponse
// @Router       /api/products/{id} [patch]
func (h *ProductHandler) ToggleFeatured(c echo.Context) error {
	product, err := h.products.ToggleFeatured(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}
