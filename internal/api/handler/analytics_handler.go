package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/storefront-api/internal/core/ports"
)

// dailySalesWindow is the number of trailing days shown on the
// dashboard chart.
const dailySalesWindow = 7

type AnalyticsHandler struct {
	analytics ports.AnalyticsService
}

func NewAnalyticsHandler(analytics ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

type analyticsResponse struct {
	Overview   *ports.AnalyticsOverview `json:"analytics"`
	DailySales []ports.DailySales       `json:"daily_sales"`
}

// Overview returns the aggregate store counters together with the
// daily sales series for the last week.
//
// @Summary      Admin analytics dashboard
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  analyticsResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/analytics [get]
func (h *AnalyticsHandler) Overview(c echo.Context) error {
	ctx := c.Request().Context()

	overview, err := h.analytics.Overview(ctx)
	if err != nil {
		return err
	}
	daily, err := h.analytics.DailySales(ctx, dailySalesWindow)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, analyticsResponse{
		Overview:   overview,
		DailySales: daily,
	})
}
