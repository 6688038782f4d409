package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/storefront-api/internal/api/middleware"
	"github.com/shopstack/storefront-api/internal/core/domain"
)

// currentUser extracts the user attached by the identity guard. Its
// absence means a route was wired without the guard, so fail closed.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.UserContextKey).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}
