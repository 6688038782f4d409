package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/storefront-api/internal/core/domain"
	"github.com/shopstack/storefront-api/internal/core/ports"
)

// AccessTokenCookie is the cookie the identity guard reads.
const AccessTokenCookie = "accessToken"

// UserContextKey is where the identity guard stores the loaded user.
const UserContextKey = "user"

// Auth is the identity guard for protected routes. It reads the access
// cookie, verifies it, loads the user record and attaches it to the
// request context. Verification failures distinguish expiry from other
// invalid tokens so clients know whether a refresh attempt is worth it.
func Auth(tokens ports.TokenService, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(AccessTokenCookie)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "no access token provided")
			}

			userID, err := tokens.VerifyAccessToken(cookie.Value)
			if err != nil {
				// ErrTokenExpired or ErrInvalidToken; both map to 401
				// with distinct messages.
				return err
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				return err
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// AdminOnly restricts a route to admin users. Must run after Auth.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(UserContextKey).(*domain.User)
			if user == nil || !user.IsAdmin() {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
