package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/storefront-api/internal/api/metrics"
	"github.com/shopstack/storefront-api/internal/api/middleware"
	"github.com/shopstack/storefront-api/internal/core/domain"
	"github.com/shopstack/storefront-api/internal/core/ports"
)

const refreshTokenCookie = "refreshToken"

// AuthHandler owns the auth endpoints and the credential cookies.
type AuthHandler struct {
	auth          ports.AuthService
	accessTTL     time.Duration
	refreshTTL    time.Duration
	secureCookies bool
}

func NewAuthHandler(auth ports.AuthService, accessTTL, refreshTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		auth:          auth,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		secureCookies: secureCookies,
	}
}

type signUpRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type logInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type profileResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// SignUp creates a new account and starts a session.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Account details"
// @Success      201   {object}  profileResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.auth.SignUp(c.Request().Context(), req.Email, req.Name, req.Password)
	if err != nil {
		return err
	}

	metrics.SignupsTotal.Inc()
	h.setAuthCookies(c, result.Tokens)
	return c.JSON(http.StatusCreated, toProfile(result.User))
}

// LogIn authenticates an existing account and starts a session.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      logInRequest  true  "Credentials"
// @Success      201   {object}  profileResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) LogIn(c echo.Context) error {
	var req logInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.auth.LogIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.LoginsTotal.WithLabelValues("not_found").Inc()
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("bad_password").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.setAuthCookies(c, result.Tokens)
	return c.JSON(http.StatusCreated, toProfile(result.User))
}

// LogOut revokes the server-side session and clears both cookies. The
// cookies are cleared even when revocation finds nothing to revoke.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) LogOut(c echo.Context) error {
	refresh := cookieValue(c, refreshTokenCookie)
	if err := h.auth.LogOut(c.Request().Context(), refresh); err != nil {
		return err
	}

	h.clearAuthCookies(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out successfully"})
}

// Refresh exchanges the refresh cookie for a new access token. The
// refresh token itself is not rotated.
//
// @Summary      Refresh access token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/refresh-token [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	refresh := cookieValue(c, refreshTokenCookie)

	access, err := h.auth.Refresh(c.Request().Context(), refresh)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
		return err
	}

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	h.setCookie(c, middleware.AccessTokenCookie, access, h.accessTTL)
	return c.JSON(http.StatusOK, messageResponse{Message: "token refreshed"})
}

// Profile returns the authenticated user attached by the identity guard.
//
// @Summary      Get own profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func toProfile(u *domain.User) profileResponse {
	return profileResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func (h *AuthHandler) setAuthCookies(c echo.Context, tokens *ports.TokenPair) {
	h.setCookie(c, middleware.AccessTokenCookie, tokens.AccessToken, h.accessTTL)
	h.setCookie(c, refreshTokenCookie, tokens.RefreshToken, h.refreshTTL)
}

func (h *AuthHandler) clearAuthCookies(c echo.Context) {
	h.setCookie(c, middleware.AccessTokenCookie, "", -time.Second)
	h.setCookie(c, refreshTokenCookie, "", -time.Second)
}

// setCookie writes an http-only, same-site-strict cookie, marked Secure
// outside local development. A negative maxAge clears the cookie.
func (h *AuthHandler) setCookie(c echo.Context, name, value string, maxAge time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

func cookieValue(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
