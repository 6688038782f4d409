package ports

import (
	"context"

	"github.com/shopstack/storefront-api/internal/core/domain"
)

// AuthResult is a created or authenticated user together with the
// credential pair the transport layer must set as cookies.
type AuthResult struct {
	User   *domain.User
	Tokens *TokenPair
}

// AuthService orchestrates the session and credential lifecycle.
type AuthService interface {
	SignUp(ctx context.Context, email, name, password string) (*AuthResult, error)
	LogIn(ctx context.Context, email, password string) (*AuthResult, error)
	// LogOut revokes the session for the user embedded in refreshToken.
	// Best-effort: an undecodable token or absent registry entry is not
	// an error.
	LogOut(ctx context.Context, refreshToken string) error
	// Refresh exchanges a valid, non-revoked refresh token for a new
	// access token. The refresh token itself is not rotated.
	Refresh(ctx context.Context, refreshToken string) (string, error)
}
