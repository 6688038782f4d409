package ports

import "time"

// TokenPair is a freshly issued access + refresh credential pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenService issues and verifies the signed credentials bound to a
// user id. Access tokens are short-lived; refresh tokens are longer
// lived and additionally mirrored in the SessionRegistry.
type TokenService interface {
	IssuePair(userID string) (*TokenPair, error)
	IssueAccessToken(userID string) (string, error)
	// VerifyAccessToken returns the embedded user id. Expired tokens
	// fail with domain.ErrTokenExpired, all other failures with
	// domain.ErrInvalidToken.
	VerifyAccessToken(token string) (string, error)
	// VerifyRefreshToken returns the embedded user id, failing with
	// domain.ErrInvalidRefreshToken on any verification failure.
	VerifyRefreshToken(token string) (string, error)
	AccessTokenTTL() time.Duration
	RefreshTokenTTL() time.Duration
}
