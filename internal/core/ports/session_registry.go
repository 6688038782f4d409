package ports

import (
	"context"
	"time"
)

// SessionRegistry maps a user id to its current valid refresh token.
// A refresh token is honored only while it byte-matches the stored
// value, which makes self-contained signed tokens revocable server-side:
// logout deletes the entry, superseding logins overwrite it.
type SessionRegistry interface {
	StoreRefreshToken(ctx context.Context, userID, token string, ttl time.Duration) error
	// RefreshToken returns the stored token, or "" when no entry exists.
	RefreshToken(ctx context.Context, userID string) (string, error)
	DeleteRefreshToken(ctx context.Context, userID string) error
}
