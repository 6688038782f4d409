package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRegistry stores each user's current refresh token in Redis.
// Key format: refresh_token:<user_id>, value is the raw signed token.
// One key per user gives single-active-refresh-token semantics: a new
// login overwrites the previous session, logout deletes it.
type SessionRegistry struct {
	client *redis.Client
}

func NewSessionRegistry(client *redis.Client) *SessionRegistry {
	return &SessionRegistry{client: client}
}

func (s *SessionRegistry) StoreRefreshToken(ctx context.Context, userID, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(userID), token, ttl).Err(); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

// RefreshToken returns the stored token, or "" when no entry exists.
func (s *SessionRegistry) RefreshToken(ctx context.Context, userID string) (string, error) {
	token, err := s.client.Get(ctx, s.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("read refresh token: %w", err)
	}
	return token, nil
}

func (s *SessionRegistry) DeleteRefreshToken(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

func (s *SessionRegistry) key(userID string) string {
	return "refresh_token:" + userID
}
