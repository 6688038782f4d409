package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shopstack/storefront-api/internal/core/domain"
	"github.com/shopstack/storefront-api/internal/core/ports"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// TokenService issues and verifies HS256-signed access and refresh
// tokens. The two token kinds are signed with independent secrets, so a
// refresh token can never pass as an access token or vice versa.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (s *TokenService) IssuePair(userID string) (*ports.TokenPair, error) {
	access, err := s.IssueAccessToken(userID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(userID, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *TokenService) IssueAccessToken(userID string) (string, error) {
	return s.sign(userID, s.accessSecret, s.accessTTL)
}

// VerifyAccessToken returns the embedded user id. Expiry is reported as
// domain.ErrTokenExpired so the transport layer can tell clients to
// attempt a refresh rather than a full re-login.
func (s *TokenService) VerifyAccessToken(token string) (string, error) {
	userID, err := s.verify(token, s.accessSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrInvalidToken
	}
	return userID, nil
}

func (s *TokenService) VerifyRefreshToken(token string) (string, error) {
	userID, err := s.verify(token, s.refreshSecret)
	if err != nil {
		return "", domain.ErrInvalidRefreshToken
	}
	return userID, nil
}

func (s *TokenService) AccessTokenTTL() time.Duration { return s.accessTTL }

func (s *TokenService) RefreshTokenTTL() time.Duration { return s.refreshTTL }

func (s *TokenService) sign(userID string, secret []byte, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"exp":    time.Now().Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func (s *TokenService) verify(token string, secret []byte) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	if !tkn.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}
	userID, _ := claims["userId"].(string)
	if userID == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return userID, nil
}
