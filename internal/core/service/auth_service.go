package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopstack/storefront-api/internal/core/domain"
	"github.com/shopstack/storefront-api/internal/core/ports"
)

// AuthService implements the session and credential lifecycle: signup,
// login, logout, and access-token refresh against the session registry.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionRegistry
	tokens   ports.TokenService
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionRegistry, tokens ports.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, tokens: tokens, log: log}
}

func (s *AuthService) SignUp(ctx context.Context, email, name, password string) (*ports.AuthResult, error) {
	if email == "" || name == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
		CartItems:    []domain.CartLine{},
		CreatedAt:    time.Now().UTC(),
	}

	// Duplicate emails surface as domain.ErrUserExists via the unique
	// index on the users collection.
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	tokens, err := s.startSession(ctx, created.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user signed up")
	return &ports.AuthResult{User: created, Tokens: tokens}, nil
}

func (s *AuthService) LogIn(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	tokens, err := s.startSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return &ports.AuthResult{User: user, Tokens: tokens}, nil
}

// LogOut revokes the server-side session for the user embedded in the
// refresh token. An undecodable token is ignored: cookie clearing is
// the caller's responsibility and always happens.
func (s *AuthService) LogOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	userID, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		s.log.Debug().Err(err).Msg("logout with undecodable refresh token")
		return nil
	}

	if err := s.sessions.DeleteRefreshToken(ctx, userID); err != nil {
		return err
	}

	s.log.Info().Str("user_id", userID).Msg("session revoked")
	return nil
}

// Refresh issues a new access token when the presented refresh token is
// cryptographically valid AND byte-matches the registry entry for its
// user. The equality check is what makes a stolen-but-superseded token
// useless even before its own expiry.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", domain.ErrNoRefreshToken
	}

	userID, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	stored, err := s.sessions.RefreshToken(ctx, userID)
	if err != nil {
		return "", err
	}
	if stored == "" || stored != refreshToken {
		return "", domain.ErrInvalidRefreshToken
	}

	return s.tokens.IssueAccessToken(userID)
}

func (s *AuthService) startSession(ctx context.Context, userID string) (*ports.TokenPair, error) {
	tokens, err := s.tokens.IssuePair(userID)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.StoreRefreshToken(ctx, userID, tokens.RefreshToken, s.tokens.RefreshTokenTTL()); err != nil {
		return nil, err
	}
	return tokens, nil
}
