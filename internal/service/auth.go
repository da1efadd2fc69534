package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hongminglow/userhub-be/internal/auth"
	"github.com/hongminglow/userhub-be/internal/models"
	"github.com/hongminglow/userhub-be/internal/models/dto"
	"github.com/hongminglow/userhub-be/internal/storage"
)

// AuthService verifies credentials, mints bearer tokens, and resolves them
// back into user records on every authenticated request.
type AuthService struct {
	store  storage.UserStore
	tokens *auth.TokenManager
	log    *zap.Logger
}

// NewAuthService constructs the service.
func NewAuthService(store storage.UserStore, tokens *auth.TokenManager, log *zap.Logger) *AuthService {
	return &AuthService{store: store, tokens: tokens, log: log}
}

// Authenticate verifies an email/password pair. Unknown email and wrong
// password produce the same ErrInvalidCredentials; disabled accounts are
// rejected with ErrInactiveUser and never receive a token.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("login failed: unknown email", zap.String("email", email))
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		s.log.Warn("login failed: password mismatch", zap.String("email", email))
		return models.User{}, ErrInvalidCredentials
	}

	if user.Disabled {
		s.log.Warn("login rejected: account disabled", zap.String("email", email))
		return models.User{}, ErrInactiveUser
	}

	s.log.Info("successful authentication", zap.String("email", email))
	return user, nil
}

// IssueSession mints a bearer token for the user with the configured lifetime.
func (s *AuthService) IssueSession(user models.User) (dto.TokenResponse, error) {
	token, err := s.tokens.Generate(user.Email)
	if err != nil {
		return dto.TokenResponse{}, fmt.Errorf("sign token: %w", err)
	}
	return dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(s.tokens.TTL().Seconds()),
	}, nil
}

// ResolveCurrentUser validates a bearer token and re-resolves its subject.
// The user may have been deleted or disabled since the token was issued, so
// both conditions are re-checked here.
func (s *AuthService) ResolveCurrentUser(ctx context.Context, token string) (models.User, error) {
	subject, err := s.tokens.Parse(token)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	user, err := s.store.FindByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("find user: %w", err)
	}

	if user.Disabled {
		return models.User{}, ErrInactiveUser
	}

	return user, nil
}
