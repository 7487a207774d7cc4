package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yamdb/review-api/internal/core/domain"
	"github.com/yamdb/review-api/internal/core/ports"
)

const confirmationSubject = "Your confirmation code"

// AuthService implements signup, confirmation-code exchange and token refresh.
type AuthService struct {
	users    ports.UserRepository
	codes    ports.ConfirmationCodes
	tokens   ports.TokenIssuer
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	codes ports.ConfirmationCodes,
	tokens ports.TokenIssuer,
	notifier ports.Notifier,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{users: users, codes: codes, tokens: tokens, notifier: notifier, log: log}
}

// Signup registers (username, email) or reuses the matching existing account,
// then mails a fresh confirmation code. Repeating a signup with the same pair
// is allowed and simply re-sends a code.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	if err := domain.ValidateUsername(in.Username); err != nil {
		return nil, err
	}
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, domain.NewValidationError("email", "is required")
	}

	user, err := s.users.GetByUsername(ctx, in.Username)
	switch {
	case err == nil:
		if user.Email != email {
			return nil, domain.ErrUsernameTaken
		}
	case errors.Is(err, domain.ErrNotFound):
		user = &domain.User{
			Username:  in.Username,
			Email:     email,
			Role:      domain.RoleUser,
			CreatedAt: time.Now().UTC(),
		}
		if err := user.ValidateProfile(); err != nil {
			return nil, err
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
		s.log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user signed up")
	default:
		return nil, fmt.Errorf("signup: %w", err)
	}

	code, err := s.codes.Issue(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("signup: issue code: %w", err)
	}

	msg := ports.Message{
		To:      user.Email,
		Subject: confirmationSubject,
		Body:    fmt.Sprintf("Hello %s, your confirmation code is %s", user.Username, code),
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		s.log.Error().Err(err).Str("username", user.Username).Msg("confirmation code delivery failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamDelivery, err)
	}
	return user, nil
}

// Token redeems a confirmation code and returns an access/refresh pair.
func (s *AuthService) Token(ctx context.Context, in ports.TokenInput) (*ports.TokenPair, error) {
	if in.Username == "" {
		return nil, domain.NewValidationError("username", "is required")
	}
	if in.ConfirmationCode == "" {
		return nil, domain.NewValidationError("confirmation_code", "is required")
	}

	user, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if err := s.codes.Redeem(ctx, user.ID, in.ConfirmationCode); err != nil {
		return nil, err
	}

	if !user.Confirmed {
		user.Confirmed = true
		if err := s.users.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("token: confirm user: %w", err)
		}
	}
	return s.issue(user)
}

// Refresh exchanges a valid refresh token for a new pair. The role in the new
// pair is read from storage, not from the old token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	claims, err := s.tokens.Parse(refreshToken, ports.TokenRefresh)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredential
	}
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Authenticate resolves an access token to the stored user.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := s.tokens.Parse(accessToken, ports.TokenAccess)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredential
	}
	return user, err
}

func (s *AuthService) issue(user *domain.User) (*ports.TokenPair, error) {
	pair, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &pair, nil
}
