package ports

import (
	"context"
	"time"

	"github.com/yamdb/review-api/internal/core/domain"
)

// ConfirmationCodes issues and redeems single-use confirmation codes.
type ConfirmationCodes interface {
	// Issue creates a fresh code for the user, replacing any previous one.
	Issue(ctx context.Context, userID int64) (string, error)
	// Redeem consumes the code. A missing, expired or mismatched code yields
	// domain.ErrInvalidCredential.
	Redeem(ctx context.Context, userID int64, code string) error
}

// TokenType distinguishes access tokens from refresh tokens.
type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)

// TokenPair is the credential returned to a confirmed user.
type TokenPair struct {
	Access    string
	Refresh   string
	ExpiresAt time.Time
}

// TokenClaims is the verified content of a token.
type TokenClaims struct {
	UserID   int64
	Username string
	Role     domain.Role
	Type     TokenType
}

// TokenIssuer signs and verifies bearer tokens.
type TokenIssuer interface {
	Issue(user *domain.User) (TokenPair, error)
	// Parse verifies signature, expiry and type. Any failure is
	// domain.ErrInvalidCredential.
	Parse(token string, typ TokenType) (*TokenClaims, error)
}

// Message is an outbound notification.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Notifier delivers messages to users.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// RateLimiter admits or rejects a call identified by key.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
