package credential

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yamdb/review-api/internal/core/domain"
	"github.com/yamdb/review-api/internal/core/ports"
)

const issuer = "yamdb"

// claims is the JWT body. Subject carries the username, UserID the primary key.
type claims struct {
	UserID int64           `json:"uid"`
	Role   string          `json:"role"`
	Type   ports.TokenType `json:"typ"`
	jwt.RegisteredClaims
}

// JWTIssuer signs HS256 access and refresh tokens.
type JWTIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewJWTIssuer(secret string, accessTTL, refreshTTL time.Duration) *JWTIssuer {
	return &JWTIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (j *JWTIssuer) Issue(user *domain.User) (ports.TokenPair, error) {
	now := j.now()
	access, err := j.sign(user, ports.TokenAccess, now, j.accessTTL)
	if err != nil {
		return ports.TokenPair{}, err
	}
	refresh, err := j.sign(user, ports.TokenRefresh, now, j.refreshTTL)
	if err != nil {
		return ports.TokenPair{}, err
	}
	return ports.TokenPair{
		Access:    access,
		Refresh:   refresh,
		ExpiresAt: now.Add(j.accessTTL).UTC(),
	}, nil
}

func (j *JWTIssuer) sign(user *domain.User, typ ports.TokenType, now time.Time, ttl time.Duration) (string, error) {
	c := claims{
		UserID: user.ID,
		Role:   string(user.Role),
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", typ, err)
	}
	return signed, nil
}

func (j *JWTIssuer) Parse(token string, typ ports.TokenType) (*ports.TokenClaims, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil || !parsed.Valid {
		return nil, invalid(err)
	}
	if c.Type != typ {
		return nil, invalid(errors.New("unexpected token type " + strconv.Quote(string(c.Type))))
	}
	return &ports.TokenClaims{
		UserID:   c.UserID,
		Username: c.Subject,
		Role:     domain.Role(c.Role),
		Type:     c.Type,
	}, nil
}

func invalid(cause error) error {
	if cause == nil {
		return domain.ErrInvalidCredential
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidCredential, cause)
}
