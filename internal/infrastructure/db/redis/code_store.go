package redis

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/yamdb/review-api/internal/core/domain"
)

const (
	codeLength   = 8
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// CodeStore keeps one bcrypt-hashed confirmation code per user.
// Key format: confirm:<user_id>
type CodeStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewCodeStore(client redis.Cmdable, ttl time.Duration) *CodeStore {
	return &CodeStore{client: client, ttl: ttl}
}

// Issue generates a code and overwrites whatever the user had before.
func (s *CodeStore) Issue(ctx context.Context, userID int64) (string, error) {
	code, err := randomCode()
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash code: %w", err)
	}
	if err := s.client.Set(ctx, s.key(userID), hash, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store code: %w", err)
	}
	return code, nil
}

// Redeem checks the code and deletes it on success so it cannot be reused.
func (s *CodeStore) Redeem(ctx context.Context, userID int64, code string) error {
	hash, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.ErrInvalidCredential
	}
	if err != nil {
		return fmt.Errorf("load code: %w", err)
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(code)) != nil {
		return domain.ErrInvalidCredential
	}

	// A concurrent redemption may already have removed the key.
	n, err := s.client.Del(ctx, s.key(userID)).Result()
	if err != nil {
		return fmt.Errorf("consume code: %w", err)
	}
	if n == 0 {
		return domain.ErrInvalidCredential
	}
	return nil
}

func (s *CodeStore) key(userID int64) string {
	return fmt.Sprintf("confirm:%d", userID)
}

func randomCode() (string, error) {
	b := make([]byte, codeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = codeAlphabet[n.Int64()]
	}
	return string(b), nil
}
