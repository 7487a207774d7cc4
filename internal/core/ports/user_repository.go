package ports

import (
	"context"

	"github.com/yamdb/review-api/internal/core/domain"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	// Create inserts u and sets its ID. Unique violations are returned as
	// domain.ErrUsernameTaken or domain.ErrEmailTaken.
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// List returns a page of users ordered by id. search matches usernames
	// containing it, case-insensitively.
	List(ctx context.Context, search string, page Page) ([]*domain.User, int64, error)
	Update(ctx context.Context, u *domain.User) error
	// Delete removes the user together with their reviews and comments.
	Delete(ctx context.Context, id int64) error
}
