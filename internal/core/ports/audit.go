package ports

import (
	"context"

	"github.com/yamdb/review-api/internal/core/domain"
)

// AuditLog stores moderation events.
type AuditLog interface {
	Record(ctx context.Context, ev domain.ModerationEvent) error
}

// Dataset is a full catalog dump in dependency order. Titles carry only the
// IDs of their category and genres.
type Dataset struct {
	Users      []domain.User
	Categories []domain.Category
	Genres     []domain.Genre
	Titles     []domain.Title
	Reviews    []domain.Review
	Comments   []domain.Comment
}

// Seeder bulk-inserts a Dataset into an empty store.
type Seeder interface {
	HasTitles(ctx context.Context) (bool, error)
	// Seed inserts everything in one transaction, preserving IDs.
	Seed(ctx context.Context, ds *Dataset) error
}

// AuditReader lists the moderation history of one resource, newest first.
type AuditReader interface {
	ListByResource(ctx context.Context, kind domain.ResourceKind, id int64) ([]domain.ModerationEvent, error)
}
