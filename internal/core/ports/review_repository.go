package ports

import (
	"context"

	"github.com/yamdb/review-api/internal/core/domain"
)

// ReviewRepository persists reviews. Lookups are scoped to a title so a review
// addressed through the wrong title is not found.
type ReviewRepository interface {
	// Create inserts r and sets ID. A second review by the same author for the
	// same title is rejected by the storage constraint and returned as
	// domain.ErrDuplicateReview.
	Create(ctx context.Context, r *domain.Review) error
	Get(ctx context.Context, titleID, reviewID int64) (*domain.Review, error)
	// ListByTitle returns reviews in insertion order.
	ListByTitle(ctx context.Context, titleID int64, page Page) ([]*domain.Review, int64, error)
	Update(ctx context.Context, r *domain.Review) error
	// Delete removes the review and its comments.
	Delete(ctx context.Context, titleID, reviewID int64) error
	// Rating returns round(mean(score)) over the title's reviews, nil if none.
	Rating(ctx context.Context, titleID int64) (*int, error)
}

// CommentRepository persists comments scoped to a review.
type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) error
	Get(ctx context.Context, reviewID, commentID int64) (*domain.Comment, error)
	// ListByReview returns comments newest first, ties broken by id descending.
	ListByReview(ctx context.Context, reviewID int64, page Page) ([]*domain.Comment, int64, error)
	Update(ctx context.Context, c *domain.Comment) error
	Delete(ctx context.Context, reviewID, commentID int64) error
}
