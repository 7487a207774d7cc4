package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/yamdb/review-api/internal/core/domain"
	"github.com/yamdb/review-api/internal/core/ports"
)

type ReviewService struct {
	titles  ports.TitleRepository
	reviews ports.ReviewRepository
	audit   ports.AuditLog
	log     zerolog.Logger
}

func NewReviewService(
	titles ports.TitleRepository,
	reviews ports.ReviewRepository,
	audit ports.AuditLog,
	log zerolog.Logger,
) *ReviewService {
	return &ReviewService{titles: titles, reviews: reviews, audit: audit, log: log}
}

// Create stores actor's review of a title. Uniqueness per (title, author) is
// left to the repository, which reports domain.ErrDuplicateReview.
func (s *ReviewService) Create(ctx context.Context, actor *domain.User, in ports.CreateReviewInput) (*domain.Review, error) {
	if err := domain.Authorize(actor, domain.ActionCreate, domain.Resource{Kind: domain.ResourceReview}); err != nil {
		return nil, err
	}
	if _, err := s.titles.Get(ctx, in.TitleID); err != nil {
		return nil, err
	}
	if err := domain.ValidateScore(in.Score); err != nil {
		return nil, err
	}
	if err := domain.ValidateText(in.Text); err != nil {
		return nil, err
	}

	review := &domain.Review{
		TitleID: in.TitleID,
		Entry: domain.Entry{
			AuthorID: actor.ID,
			Author:   actor.Username,
			Text:     in.Text,
			PubDate:  time.Now().UTC(),
		},
		Score: in.Score,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("title_id", in.TitleID).
		Int64("review_id", review.ID).
		Str("author", actor.Username).
		Msg("review created")
	return review, nil
}

func (s *ReviewService) Get(ctx context.Context, titleID, reviewID int64) (*domain.Review, error) {
	return s.reviews.Get(ctx, titleID, reviewID)
}

func (s *ReviewService) List(ctx context.Context, titleID int64, page ports.Page) (*ports.ListResult[*domain.Review], error) {
	if _, err := s.titles.Get(ctx, titleID); err != nil {
		return nil, err
	}
	page = page.Normalize()
	items, total, err := s.reviews.ListByTitle(ctx, titleID, page)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return listResult(items, total, page), nil
}

// Update changes only text and score. The author binding and title never move.
func (s *ReviewService) Update(
	ctx context.Context,
	actor *domain.User,
	titleID, reviewID int64,
	in ports.UpdateReviewInput,
) (*domain.Review, error) {
	review, err := s.reviews.Get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	res := domain.Resource{Kind: domain.ResourceReview, OwnerID: review.AuthorID}
	if err := domain.Authorize(actor, domain.ActionUpdate, res); err != nil {
		return nil, err
	}

	if in.Score != nil {
		if err := domain.ValidateScore(*in.Score); err != nil {
			return nil, err
		}
		review.Score = *in.Score
	}
	if in.Text != nil {
		if err := domain.ValidateText(*in.Text); err != nil {
			return nil, err
		}
		review.Text = *in.Text
	}

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	recordModeration(ctx, s.audit, s.log, actor, domain.ActionUpdate, res, review.ID)
	return review, nil
}

// Delete removes the review and, through storage cascades, its comments.
func (s *ReviewService) Delete(ctx context.Context, actor *domain.User, titleID, reviewID int64) error {
	review, err := s.reviews.Get(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	res := domain.Resource{Kind: domain.ResourceReview, OwnerID: review.AuthorID}
	if err := domain.Authorize(actor, domain.ActionDelete, res); err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, titleID, reviewID); err != nil {
		return err
	}

	recordModeration(ctx, s.audit, s.log, actor, domain.ActionDelete, res, review.ID)
	s.log.Info().Int64("review_id", reviewID).Int64("actor_id", actor.ID).Msg("review deleted")
	return nil
}

// Rating is the live aggregate over the title's current reviews.
func (s *ReviewService) Rating(ctx context.Context, titleID int64) (*int, error) {
	if _, err := s.titles.Get(ctx, titleID); err != nil {
		return nil, err
	}
	return s.reviews.Rating(ctx, titleID)
}
