package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/yamdb/review-api/internal/core/domain"
	"github.com/yamdb/review-api/internal/core/ports"
)

type CommentService struct {
	reviews  ports.ReviewRepository
	comments ports.CommentRepository
	audit    ports.AuditLog
	log      zerolog.Logger
}

func NewCommentService(
	reviews ports.ReviewRepository,
	comments ports.CommentRepository,
	audit ports.AuditLog,
	log zerolog.Logger,
) *CommentService {
	return &CommentService{reviews: reviews, comments: comments, audit: audit, log: log}
}

func (s *CommentService) Create(ctx context.Context, actor *domain.User, in ports.CreateCommentInput) (*domain.Comment, error) {
	if err := domain.Authorize(actor, domain.ActionCreate, domain.Resource{Kind: domain.ResourceComment}); err != nil {
		return nil, err
	}
	if _, err := s.reviews.Get(ctx, in.TitleID, in.ReviewID); err != nil {
		return nil, err
	}
	if err := domain.ValidateText(in.Text); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ReviewID: in.ReviewID,
		Entry: domain.Entry{
			AuthorID: actor.ID,
			Author:   actor.Username,
			Text:     in.Text,
			PubDate:  time.Now().UTC(),
		},
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.log.Debug().Int64("review_id", in.ReviewID).Int64("comment_id", comment.ID).Msg("comment created")
	return comment, nil
}

func (s *CommentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*domain.Comment, error) {
	if _, err := s.reviews.Get(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return s.comments.Get(ctx, reviewID, commentID)
}

// List returns the review's comments, newest first.
func (s *CommentService) List(ctx context.Context, titleID, reviewID int64, page ports.Page) (*ports.ListResult[*domain.Comment], error) {
	if _, err := s.reviews.Get(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	page = page.Normalize()
	items, total, err := s.comments.ListByReview(ctx, reviewID, page)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return listResult(items, total, page), nil
}

func (s *CommentService) Update(
	ctx context.Context,
	actor *domain.User,
	titleID, reviewID, commentID int64,
	in ports.UpdateCommentInput,
) (*domain.Comment, error) {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	res := domain.Resource{Kind: domain.ResourceComment, OwnerID: comment.AuthorID}
	if err := domain.Authorize(actor, domain.ActionUpdate, res); err != nil {
		return nil, err
	}
	if in.Text != nil {
		if err := domain.ValidateText(*in.Text); err != nil {
			return nil, err
		}
		comment.Text = *in.Text
	}
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	recordModeration(ctx, s.audit, s.log, actor, domain.ActionUpdate, res, comment.ID)
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, actor *domain.User, titleID, reviewID, commentID int64) error {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	res := domain.Resource{Kind: domain.ResourceComment, OwnerID: comment.AuthorID}
	if err := domain.Authorize(actor, domain.ActionDelete, res); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, reviewID, commentID); err != nil {
		return err
	}
	recordModeration(ctx, s.audit, s.log, actor, domain.ActionDelete, res, comment.ID)
	return nil
}
