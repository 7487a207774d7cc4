package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yamdb/review-api/internal/core/domain"
	"github.com/yamdb/review-api/internal/core/ports"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) ports.CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	row := commentRow{
		ReviewID: c.ReviewID,
		AuthorID: c.AuthorID,
		Text:     c.Text,
		PubDate:  c.PubDate,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return translate(err, nil)
	}
	c.ID = row.ID
	return nil
}

func (r *CommentRepository) Get(ctx context.Context, reviewID, commentID int64) (*domain.Comment, error) {
	var row commentRow
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ? AND review_id = ?", commentID, reviewID).
		First(&row).Error
	if err != nil {
		return nil, translate(err, domain.ErrCommentNotFound)
	}
	return row.toDomain(), nil
}

// ListByReview orders by pub_date DESC with id DESC breaking ties.
func (r *CommentRepository) ListByReview(ctx context.Context, reviewID int64, page ports.Page) ([]*domain.Comment, int64, error) {
	q := r.db.WithContext(ctx).Model(&commentRow{}).Where("review_id = ?", reviewID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []commentRow
	err := q.Preload("Author").
		Order("pub_date DESC").
		Order("id DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	out := make([]*domain.Comment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, total, nil
}

func (r *CommentRepository) Update(ctx context.Context, c *domain.Comment) error {
	res := r.db.WithContext(ctx).
		Model(&commentRow{ID: c.ID}).
		Select("text").
		Updates(&commentRow{Text: c.Text})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, reviewID, commentID int64) error {
	res := r.db.WithContext(ctx).Where("id = ? AND review_id = ?", commentID, reviewID).Delete(&commentRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}
