package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yamdb/review-api/internal/core/domain"
	"github.com/yamdb/review-api/internal/core/ports"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ports.ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts unconditionally; the unique_title_author index decides
// whether the author already reviewed the title.
func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	row := reviewRow{
		TitleID:  rv.TitleID,
		AuthorID: rv.AuthorID,
		Text:     rv.Text,
		Score:    rv.Score,
		PubDate:  rv.PubDate,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return translate(err, nil)
	}
	rv.ID = row.ID
	return nil
}

func (r *ReviewRepository) Get(ctx context.Context, titleID, reviewID int64) (*domain.Review, error) {
	var row reviewRow
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ? AND title_id = ?", reviewID, titleID).
		First(&row).Error
	if err != nil {
		return nil, translate(err, domain.ErrReviewNotFound)
	}
	return row.toDomain(), nil
}

func (r *ReviewRepository) ListByTitle(ctx context.Context, titleID int64, page ports.Page) ([]*domain.Review, int64, error) {
	q := r.db.WithContext(ctx).Model(&reviewRow{}).Where("title_id = ?", titleID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []reviewRow
	if err := q.Preload("Author").Order("id").Limit(page.Limit).Offset(page.Offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]*domain.Review, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, total, nil
}

func (r *ReviewRepository) Update(ctx context.Context, rv *domain.Review) error {
	res := r.db.WithContext(ctx).
		Model(&reviewRow{ID: rv.ID}).
		Select("text", "score").
		Updates(&reviewRow{Text: rv.Text, Score: rv.Score})
	if res.Error != nil {
		return translate(res.Error, nil)
	}
	if res.RowsAffected == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, titleID, reviewID int64) error {
	res := r.db.WithContext(ctx).Where("id = ? AND title_id = ?", reviewID, titleID).Delete(&reviewRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepository) Rating(ctx context.Context, titleID int64) (*int, error) {
	var rating *int
	err := r.db.WithContext(ctx).
		Model(&reviewRow{}).
		Select("ROUND(AVG(score))::int").
		Where("title_id = ?", titleID).
		Row().
		Scan(&rating)
	if err != nil {
		return nil, err
	}
	return rating, nil
}
