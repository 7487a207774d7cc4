package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yamdb/review-api/internal/core/domain"
	"github.com/yamdb/review-api/internal/core/ports"
)

// ratingColumn computes the live rating of a title row. It is never stored.
const ratingColumn = "(SELECT ROUND(AVG(reviews.score))::int FROM reviews WHERE reviews.title_id = titles.id) AS rating"

type TitleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) ports.TitleRepository {
	return &TitleRepository{db: db}
}

func (r *TitleRepository) Create(ctx context.Context, t *domain.Title) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := titleRow{
			Name:        t.Name,
			Year:        t.Year,
			Description: t.Description,
			CategoryID:  t.Category.ID,
		}
		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			return translate(err, nil)
		}
		if err := linkGenres(tx, row.ID, t.Genres); err != nil {
			return err
		}
		t.ID = row.ID
		return nil
	})
}

func (r *TitleRepository) Get(ctx context.Context, id int64) (*domain.Title, error) {
	var row titleRow
	err := r.withRelations(ctx).
		Select("titles.*, " + ratingColumn).
		Where("titles.id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, translate(err, domain.ErrTitleNotFound)
	}
	return row.toDomain(), nil
}

func (r *TitleRepository) List(ctx context.Context, f ports.TitleFilter) ([]*domain.Title, int64, error) {
	q := applyTitleFilter(r.db.WithContext(ctx).Model(&titleRow{}), f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []titleRow
	err := applyTitleFilter(r.withRelations(ctx), f).
		Select("titles.*, " + ratingColumn).
		Order("titles.id").
		Limit(f.Page.Limit).
		Offset(f.Page.Offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	titles := make([]*domain.Title, 0, len(rows))
	for _, row := range rows {
		titles = append(titles, row.toDomain())
	}
	return titles, total, nil
}

func (r *TitleRepository) Update(ctx context.Context, t *domain.Title) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&titleRow{ID: t.ID}).
			Select("name", "year", "description", "category_id").
			Updates(&titleRow{
				Name:        t.Name,
				Year:        t.Year,
				Description: t.Description,
				CategoryID:  t.Category.ID,
			})
		if res.Error != nil {
			return translate(res.Error, nil)
		}
		if res.RowsAffected == 0 {
			return domain.ErrTitleNotFound
		}
		if err := tx.Where("title_id = ?", t.ID).Delete(&genreTitleRow{}).Error; err != nil {
			return err
		}
		return linkGenres(tx, t.ID, t.Genres)
	})
}

// Delete removes the title. Reviews, their comments and genre links cascade.
func (r *TitleRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&titleRow{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTitleNotFound
	}
	return nil
}

func (r *TitleRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&titleRow{}).
		Preload("Category").
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("genres.name") })
}

// applyTitleFilter matches genre, category and name as case-insensitive substrings.
func applyTitleFilter(q *gorm.DB, f ports.TitleFilter) *gorm.DB {
	if f.Category != "" {
		q = q.Where("titles.category_id IN (SELECT id FROM categories WHERE slug ILIKE ?)", "%"+escapeLike(f.Category)+"%")
	}
	if f.Genre != "" {
		q = q.Where(`EXISTS (SELECT 1 FROM genre_titles gt JOIN genres g ON g.id = gt.genre_id
			WHERE gt.title_id = titles.id AND g.slug ILIKE ?)`, "%"+escapeLike(f.Genre)+"%")
	}
	if f.Name != "" {
		q = q.Where("titles.name ILIKE ?", "%"+escapeLike(f.Name)+"%")
	}
	if f.Year != 0 {
		q = q.Where("titles.year = ?", f.Year)
	}
	return q
}

func linkGenres(tx *gorm.DB, titleID int64, genres []domain.Genre) error {
	if len(genres) == 0 {
		return nil
	}
	links := make([]genreTitleRow, 0, len(genres))
	for _, g := range genres {
		links = append(links, genreTitleRow{TitleID: titleID, GenreID: g.ID})
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}
