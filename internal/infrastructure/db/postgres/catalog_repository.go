package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yamdb/review-api/internal/core/domain"
	"github.com/yamdb/review-api/internal/core/ports"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) ports.CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	row := categoryRow{Name: c.Name, Slug: c.Slug}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return translate(err, nil)
	}
	c.ID = row.ID
	return nil
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var row categoryRow
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&row).Error; err != nil {
		return nil, translate(err, domain.ErrCategoryNotFound)
	}
	c := row.toDomain()
	return &c, nil
}

func (r *CategoryRepository) List(ctx context.Context, search string, page ports.Page) ([]domain.Category, int64, error) {
	var rows []categoryRow
	total, err := listByName(ctx, r.db, &categoryRow{}, &rows, search, page)
	if err != nil {
		return nil, 0, err
	}
	out := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, total, nil
}

// DeleteBySlug is refused by the RESTRICT foreign key while titles use the category.
func (r *CategoryRepository) DeleteBySlug(ctx context.Context, slug string) error {
	res := r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&categoryRow{})
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return domain.ErrCategoryInUse
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

type GenreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) ports.GenreRepository {
	return &GenreRepository{db: db}
}

func (r *GenreRepository) Create(ctx context.Context, g *domain.Genre) error {
	row := genreRow{Name: g.Name, Slug: g.Slug}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return translate(err, nil)
	}
	g.ID = row.ID
	return nil
}

func (r *GenreRepository) GetBySlug(ctx context.Context, slug string) (*domain.Genre, error) {
	var row genreRow
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&row).Error; err != nil {
		return nil, translate(err, domain.ErrGenreNotFound)
	}
	g := row.toDomain()
	return &g, nil
}

// GetBySlugs returns the genres in the order the slugs were given.
func (r *GenreRepository) GetBySlugs(ctx context.Context, slugs []string) ([]domain.Genre, error) {
	if len(slugs) == 0 {
		return []domain.Genre{}, nil
	}
	var rows []genreRow
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&rows).Error; err != nil {
		return nil, err
	}
	bySlug := make(map[string]genreRow, len(rows))
	for _, row := range rows {
		bySlug[row.Slug] = row
	}
	out := make([]domain.Genre, 0, len(slugs))
	for _, s := range slugs {
		row, ok := bySlug[s]
		if !ok {
			return nil, fmt.Errorf("%q: %w", s, domain.ErrGenreNotFound)
		}
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *GenreRepository) List(ctx context.Context, search string, page ports.Page) ([]domain.Genre, int64, error) {
	var rows []genreRow
	total, err := listByName(ctx, r.db, &genreRow{}, &rows, search, page)
	if err != nil {
		return nil, 0, err
	}
	out := make([]domain.Genre, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, total, nil
}

// DeleteBySlug drops the genre; genre_titles rows go with it by cascade.
func (r *GenreRepository) DeleteBySlug(ctx context.Context, slug string) error {
	res := r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&genreRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrGenreNotFound
	}
	return nil
}

// listByName pages a name-searchable table ordered by name.
func listByName(ctx context.Context, db *gorm.DB, model, dest any, search string, page ports.Page) (int64, error) {
	q := db.WithContext(ctx).Model(model)
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+escapeLike(search)+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	if err := q.Order("name").Order("id").Limit(page.Limit).Offset(page.Offset).Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}
