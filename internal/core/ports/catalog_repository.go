package ports

import (
	"context"

	"github.com/yamdb/review-api/internal/core/domain"
)

// CategoryRepository persists categories keyed by slug.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) error
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
	List(ctx context.Context, search string, page Page) ([]domain.Category, int64, error)
	// DeleteBySlug fails with domain.ErrCategoryInUse while titles reference it.
	DeleteBySlug(ctx context.Context, slug string) error
}

// GenreRepository persists genres keyed by slug.
type GenreRepository interface {
	Create(ctx context.Context, g *domain.Genre) error
	GetBySlug(ctx context.Context, slug string) (*domain.Genre, error)
	// GetBySlugs resolves every slug or fails with domain.ErrGenreNotFound.
	GetBySlugs(ctx context.Context, slugs []string) ([]domain.Genre, error)
	List(ctx context.Context, search string, page Page) ([]domain.Genre, int64, error)
	// DeleteBySlug removes the genre and its title associations only.
	DeleteBySlug(ctx context.Context, slug string) error
}

// TitleFilter carries the query parameters of the title list.
type TitleFilter struct {
	Genre    string // genre slug, substring
	Category string // category slug, substring
	Name     string // substring, case-insensitive
	Year     int    // 0 = any
	Page     Page
}

// TitleRepository persists titles. Reads populate Category, Genres and the
// live Rating aggregate.
type TitleRepository interface {
	// Create inserts t using t.Category.ID and the IDs of t.Genres.
	Create(ctx context.Context, t *domain.Title) error
	Get(ctx context.Context, id int64) (*domain.Title, error)
	List(ctx context.Context, filter TitleFilter) ([]*domain.Title, int64, error)
	// Update rewrites scalar fields, the category and the genre set.
	Update(ctx context.Context, t *domain.Title) error
	// Delete removes the title, its reviews and their comments.
	Delete(ctx context.Context, id int64) error
}
