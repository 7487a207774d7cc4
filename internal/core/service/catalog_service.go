package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yamdb/review-api/internal/core/domain"
	"github.com/yamdb/review-api/internal/core/ports"
)

// CatalogService manages categories, genres and titles. Reads are public,
// writes are admin-only.
type CatalogService struct {
	categories ports.CategoryRepository
	genres     ports.GenreRepository
	titles     ports.TitleRepository
	log        zerolog.Logger
	now        func() time.Time
}

func NewCatalogService(
	categories ports.CategoryRepository,
	genres ports.GenreRepository,
	titles ports.TitleRepository,
	log zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		categories: categories,
		genres:     genres,
		titles:     titles,
		log:        log,
		now:        time.Now,
	}
}

func (s *CatalogService) ListCategories(ctx context.Context, search string, page ports.Page) (*ports.ListResult[domain.Category], error) {
	page = page.Normalize()
	items, total, err := s.categories.List(ctx, strings.TrimSpace(search), page)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return listResult(items, total, page), nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, actor *domain.User, in ports.SlugInput) (*domain.Category, error) {
	if err := domain.Authorize(actor, domain.ActionCreate, domain.Resource{Kind: domain.ResourceCategory}); err != nil {
		return nil, err
	}
	if err := domain.ValidateSlugName(in.Name, in.Slug); err != nil {
		return nil, err
	}
	c := &domain.Category{Name: in.Name, Slug: in.Slug}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	s.log.Info().Str("slug", c.Slug).Msg("category created")
	return c, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, actor *domain.User, slug string) error {
	if err := domain.Authorize(actor, domain.ActionDelete, domain.Resource{Kind: domain.ResourceCategory}); err != nil {
		return err
	}
	return s.categories.DeleteBySlug(ctx, slug)
}

func (s *CatalogService) ListGenres(ctx context.Context, search string, page ports.Page) (*ports.ListResult[domain.Genre], error) {
	page = page.Normalize()
	items, total, err := s.genres.List(ctx, strings.TrimSpace(search), page)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	return listResult(items, total, page), nil
}

func (s *CatalogService) CreateGenre(ctx context.Context, actor *domain.User, in ports.SlugInput) (*domain.Genre, error) {
	if err := domain.Authorize(actor, domain.ActionCreate, domain.Resource{Kind: domain.ResourceGenre}); err != nil {
		return nil, err
	}
	if err := domain.ValidateSlugName(in.Name, in.Slug); err != nil {
		return nil, err
	}
	g := &domain.Genre{Name: in.Name, Slug: in.Slug}
	if err := s.genres.Create(ctx, g); err != nil {
		return nil, err
	}
	s.log.Info().Str("slug", g.Slug).Msg("genre created")
	return g, nil
}

func (s *CatalogService) DeleteGenre(ctx context.Context, actor *domain.User, slug string) error {
	if err := domain.Authorize(actor, domain.ActionDelete, domain.Resource{Kind: domain.ResourceGenre}); err != nil {
		return err
	}
	return s.genres.DeleteBySlug(ctx, slug)
}

func (s *CatalogService) ListTitles(ctx context.Context, f ports.TitleFilter) (*ports.ListResult[*domain.Title], error) {
	f.Page = f.Page.Normalize()
	f.Name = strings.TrimSpace(f.Name)
	items, total, err := s.titles.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}
	return listResult(items, total, f.Page), nil
}

func (s *CatalogService) GetTitle(ctx context.Context, id int64) (*domain.Title, error) {
	return s.titles.Get(ctx, id)
}

func (s *CatalogService) CreateTitle(ctx context.Context, actor *domain.User, in ports.TitleInput) (*domain.Title, error) {
	if err := domain.Authorize(actor, domain.ActionCreate, domain.Resource{Kind: domain.ResourceTitle}); err != nil {
		return nil, err
	}
	if err := domain.ValidateTitleName(in.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidateYear(in.Year, s.now()); err != nil {
		return nil, err
	}
	category, err := s.resolveCategory(ctx, in.Category)
	if err != nil {
		return nil, err
	}
	genres, err := s.resolveGenres(ctx, in.Genres)
	if err != nil {
		return nil, err
	}

	t := &domain.Title{
		Name:        in.Name,
		Year:        in.Year,
		Description: in.Description,
		Category:    *category,
		Genres:      genres,
	}
	if err := s.titles.Create(ctx, t); err != nil {
		return nil, err
	}
	s.log.Info().Int64("title_id", t.ID).Str("name", t.Name).Msg("title created")
	return t, nil
}

// UpdateTitle applies a partial update. A non-nil Genres replaces the whole set.
func (s *CatalogService) UpdateTitle(ctx context.Context, actor *domain.User, id int64, p ports.TitlePatch) (*domain.Title, error) {
	if err := domain.Authorize(actor, domain.ActionUpdate, domain.Resource{Kind: domain.ResourceTitle}); err != nil {
		return nil, err
	}
	t, err := s.titles.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Name != nil {
		if err := domain.ValidateTitleName(*p.Name); err != nil {
			return nil, err
		}
		t.Name = *p.Name
	}
	if p.Year != nil {
		if err := domain.ValidateYear(*p.Year, s.now()); err != nil {
			return nil, err
		}
		t.Year = *p.Year
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		category, err := s.resolveCategory(ctx, *p.Category)
		if err != nil {
			return nil, err
		}
		t.Category = *category
	}
	if p.Genres != nil {
		genres, err := s.resolveGenres(ctx, *p.Genres)
		if err != nil {
			return nil, err
		}
		t.Genres = genres
	}

	if err := s.titles.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *CatalogService) DeleteTitle(ctx context.Context, actor *domain.User, id int64) error {
	if err := domain.Authorize(actor, domain.ActionDelete, domain.Resource{Kind: domain.ResourceTitle}); err != nil {
		return err
	}
	if err := s.titles.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("title_id", id).Msg("title deleted")
	return nil
}

// resolveCategory maps a slug to a category. An unknown slug is a validation
// error on the request, not a missing resource.
func (s *CatalogService) resolveCategory(ctx context.Context, slug string) (*domain.Category, error) {
	if slug == "" {
		return nil, domain.NewValidationError("category", "is required")
	}
	c, err := s.categories.GetBySlug(ctx, slug)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewValidationError("category", "unknown slug %q", slug)
	}
	return c, err
}

func (s *CatalogService) resolveGenres(ctx context.Context, slugs []string) ([]domain.Genre, error) {
	if len(slugs) == 0 {
		return []domain.Genre{}, nil
	}
	genres, err := s.genres.GetBySlugs(ctx, dedupe(slugs))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewValidationError("genre", "unknown slug in %v", slugs)
	}
	return genres, err
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
