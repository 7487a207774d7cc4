package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yamdb/review-api/internal/core/domain"
	"github.com/yamdb/review-api/internal/core/ports"
)

type stubCatalogService struct {
	ports.CatalogService
	listTitlesFn  func(ctx context.Context, f ports.TitleFilter) (*ports.ListResult[*domain.Title], error)
	createTitleFn func(ctx context.Context, actor *domain.User, in ports.TitleInput) (*domain.Title, error)
	updateTitleFn func(ctx context.Context, actor *domain.User, id int64, p ports.TitlePatch) (*domain.Title, error)
}

func (s *stubCatalogService) ListTitles(ctx context.Context, f ports.TitleFilter) (*ports.ListResult[*domain.Title], error) {
	return s.listTitlesFn(ctx, f)
}

func (s *stubCatalogService) CreateTitle(ctx context.Context, actor *domain.User, in ports.TitleInput) (*domain.Title, error) {
	return s.createTitleFn(ctx, actor, in)
}

func (s *stubCatalogService) UpdateTitle(ctx context.Context, actor *domain.User, id int64, p ports.TitlePatch) (*domain.Title, error) {
	return s.updateTitleFn(ctx, actor, id, p)
}

func TestCatalogHandler_ListTitles_Filters(t *testing.T) {
	var got ports.TitleFilter
	stub := &stubCatalogService{
		listTitlesFn: func(_ context.Context, f ports.TitleFilter) (*ports.ListResult[*domain.Title], error) {
			got = f
			return &ports.ListResult[*domain.Title]{Items: []*domain.Title{}, Page: f.Page}, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/api/v1/titles?genre=sci-fi&category=books&name=dune&year=1965", "", nil)

	if err := NewCatalogHandler(stub).ListTitles(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	want := ports.TitleFilter{
		Genre:    "sci-fi",
		Category: "books",
		Name:     "dune",
		Year:     1965,
		Page:     ports.Page{Limit: ports.DefaultPageLimit},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("filter mismatch (-want +got):\n%s", diff)
	}
	if rec.Body.String() == "" || rec.Code != http.StatusOK {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}
}

func TestCatalogHandler_ListTitles_BadYear(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/api/v1/titles?year=nineteen", "", nil)
	err := NewCatalogHandler(&stubCatalogService{}).ListTitles(c)
	if err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestCatalogHandler_CreateTitle(t *testing.T) {
	rating := 8
	stub := &stubCatalogService{
		createTitleFn: func(_ context.Context, _ *domain.User, in ports.TitleInput) (*domain.Title, error) {
			want := ports.TitleInput{Name: "Dune", Year: 1965, Category: "books", Genres: []string{"sci-fi"}}
			if diff := cmp.Diff(want, in); diff != "" {
				t.Fatalf("input mismatch (-want +got):\n%s", diff)
			}
			return &domain.Title{
				ID:       1,
				Name:     in.Name,
				Year:     in.Year,
				Category: domain.Category{Name: "Books", Slug: "books"},
				Genres:   []domain.Genre{{Name: "Sci-Fi", Slug: "sci-fi"}},
				Rating:   &rating,
			}, nil
		},
	}
	admin := &domain.User{ID: 1, Role: domain.RoleAdmin}
	c, rec := newContext(http.MethodPost, "/api/v1/titles", `{"name":"Dune","year":1965,"category":"books","genre":["sci-fi"]}`, admin)

	if err := NewCatalogHandler(stub).CreateTitle(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp titleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	want := titleResponse{
		ID:       1,
		Name:     "Dune",
		Year:     1965,
		Rating:   &rating,
		Genre:    []slugResponse{{Name: "Sci-Fi", Slug: "sci-fi"}},
		Category: slugResponse{Name: "Books", Slug: "books"},
	}
	if diff := cmp.Diff(want, resp); diff != "" {
		t.Fatalf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalogHandler_UpdateTitle_Partial(t *testing.T) {
	stub := &stubCatalogService{
		updateTitleFn: func(_ context.Context, _ *domain.User, id int64, p ports.TitlePatch) (*domain.Title, error) {
			if id != 4 {
				t.Fatalf("unexpected id %d", id)
			}
			if p.Name != nil || p.Year == nil || *p.Year != 2001 || p.Genres != nil {
				t.Fatalf("unexpected patch %+v", p)
			}
			return &domain.Title{ID: id, Year: *p.Year}, nil
		},
	}
	c, rec := newContext(http.MethodPatch, "/api/v1/titles/4", `{"year":2001}`, &domain.User{Role: domain.RoleAdmin}, "title_id", "4")

	if err := NewCatalogHandler(stub).UpdateTitle(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
