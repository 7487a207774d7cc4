package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamdb/review-api/internal/core/domain"
	"github.com/yamdb/review-api/internal/core/ports"
)

func seedGenres(t *testing.T, f *fixture, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		if _, err := f.catalog.CreateGenre(context.Background(), f.admin, ports.SlugInput{Name: s, Slug: s}); err != nil {
			t.Fatalf("create genre %s: %v", s, err)
		}
	}
}

func TestCatalogService_WritesAreAdminOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mod := f.user(t, "mod", domain.RoleModerator)

	_, err := f.catalog.CreateCategory(ctx, mod, ports.SlugInput{Name: "Films", Slug: "films"})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	_, err = f.catalog.CreateGenre(ctx, nil, ports.SlugInput{Name: "Drama", Slug: "drama"})
	assert.ErrorIs(t, err, domain.ErrAuthenticationRequired)

	title := f.title(t, "Stalker", 1979)
	assert.ErrorIs(t, f.catalog.DeleteTitle(ctx, mod, title.ID), domain.ErrPermissionDenied)

	res, err := f.catalog.ListTitles(ctx, ports.TitleFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)
}

func TestCatalogService_CreateTitle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedGenres(t, f, "sci-fi", "drama")
	_, err := f.catalog.CreateCategory(ctx, f.admin, ports.SlugInput{Name: "Books", Slug: "books"})
	require.NoError(t, err)

	title, err := f.catalog.CreateTitle(ctx, f.admin, ports.TitleInput{
		Name:     "Dune",
		Year:     1965,
		Category: "books",
		Genres:   []string{"sci-fi", "drama", "sci-fi"},
	})
	require.NoError(t, err)
	assert.Equal(t, "books", title.Category.Slug)
	assert.Nil(t, title.Rating)

	got := make([]string, 0, len(title.Genres))
	for _, g := range title.Genres {
		got = append(got, g.Slug)
	}
	if diff := cmp.Diff([]string{"sci-fi", "drama"}, got); diff != "" {
		t.Fatalf("genres mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalogService_CreateTitleValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.title(t, "seed", 2000) // creates category "books"

	tests := []struct {
		name  string
		input ports.TitleInput
		field string
	}{
		{"future year", ports.TitleInput{Name: "Later", Year: time.Now().Year() + 1, Category: "books"}, "year"},
		{"unknown category", ports.TitleInput{Name: "X", Year: 2000, Category: "comics"}, "category"},
		{"missing category", ports.TitleInput{Name: "X", Year: 2000}, "category"},
		{"unknown genre", ports.TitleInput{Name: "X", Year: 2000, Category: "books", Genres: []string{"nope"}}, "genre"},
		{"empty name", ports.TitleInput{Name: " ", Year: 2000, Category: "books"}, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.catalog.CreateTitle(ctx, f.admin, tt.input)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestCatalogService_UpdateTitle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedGenres(t, f, "poetry")
	title := f.title(t, "Draft", 1990)

	name := "Final"
	genres := []string{"poetry"}
	got, err := f.catalog.UpdateTitle(ctx, f.admin, title.ID, ports.TitlePatch{Name: &name, Genres: &genres})
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Name)
	assert.Equal(t, 1990, got.Year)
	require.Len(t, got.Genres, 1)

	future := time.Now().Year() + 5
	_, err = f.catalog.UpdateTitle(ctx, f.admin, title.ID, ports.TitlePatch{Year: &future})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.catalog.UpdateTitle(ctx, f.admin, 4242, ports.TitlePatch{Name: &name})
	assert.ErrorIs(t, err, domain.ErrTitleNotFound)
}

func TestCatalogService_DeleteCategoryInUse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	title := f.title(t, "Kept", 2010)

	err := f.catalog.DeleteCategory(ctx, f.admin, "books")
	assert.ErrorIs(t, err, domain.ErrValidation)

	require.NoError(t, f.catalog.DeleteTitle(ctx, f.admin, title.ID))
	require.NoError(t, f.catalog.DeleteCategory(ctx, f.admin, "books"))
	assert.ErrorIs(t, f.catalog.DeleteCategory(ctx, f.admin, "books"), domain.ErrCategoryNotFound)
}

func TestCatalogService_DeleteGenreKeepsTitles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedGenres(t, f, "horror")
	_ = f.title(t, "bootstrap", 2000)
	title, err := f.catalog.CreateTitle(ctx, f.admin, ports.TitleInput{Name: "It", Year: 1986, Category: "books", Genres: []string{"horror"}})
	require.NoError(t, err)

	require.NoError(t, f.catalog.DeleteGenre(ctx, f.admin, "horror"))

	got, err := f.catalog.GetTitle(ctx, title.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Genres)
}

func TestCatalogService_DuplicateSlug(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedGenres(t, f, "jazz")

	_, err := f.catalog.CreateGenre(ctx, f.admin, ports.SlugInput{Name: "Jazz again", Slug: "jazz"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.catalog.CreateGenre(ctx, f.admin, ports.SlugInput{Name: "Bad", Slug: "bad slug!"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCatalogService_ListTitlesFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedGenres(t, f, "sci-fi")
	f.title(t, "Foundation", 1951)
	_, err := f.catalog.CreateTitle(ctx, f.admin, ports.TitleInput{Name: "Foundation and Empire", Year: 1952, Category: "books", Genres: []string{"sci-fi"}})
	require.NoError(t, err)

	res, err := f.catalog.ListTitles(ctx, ports.TitleFilter{Name: "foundation"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	res, err = f.catalog.ListTitles(ctx, ports.TitleFilter{Genre: "sci-fi"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)

	res, err = f.catalog.ListTitles(ctx, ports.TitleFilter{Genre: "SCI", Category: "boo"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total, "slug filters match substrings case-insensitively")

	res, err = f.catalog.ListTitles(ctx, ports.TitleFilter{Year: 1951, Category: "books"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Foundation", res.Items[0].Name)
}
