//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"

	"github.com/yamdb/review-api/internal/core/domain"
	"github.com/yamdb/review-api/internal/core/ports"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("yamdb"),
		tcpostgres.WithUsername("yamdb"),
		tcpostgres.WithPassword("yamdb"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := Connect(ctx, Config{DSN: dsn, MaxOpenConns: 4}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(ctx, db))
	return db
}

func TestRepositories_ReviewLifecycle(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	users := NewUserRepository(db)
	categories := NewCategoryRepository(db)
	genres := NewGenreRepository(db)
	titles := NewTitleRepository(db)
	reviews := NewReviewRepository(db)
	comments := NewCommentRepository(db)

	a := &domain.User{Username: "a", Email: "a@example.com", Role: domain.RoleUser}
	b := &domain.User{Username: "b", Email: "b@example.com", Role: domain.RoleUser}
	require.NoError(t, users.Create(ctx, a))
	require.NoError(t, users.Create(ctx, b))
	assert.ErrorIs(t, users.Create(ctx, &domain.User{Username: "a", Email: "x@example.com"}), domain.ErrUsernameTaken)
	assert.ErrorIs(t, users.Create(ctx, &domain.User{Username: "x", Email: "a@example.com"}), domain.ErrEmailTaken)

	books := &domain.Category{Name: "Books", Slug: "books"}
	require.NoError(t, categories.Create(ctx, books))
	assert.ErrorIs(t, categories.Create(ctx, &domain.Category{Name: "Again", Slug: "books"}), domain.ErrSlugTaken)

	scifi := &domain.Genre{Name: "Sci-Fi", Slug: "sci-fi"}
	require.NoError(t, genres.Create(ctx, scifi))

	dune := &domain.Title{Name: "Dune", Year: 1965, Category: *books, Genres: []domain.Genre{*scifi}}
	require.NoError(t, titles.Create(ctx, dune))

	got, err := titles.Get(ctx, dune.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Rating)
	assert.Equal(t, "books", got.Category.Slug)
	require.Len(t, got.Genres, 1)

	now := time.Now().UTC()
	ra := &domain.Review{TitleID: dune.ID, Entry: domain.Entry{AuthorID: a.ID, Text: "great", PubDate: now}, Score: 8}
	require.NoError(t, reviews.Create(ctx, ra))
	rb := &domain.Review{TitleID: dune.ID, Entry: domain.Entry{AuthorID: b.ID, Text: "meh", PubDate: now}, Score: 4}
	require.NoError(t, reviews.Create(ctx, rb))

	dup := &domain.Review{TitleID: dune.ID, Entry: domain.Entry{AuthorID: a.ID, Text: "again", PubDate: now}, Score: 1}
	assert.ErrorIs(t, reviews.Create(ctx, dup), domain.ErrDuplicateReview)

	bad := &domain.Review{TitleID: dune.ID, Entry: domain.Entry{AuthorID: a.ID, Text: "x", PubDate: now}, Score: 11}
	assert.Error(t, reviews.Create(ctx, bad))

	rating, err := reviews.Rating(ctx, dune.ID)
	require.NoError(t, err)
	require.NotNil(t, rating)
	assert.Equal(t, 6, *rating)

	list, total, err := titles.List(ctx, ports.TitleFilter{Genre: "sci-fi", Page: ports.Page{Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.NotNil(t, list[0].Rating)
	assert.Equal(t, 6, *list[0].Rating)

	for i, text := range []string{"older", "newer"} {
		c := &domain.Comment{ReviewID: ra.ID, Entry: domain.Entry{AuthorID: b.ID, Text: text, PubDate: now.Add(time.Duration(i) * time.Minute)}}
		require.NoError(t, comments.Create(ctx, c))
	}
	cs, _, err := comments.ListByReview(ctx, ra.ID, ports.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, cs, 2)
	assert.Equal(t, "newer", cs[0].Text)
	assert.Equal(t, "b", cs[0].Author)

	assert.ErrorIs(t, categories.DeleteBySlug(ctx, "books"), domain.ErrCategoryInUse)

	// Removing b takes b's review and b's comments on a's review with it.
	own := &domain.Comment{ReviewID: ra.ID, Entry: domain.Entry{AuthorID: a.ID, Text: "reply", PubDate: now}}
	require.NoError(t, comments.Create(ctx, own))
	require.NoError(t, users.Delete(ctx, b.ID))
	_, err = reviews.Get(ctx, dune.ID, rb.ID)
	assert.ErrorIs(t, err, domain.ErrReviewNotFound)
	cs, total, err = comments.ListByReview(ctx, ra.ID, ports.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, cs, 1)
	assert.Equal(t, "reply", cs[0].Text)

	rating, err = reviews.Rating(ctx, dune.ID)
	require.NoError(t, err)
	require.NotNil(t, rating)
	assert.Equal(t, 8, *rating, "rating drops the deleted author's score")
	assert.ErrorIs(t, users.Delete(ctx, b.ID), domain.ErrUserNotFound)

	require.NoError(t, reviews.Delete(ctx, dune.ID, ra.ID))
	_, total, err = comments.ListByReview(ctx, ra.ID, ports.Page{Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total, "comments cascade with their review")

	rating, err = reviews.Rating(ctx, dune.ID)
	require.NoError(t, err)
	assert.Nil(t, rating)

	list, total, err = titles.List(ctx, ports.TitleFilter{Genre: "SCI", Category: "boo", Page: ports.Page{Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total, "slug filters match substrings case-insensitively")
	require.Len(t, list, 1)

	require.NoError(t, genres.DeleteBySlug(ctx, "sci-fi"))
	got, err = titles.Get(ctx, dune.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Genres)

	rc := &domain.Review{TitleID: dune.ID, Entry: domain.Entry{AuthorID: a.ID, Text: "second look", PubDate: now}, Score: 7}
	require.NoError(t, reviews.Create(ctx, rc))
	require.NoError(t, titles.Delete(ctx, dune.ID))
	_, err = reviews.Get(ctx, dune.ID, rc.ID)
	assert.ErrorIs(t, err, domain.ErrReviewNotFound)
}

func TestSeeder(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	seeder := NewSeeder(db)

	seeded, err := seeder.HasTitles(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	now := time.Now().UTC()
	ds := &ports.Dataset{
		Users:      []domain.User{{ID: 100, Username: "bingobongo", Email: "bingobongo@yamdb.fake", Role: domain.RoleUser}},
		Categories: []domain.Category{{ID: 1, Name: "Фильм", Slug: "movie"}},
		Genres:     []domain.Genre{{ID: 1, Name: "Драма", Slug: "drama"}},
		Titles: []domain.Title{{
			ID: 1, Name: "Побег из Шоушенка", Year: 1994,
			Category: domain.Category{ID: 1}, Genres: []domain.Genre{{ID: 1}},
		}},
		Reviews:  []domain.Review{{ID: 1, TitleID: 1, Entry: domain.Entry{AuthorID: 100, Text: "ok", PubDate: now}, Score: 10}},
		Comments: []domain.Comment{{ID: 1, ReviewID: 1, Entry: domain.Entry{AuthorID: 100, Text: "yes", PubDate: now}}},
	}
	require.NoError(t, seeder.Seed(ctx, ds))

	seeded, err = seeder.HasTitles(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	// Sequences continue after the loaded ids.
	u := &domain.User{Username: "fresh", Email: "fresh@example.com", Role: domain.RoleUser}
	require.NoError(t, NewUserRepository(db).Create(ctx, u))
	assert.Equal(t, int64(101), u.ID)
}
