package service

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"

	"github.com/yamdb/review-api/internal/core/domain"
	"github.com/yamdb/review-api/internal/core/ports"
)

type fixture struct {
	store    *memStore
	users    stubUserRepo
	audit    *stubAudit
	notifier *stubNotifier
	codes    *stubCodes

	auth     *AuthService
	accounts *UserService
	catalog  *CatalogService
	reviews  *ReviewService
	comments *CommentService

	admin *domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	f := &fixture{
		store:    store,
		users:    stubUserRepo{store},
		audit:    &stubAudit{},
		notifier: &stubNotifier{},
		codes:    newStubCodes(),
	}
	log := zerolog.Nop()
	titles := stubTitleRepo{store}
	reviews := stubReviewRepo{store}

	f.auth = NewAuthService(f.users, f.codes, stubTokens{}, f.notifier, log)
	f.accounts = NewUserService(f.users, log)
	f.catalog = NewCatalogService(stubCategoryRepo{store}, stubGenreRepo{store}, titles, log)
	f.reviews = NewReviewService(titles, reviews, f.audit, log)
	f.comments = NewCommentService(reviews, stubCommentRepo{store}, f.audit, log)

	f.admin = f.user(t, "root", domain.RoleAdmin)
	return f
}

// user stores a confirmed account with a random email.
func (f *fixture) user(t *testing.T, username string, role domain.Role) *domain.User {
	t.Helper()
	u := &domain.User{
		Username:  username,
		Email:     gofakeit.Email(),
		Role:      role,
		Confirmed: true,
		CreatedAt: time.Now().UTC(),
	}
	if err := f.users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

// title creates a title in category "books", creating the category on first use.
func (f *fixture) title(t *testing.T, name string, year int) *domain.Title {
	t.Helper()
	ctx := context.Background()
	if _, ok := f.store.categories["books"]; !ok {
		if _, err := f.catalog.CreateCategory(ctx, f.admin, ports.SlugInput{Name: "Books", Slug: "books"}); err != nil {
			t.Fatalf("create category: %v", err)
		}
	}
	title, err := f.catalog.CreateTitle(ctx, f.admin, ports.TitleInput{Name: name, Year: year, Category: "books"})
	if err != nil {
		t.Fatalf("create title %s: %v", name, err)
	}
	return title
}

func (f *fixture) review(t *testing.T, author *domain.User, titleID int64, score int) *domain.Review {
	t.Helper()
	r, err := f.reviews.Create(context.Background(), author, ports.CreateReviewInput{
		TitleID: titleID,
		Text:    gofakeit.Sentence(8),
		Score:   score,
	})
	if err != nil {
		t.Fatalf("create review by %s: %v", author.Username, err)
	}
	return r
}
