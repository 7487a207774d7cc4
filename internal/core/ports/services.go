package ports

import (
	"context"

	"github.com/yamdb/review-api/internal/core/domain"
)

// Service methods that mutate take the acting user explicitly; nil is an
// anonymous caller.

// SignupInput is the self-registration request.
type SignupInput struct {
	Username string
	Email    string
}

// TokenInput exchanges a confirmation code for tokens.
type TokenInput struct {
	Username         string
	ConfirmationCode string
}

// AuthService runs the signup / confirmation-code / token workflow.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	Token(ctx context.Context, input TokenInput) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	// Authenticate resolves an access token to the current user record.
	Authenticate(ctx context.Context, accessToken string) (*domain.User, error)
}

// CreateUserInput is an admin-created account.
type CreateUserInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      string // empty = user
}

// UpdateUserInput is a partial update; nil fields are left unchanged.
type UpdateUserInput struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

type UserService interface {
	Me(ctx context.Context, actor *domain.User) (*domain.User, error)
	// UpdateMe ignores Role unless the actor is an admin.
	UpdateMe(ctx context.Context, actor *domain.User, input UpdateUserInput) (*domain.User, error)
	List(ctx context.Context, actor *domain.User, search string, page Page) (*ListResult[*domain.User], error)
	Get(ctx context.Context, actor *domain.User, username string) (*domain.User, error)
	Create(ctx context.Context, actor *domain.User, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, actor *domain.User, username string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor *domain.User, username string) error
}

// SlugInput creates a category or genre.
type SlugInput struct {
	Name string
	Slug string
}

// TitleInput creates a title. Category and Genres are slugs.
type TitleInput struct {
	Name        string
	Year        int
	Description string
	Category    string
	Genres      []string
}

// TitlePatch updates a title; nil fields are left unchanged.
type TitlePatch struct {
	Name        *string
	Year        *int
	Description *string
	Category    *string
	Genres      *[]string
}

type CatalogService interface {
	ListCategories(ctx context.Context, search string, page Page) (*ListResult[domain.Category], error)
	CreateCategory(ctx context.Context, actor *domain.User, input SlugInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, actor *domain.User, slug string) error

	ListGenres(ctx context.Context, search string, page Page) (*ListResult[domain.Genre], error)
	CreateGenre(ctx context.Context, actor *domain.User, input SlugInput) (*domain.Genre, error)
	DeleteGenre(ctx context.Context, actor *domain.User, slug string) error

	ListTitles(ctx context.Context, filter TitleFilter) (*ListResult[*domain.Title], error)
	GetTitle(ctx context.Context, id int64) (*domain.Title, error)
	CreateTitle(ctx context.Context, actor *domain.User, input TitleInput) (*domain.Title, error)
	UpdateTitle(ctx context.Context, actor *domain.User, id int64, patch TitlePatch) (*domain.Title, error)
	DeleteTitle(ctx context.Context, actor *domain.User, id int64) error
}

type CreateReviewInput struct {
	TitleID int64
	Text    string
	Score   int
}

type UpdateReviewInput struct {
	Text  *string
	Score *int
}

type ReviewService interface {
	Create(ctx context.Context, actor *domain.User, input CreateReviewInput) (*domain.Review, error)
	Get(ctx context.Context, titleID, reviewID int64) (*domain.Review, error)
	List(ctx context.Context, titleID int64, page Page) (*ListResult[*domain.Review], error)
	Update(ctx context.Context, actor *domain.User, titleID, reviewID int64, input UpdateReviewInput) (*domain.Review, error)
	Delete(ctx context.Context, actor *domain.User, titleID, reviewID int64) error
	Rating(ctx context.Context, titleID int64) (*int, error)
}

type CreateCommentInput struct {
	TitleID  int64
	ReviewID int64
	Text     string
}

type UpdateCommentInput struct {
	Text *string
}

type CommentService interface {
	Create(ctx context.Context, actor *domain.User, input CreateCommentInput) (*domain.Comment, error)
	Get(ctx context.Context, titleID, reviewID, commentID int64) (*domain.Comment, error)
	List(ctx context.Context, titleID, reviewID int64, page Page) (*ListResult[*domain.Comment], error)
	Update(ctx context.Context, actor *domain.User, titleID, reviewID, commentID int64, input UpdateCommentInput) (*domain.Comment, error)
	Delete(ctx context.Context, actor *domain.User, titleID, reviewID, commentID int64) error
}
