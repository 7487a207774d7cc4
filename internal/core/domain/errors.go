package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Callers match with errors.Is; repositories and services wrap
// these with context but never replace them.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrDuplicateReview   = errors.New("a review for this title already exists")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrInvalidCredential = errors.New("invalid confirmation code")
	ErrUpstreamDelivery  = errors.New("confirmation code delivery failed")
	ErrAlreadySeeded     = errors.New("catalog already contains titles")
)

// ErrAuthenticationRequired is a permission denial for anonymous actors.
var ErrAuthenticationRequired = fmt.Errorf("%w: authentication required", ErrPermissionDenied)

var (
	ErrTitleNotFound    = fmt.Errorf("title %w", ErrNotFound)
	ErrReviewNotFound   = fmt.Errorf("review %w", ErrNotFound)
	ErrCommentNotFound  = fmt.Errorf("comment %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrGenreNotFound    = fmt.Errorf("genre %w", ErrNotFound)
)

// ValidationError reports a rejected input field. It matches ErrValidation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Uniqueness violations surfaced as validation failures.
var (
	ErrUsernameTaken = &ValidationError{Field: "username", Message: "a user with this username already exists"}
	ErrEmailTaken    = &ValidationError{Field: "email", Message: "a user with this email already exists"}
	ErrSlugTaken     = &ValidationError{Field: "slug", Message: "this slug is already in use"}
	ErrCategoryInUse = &ValidationError{Field: "slug", Message: "category is still referenced by titles"}
)
