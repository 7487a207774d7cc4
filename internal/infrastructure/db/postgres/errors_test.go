package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yamdb/review-api/internal/core/domain"
)

func TestTranslate(t *testing.T) {
	unique := func(constraint string) error {
		return fmt.Errorf("insert: %w", &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: constraint})
	}
	other := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"record not found", gorm.ErrRecordNotFound, domain.ErrTitleNotFound},
		{"duplicate review", unique("unique_title_author"), domain.ErrDuplicateReview},
		{"username", unique("users_username_key"), domain.ErrUsernameTaken},
		{"email", unique("users_email_key"), domain.ErrEmailTaken},
		{"genre slug", unique("genres_slug_key"), domain.ErrSlugTaken},
		{"score check", &pgconn.PgError{Code: codeCheckViolation, ConstraintName: "chk_reviews_score_range"}, domain.ErrValidation},
		{"unknown", other, other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.err, domain.ErrTitleNotFound)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Fatalf("translate(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestTranslate_UnknownUniqueConstraintPassesThrough(t *testing.T) {
	raw := &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "something_else"}
	if got := translate(raw, nil); got != raw {
		t.Fatalf("expected raw error, got %v", got)
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	if !isForeignKeyViolation(fmt.Errorf("delete: %w", &pgconn.PgError{Code: codeForeignKeyViolation})) {
		t.Fatalf("expected wrapped 23503 to be detected")
	}
	if isForeignKeyViolation(errors.New("nope")) {
		t.Fatalf("plain error is not a FK violation")
	}
}
