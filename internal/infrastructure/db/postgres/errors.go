package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yamdb/review-api/internal/core/domain"
)

// SQLSTATE codes the adapters react to.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

var uniqueConstraints = map[string]error{
	"unique_title_author": domain.ErrDuplicateReview,
	"users_username_key":  domain.ErrUsernameTaken,
	"users_email_key":     domain.ErrEmailTaken,
	"categories_slug_key": domain.ErrSlugTaken,
	"genres_slug_key":     domain.ErrSlugTaken,
}

// translate maps driver errors onto domain errors. notFound is returned for
// gorm.ErrRecordNotFound; anything unrecognised passes through unchanged.
func translate(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil {
		return notFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		if mapped, ok := uniqueConstraints[pgErr.ConstraintName]; ok {
			return mapped
		}
	case codeCheckViolation:
		if pgErr.ConstraintName == "score_range" || pgErr.ConstraintName == "chk_reviews_score_range" {
			return domain.NewValidationError("score", "must be between %d and %d", domain.MinScore, domain.MaxScore)
		}
	}
	return err
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation
}
