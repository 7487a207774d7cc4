package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxSlugLen      = 50
	maxCatalogName  = 256
	maxTitleNameLen = 256
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// Category groups titles by kind (books, films, music...).
type Category struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Genre is a label a title may carry any number of.
type Genre struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Title is a reviewable work. Rating is derived from its reviews on read and
// is nil while the title has none.
type Title struct {
	ID          int64
	Name        string
	Year        int
	Description string
	Category    Category
	Genres      []Genre
	Rating      *int
}

// ValidateSlugName checks the name/slug pair shared by categories and genres.
func ValidateSlugName(name, slug string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("name", "is required")
	}
	if utf8.RuneCountInString(name) > maxCatalogName {
		return NewValidationError("name", "must be at most %d characters", maxCatalogName)
	}
	if slug == "" {
		return NewValidationError("slug", "is required")
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return NewValidationError("slug", "must be at most %d characters", maxSlugLen)
	}
	if !slugPattern.MatchString(slug) {
		return NewValidationError("slug", "may contain only latin letters, digits, hyphens and underscores")
	}
	return nil
}

// ValidateTitleName checks a title's display name.
func ValidateTitleName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("name", "is required")
	}
	if utf8.RuneCountInString(name) > maxTitleNameLen {
		return NewValidationError("name", "must be at most %d characters", maxTitleNameLen)
	}
	return nil
}

// ValidateYear rejects release years in the future relative to now.
func ValidateYear(year int, now time.Time) error {
	if year > now.Year() {
		return NewValidationError("year", "must not be later than %d", now.Year())
	}
	return nil
}
