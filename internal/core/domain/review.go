package domain

import (
	"math"
	"strings"
	"time"
)

const (
	MinScore = 1
	MaxScore = 10
)

// Entry carries the authored text shared by reviews and comments.
type Entry struct {
	AuthorID int64
	Author   string
	Text     string
	PubDate  time.Time
}

// OwnedBy reports whether the entry was written by the user with id.
func (e Entry) OwnedBy(id int64) bool { return e.AuthorID == id }

// Review is a user's scored opinion of a title. At most one per (title, author).
type Review struct {
	ID      int64
	TitleID int64
	Entry
	Score int
}

// Comment is a reply attached to a review.
type Comment struct {
	ID       int64
	ReviewID int64
	Entry
}

// ValidateScore rejects scores outside [MinScore, MaxScore].
func ValidateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return NewValidationError("score", "must be between %d and %d", MinScore, MaxScore)
	}
	return nil
}

// ValidateText rejects empty review or comment bodies.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return NewValidationError("text", "is required")
	}
	return nil
}

// RoundRating returns round(mean(scores)), or nil for an empty set.
func RoundRating(scores []int) *int {
	if len(scores) == 0 {
		return nil
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	r := int(math.Round(float64(sum) / float64(len(scores))))
	return &r
}
