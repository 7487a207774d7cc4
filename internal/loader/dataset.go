package loader

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yamdb/review-api/internal/core/domain"
	"github.com/yamdb/review-api/internal/core/ports"
)

var pubDateLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999Z07:00", "2006-01-02 15:04:05"}

// RowError points at the offending row of a table. Line counts the header.
type RowError struct {
	Table string
	Line  int
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s line %d: %v", e.Table, e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// BuildDataset reads every table and resolves references between them.
// Missing genre_title, review and comments tables are treated as empty.
func BuildDataset(ctx context.Context, r TableReader, now time.Time) (*ports.Dataset, error) {
	b := &builder{
		ds:         &ports.Dataset{},
		now:        now,
		users:      map[int64]bool{},
		categories: map[int64]domain.Category{},
		genres:     map[int64]domain.Genre{},
		titles:     map[int64]int{},
		reviews:    map[int64]bool{},
	}
	steps := []struct {
		table    string
		optional bool
		fn       func(Record) error
	}{
		{"users", false, b.user},
		{"category", false, b.category},
		{"genre", false, b.genre},
		{"titles", false, b.title},
		{"genre_title", true, b.genreTitle},
		{"review", true, b.review},
		{"comments", true, b.comment},
	}
	for _, s := range steps {
		records, err := r.ReadTable(ctx, s.table)
		if err != nil {
			if s.optional && isMissing(err) {
				continue
			}
			return nil, err
		}
		for i, rec := range records {
			if err := s.fn(rec); err != nil {
				return nil, &RowError{Table: s.table, Line: i + 2, Err: err}
			}
		}
	}
	return b.ds, nil
}

type builder struct {
	ds         *ports.Dataset
	now        time.Time
	users      map[int64]bool
	categories map[int64]domain.Category
	genres     map[int64]domain.Genre
	titles     map[int64]int // id -> index in ds.Titles
	reviews    map[int64]bool
}

func (b *builder) user(rec Record) error {
	id, err := intField(rec, "id")
	if err != nil {
		return err
	}
	role := domain.RoleUser
	if s := strings.TrimSpace(rec["role"]); s != "" {
		if role, err = domain.ParseRole(s); err != nil {
			return err
		}
	}
	u := domain.User{
		ID:        id,
		Username:  rec["username"],
		Email:     rec["email"],
		FirstName: rec["first_name"],
		LastName:  rec["last_name"],
		Bio:       rec["bio"],
		Role:      role,
		CreatedAt: b.now,
	}
	if err := domain.ValidateUsername(u.Username); err != nil {
		return err
	}
	b.users[id] = true
	b.ds.Users = append(b.ds.Users, u)
	return nil
}

func (b *builder) category(rec Record) error {
	id, err := intField(rec, "id")
	if err != nil {
		return err
	}
	c := domain.Category{ID: id, Name: rec["name"], Slug: rec["slug"]}
	if err := domain.ValidateSlugName(c.Name, c.Slug); err != nil {
		return err
	}
	b.categories[id] = c
	b.ds.Categories = append(b.ds.Categories, c)
	return nil
}

func (b *builder) genre(rec Record) error {
	id, err := intField(rec, "id")
	if err != nil {
		return err
	}
	g := domain.Genre{ID: id, Name: rec["name"], Slug: rec["slug"]}
	if err := domain.ValidateSlugName(g.Name, g.Slug); err != nil {
		return err
	}
	b.genres[id] = g
	b.ds.Genres = append(b.ds.Genres, g)
	return nil
}

func (b *builder) title(rec Record) error {
	id, err := intField(rec, "id")
	if err != nil {
		return err
	}
	year, err := intField(rec, "year")
	if err != nil {
		return err
	}
	t := domain.Title{ID: id, Name: rec["name"], Year: int(year), Description: rec["description"]}
	if s := strings.TrimSpace(rec["category"]); s != "" {
		catID, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("category: %w", err)
		}
		c, ok := b.categories[catID]
		if !ok {
			return fmt.Errorf("unknown category %d", catID)
		}
		t.Category = c
	}
	b.titles[id] = len(b.ds.Titles)
	b.ds.Titles = append(b.ds.Titles, t)
	return nil
}

func (b *builder) genreTitle(rec Record) error {
	titleID, err := intField(rec, "title_id")
	if err != nil {
		return err
	}
	genreID, err := intField(rec, "genre_id")
	if err != nil {
		return err
	}
	idx, ok := b.titles[titleID]
	if !ok {
		return fmt.Errorf("unknown title %d", titleID)
	}
	g, ok := b.genres[genreID]
	if !ok {
		return fmt.Errorf("unknown genre %d", genreID)
	}
	b.ds.Titles[idx].Genres = append(b.ds.Titles[idx].Genres, g)
	return nil
}

func (b *builder) review(rec Record) error {
	id, err := intField(rec, "id")
	if err != nil {
		return err
	}
	titleID, err := intField(rec, "title_id")
	if err != nil {
		return err
	}
	if _, ok := b.titles[titleID]; !ok {
		return fmt.Errorf("unknown title %d", titleID)
	}
	entry, err := b.entry(rec)
	if err != nil {
		return err
	}
	score, err := intField(rec, "score")
	if err != nil {
		return err
	}
	if err := domain.ValidateScore(int(score)); err != nil {
		return err
	}
	b.reviews[id] = true
	b.ds.Reviews = append(b.ds.Reviews, domain.Review{ID: id, TitleID: titleID, Entry: entry, Score: int(score)})
	return nil
}

func (b *builder) comment(rec Record) error {
	id, err := intField(rec, "id")
	if err != nil {
		return err
	}
	reviewID, err := intField(rec, "review_id")
	if err != nil {
		return err
	}
	if !b.reviews[reviewID] {
		return fmt.Errorf("unknown review %d", reviewID)
	}
	entry, err := b.entry(rec)
	if err != nil {
		return err
	}
	b.ds.Comments = append(b.ds.Comments, domain.Comment{ID: id, ReviewID: reviewID, Entry: entry})
	return nil
}

func (b *builder) entry(rec Record) (domain.Entry, error) {
	authorID, err := intField(rec, "author")
	if err != nil {
		return domain.Entry{}, err
	}
	if !b.users[authorID] {
		return domain.Entry{}, fmt.Errorf("unknown author %d", authorID)
	}
	pub, err := parsePubDate(rec["pub_date"], b.now)
	if err != nil {
		return domain.Entry{}, err
	}
	return domain.Entry{AuthorID: authorID, Text: rec["text"], PubDate: pub}, nil
}

func intField(rec Record, key string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(rec[key]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func parsePubDate(s string, fallback time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback, nil
	}
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("pub_date: unrecognized format %q", s)
}
