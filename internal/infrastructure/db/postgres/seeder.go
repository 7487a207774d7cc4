package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yamdb/review-api/internal/core/ports"
)

const seedBatchSize = 500

// Seeder bulk-loads a dataset with its original IDs.
type Seeder struct {
	db *gorm.DB
}

func NewSeeder(db *gorm.DB) ports.Seeder {
	return &Seeder{db: db}
}

func (s *Seeder) HasTitles(ctx context.Context) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&titleRow{}).Limit(1).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// Seed inserts the dataset in dependency order inside one transaction and
// then moves every id sequence past the loaded ids.
func (s *Seeder) Seed(ctx context.Context, ds *ports.Dataset) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := make([]userRow, 0, len(ds.Users))
		for i := range ds.Users {
			users = append(users, toUserRow(&ds.Users[i]))
		}
		if err := insert(tx, "users", users); err != nil {
			return err
		}

		categories := make([]categoryRow, 0, len(ds.Categories))
		for _, c := range ds.Categories {
			categories = append(categories, categoryRow{ID: c.ID, Name: c.Name, Slug: c.Slug})
		}
		if err := insert(tx, "categories", categories); err != nil {
			return err
		}

		genres := make([]genreRow, 0, len(ds.Genres))
		for _, g := range ds.Genres {
			genres = append(genres, genreRow{ID: g.ID, Name: g.Name, Slug: g.Slug})
		}
		if err := insert(tx, "genres", genres); err != nil {
			return err
		}

		titles := make([]titleRow, 0, len(ds.Titles))
		var links []genreTitleRow
		for _, t := range ds.Titles {
			titles = append(titles, titleRow{
				ID:          t.ID,
				Name:        t.Name,
				Year:        t.Year,
				Description: t.Description,
				CategoryID:  t.Category.ID,
			})
			for _, g := range t.Genres {
				links = append(links, genreTitleRow{TitleID: t.ID, GenreID: g.ID})
			}
		}
		if err := insert(tx, "titles", titles); err != nil {
			return err
		}
		if err := insert(tx, "genre_titles", links); err != nil {
			return err
		}

		reviews := make([]reviewRow, 0, len(ds.Reviews))
		for _, r := range ds.Reviews {
			reviews = append(reviews, reviewRow{
				ID:       r.ID,
				TitleID:  r.TitleID,
				AuthorID: r.AuthorID,
				Text:     r.Text,
				Score:    r.Score,
				PubDate:  r.PubDate,
			})
		}
		if err := insert(tx, "reviews", reviews); err != nil {
			return err
		}

		comments := make([]commentRow, 0, len(ds.Comments))
		for _, c := range ds.Comments {
			comments = append(comments, commentRow{
				ID:       c.ID,
				ReviewID: c.ReviewID,
				AuthorID: c.AuthorID,
				Text:     c.Text,
				PubDate:  c.PubDate,
			})
		}
		if err := insert(tx, "comments", comments); err != nil {
			return err
		}

		for _, table := range []string{"users", "categories", "genres", "titles", "reviews", "comments"} {
			if err := resetSequence(tx, table); err != nil {
				return err
			}
		}
		return nil
	})
}

func insert[T any](tx *gorm.DB, table string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	if err := tx.Omit(clause.Associations).CreateInBatches(&rows, seedBatchSize).Error; err != nil {
		return fmt.Errorf("seed %s: %w", table, translate(err, nil))
	}
	return nil
}

func resetSequence(tx *gorm.DB, table string) error {
	sql := fmt.Sprintf(
		"SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)",
		table,
	)
	if err := tx.Exec(sql).Error; err != nil {
		return fmt.Errorf("reset %s sequence: %w", table, err)
	}
	return nil
}
