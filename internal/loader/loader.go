package loader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/yamdb/review-api/internal/core/domain"
	"github.com/yamdb/review-api/internal/core/ports"
)

// Loader seeds an empty catalog from a TableReader.
type Loader struct {
	seeder ports.Seeder
	log    zerolog.Logger
	now    func() time.Time
}

func New(seeder ports.Seeder, log zerolog.Logger) *Loader {
	return &Loader{seeder: seeder, log: log, now: time.Now}
}

// Run refuses to touch a catalog that already has titles.
func (l *Loader) Run(ctx context.Context, r TableReader) (*ports.Dataset, error) {
	seeded, err := l.seeder.HasTitles(ctx)
	if err != nil {
		return nil, fmt.Errorf("check existing titles: %w", err)
	}
	if seeded {
		return nil, domain.ErrAlreadySeeded
	}

	l.log.Info().Msg("reading tables")
	ds, err := BuildDataset(ctx, r, l.now().UTC())
	if err != nil {
		return nil, err
	}

	if err := l.seeder.Seed(ctx, ds); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	l.log.Info().
		Int("users", len(ds.Users)).
		Int("categories", len(ds.Categories)).
		Int("genres", len(ds.Genres)).
		Int("titles", len(ds.Titles)).
		Int("reviews", len(ds.Reviews)).
		Int("comments", len(ds.Comments)).
		Msg("loading done")
	return ds, nil
}

func isMissing(err error) bool { return errors.Is(err, ErrTableMissing) }
