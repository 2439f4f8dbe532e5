package seeder

import (
	"context"
	"log/slog"
	"time"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

// CarUpserter writes catalog rows. Satisfied by car.Repo.
type CarUpserter interface {
	Upsert(ctx context.Context, c *domain.Car) (inserted bool, err error)
}

// Result holds the outcome of an import run.
type Result struct {
	Inserted int
	Updated  int
	Skipped  int
	Errors   int
	Duration time.Duration
}

// Importer writes a parsed catalog car by car. A failing car is logged and
// counted; the rest of the catalog is still written.
type Importer struct {
	log    *slog.Logger
	repo   CarUpserter
	dryRun bool
}

// NewImporter creates a new Importer. In dry-run mode nothing is written.
func NewImporter(log *slog.Logger, repo CarUpserter, dryRun bool) *Importer {
	return &Importer{log: log, repo: repo, dryRun: dryRun}
}

// Run imports cars. It stops early only when ctx is cancelled.
func (im *Importer) Run(ctx context.Context, cars []domain.Car) (Result, error) {
	start := time.Now()
	var res Result

	for i := range cars {
		if err := ctx.Err(); err != nil {
			res.Duration = time.Since(start)
			return res, err
		}

		car := &cars[i]
		if im.dryRun {
			im.log.Info("dry run: would upsert car",
				slog.String("id", car.ID.String()),
				slog.String("title", car.Title()),
			)
			res.Skipped++
			continue
		}

		inserted, err := im.repo.Upsert(ctx, car)
		switch {
		case err != nil:
			im.log.Error("upsert car",
				slog.String("id", car.ID.String()),
				slog.String("title", car.Title()),
				slog.String("error", err.Error()),
			)
			res.Errors++
		case inserted:
			res.Inserted++
		default:
			res.Updated++
		}
	}

	res.Duration = time.Since(start)
	im.log.Info("catalog import finished",
		slog.Int("inserted", res.Inserted),
		slog.Int("updated", res.Updated),
		slog.Int("skipped", res.Skipped),
		slog.Int("errors", res.Errors),
		slog.Duration("duration", res.Duration),
	)
	return res, nil
}
