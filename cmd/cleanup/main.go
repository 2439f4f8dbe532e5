// Command cleanup hard-deletes archived trade-in requests that have sat in
// the archive longer than the retention period. Run it from cron.
//
// Usage:
//
//	cleanup [--retention-days N] [--dry-run]
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/topgearmoscow/miniapp-backend/internal/adapter/postgres"
	"github.com/topgearmoscow/miniapp-backend/internal/adapter/postgres/tradein"
	"github.com/topgearmoscow/miniapp-backend/internal/app"
	"github.com/topgearmoscow/miniapp-backend/internal/config"
)

func main() {
	retentionDays := flag.Int("retention-days", 0, "override tradein.archive_retention_days")
	dryRun := flag.Bool("dry-run", false, "only report how many requests would be purged")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	days := cfg.TradeIn.ArchiveRetentionDays
	if *retentionDays > 0 {
		days = *retentionDays
	}

	if err := run(logger, cfg.Database, days, *dryRun); err != nil {
		logger.Error("cleanup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger, dbCfg config.DatabaseConfig, days int, dryRun bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := tradein.New(pool)
	threshold := time.Now().UTC().AddDate(0, 0, -days)
	log := logger.With(slog.Int("retention_days", days), slog.Time("threshold", threshold))

	if dryRun {
		n, err := repo.CountArchivedBefore(ctx, threshold)
		if err != nil {
			return err
		}
		log.Info("dry run: archived requests eligible for purge", slog.Int64("count", n))
		return nil
	}

	purged, err := repo.PurgeArchived(ctx, threshold)
	if err != nil {
		return err
	}
	log.Info("archived requests purged", slog.Int64("purged", purged))
	return nil
}
