// Command seeder loads a demo vehicle catalog from a YAML or JSON file into
// the cars table. Rows are upserted, so re-running with an edited file
// updates prices and statuses in place. It is intended to be run offline,
// not as part of the main server.
//
// Flags:
//
//	--file           catalog file (.yaml, .yml or .json)
//	--dry-run        validate the catalog without writing to DB
//	--seeder-config  path to seeder YAML config file
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
	"github.com/topgearmoscow/miniapp-backend/internal/adapter/postgres/car"
	"github.com/topgearmoscow/miniapp-backend/internal/app"
	"github.com/topgearmoscow/miniapp-backend/internal/app/seeder"
	"github.com/topgearmoscow/miniapp-backend/internal/config"
)

// Compile-time interface assertion.
var _ seeder.CarUpserter = (*car.Repo)(nil)

func main() {
	fileFlag := flag.String("file", "", "catalog file to import")
	dryRunFlag := flag.Bool("dry-run", false, "validate the catalog without writing to DB")
	seederConfigFlag := flag.String("seeder-config", "", "path to seeder YAML config file")
	flag.Parse()

	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)

	seederCfg, err := seeder.LoadConfig(*seederConfigFlag)
	if err != nil {
		logger.Error("load seeder config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// CLI flags override config.
	if *fileFlag != "" {
		seederCfg.CatalogPath = *fileFlag
	}
	if *dryRunFlag {
		seederCfg.DryRun = true
	}
	if seederCfg.CatalogPath == "" {
		logger.Error("catalog file is required (--file or SEEDER_CATALOG_PATH)")
		os.Exit(1)
	}

	cars, err := seeder.LoadCatalog(seederCfg.CatalogPath)
	if err != nil {
		logger.Error("load catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("catalog parsed", slog.Int("cars", len(cars)), slog.String("file", seederCfg.CatalogPath))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	var repo seeder.CarUpserter
	if !seederCfg.DryRun {
		pool, err := postgres.NewPool(ctx, appCfg.Database)
		if err != nil {
			logger.Error("connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()
		repo = car.New(pool)
	}

	res, err := seeder.NewImporter(logger, repo, seederCfg.DryRun).Run(ctx, cars)
	if err != nil {
		logger.Error("import interrupted", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if res.Errors > 0 {
		logger.Warn("import completed with errors", slog.Int("errors", res.Errors))
		os.Exit(1)
	}

	logger.Info("import completed successfully")
}
