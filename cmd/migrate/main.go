// Command migrate applies or inspects the embedded database migrations.
//
// Usage:
//
//	migrate up       apply all pending migrations
//	migrate down     roll back the latest migration
//	migrate status   list migrations and whether they are applied
//	migrate version  print the current schema version
//
// Reads DATABASE_DSN (or the config file) like the server does.
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/topgearmoscow/miniapp-backend/internal/adapter/postgres"
	"github.com/topgearmoscow/miniapp-backend/internal/app"
	"github.com/topgearmoscow/miniapp-backend/internal/config"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: migrate up|down|status|version")
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	m, err := postgres.NewMigrator(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Error("open migrator", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer m.Close()

	if err := run(ctx, m, flag.Arg(0), logger); err != nil {
		logger.Error("migrate "+flag.Arg(0), slog.String("error", err.Error()))
		m.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, m *postgres.Migrator, cmd string, logger *slog.Logger) error {
	switch cmd {
	case "up":
		applied, err := m.Up(ctx)
		if err != nil {
			return err
		}
		logger.Info("migrations applied", slog.Any("versions", applied))
	case "down":
		version, err := m.Down(ctx)
		if err != nil {
			return err
		}
		logger.Info("migration rolled back", slog.Int64("version", version))
	case "status":
		statuses, err := m.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			applied := ""
			if s.State == goose.StateApplied {
				applied = s.AppliedAt.Format(time.RFC3339)
			}
			fmt.Printf("%05d  %-40s  %-9s  %s\n", s.Source.Version, s.Source.Path, s.State, applied)
		}
	case "version":
		version, err := m.Version(ctx)
		if err != nil {
			return err
		}
		fmt.Println(version)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}
