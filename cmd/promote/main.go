// Command promote manages back-office admin grants.
// It is used to bootstrap the first admin before any grant exists.
//
// Usage:
//
//	promote --add=123456789,987654321
//	promote --remove=123456789
//	promote --list
//
// A list of ids is applied in one transaction: either every grant changes
// or none does. Reads DATABASE_DSN (or the config file) like the server does.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/topgearmoscow/miniapp-backend/internal/adapter/postgres"
	adminrepo "github.com/topgearmoscow/miniapp-backend/internal/adapter/postgres/admin"
	"github.com/topgearmoscow/miniapp-backend/internal/config"
)

func main() {
	addFlag := flag.String("add", "", "comma-separated telegram ids to grant admin access")
	removeFlag := flag.String("remove", "", "comma-separated telegram ids to revoke admin access")
	listFlag := flag.Bool("list", false, "list current admins")
	flag.Parse()

	add, remove := config.ParseList(*addFlag), config.ParseList(*removeFlag)
	if len(add) == 0 && len(remove) == 0 && !*listFlag {
		fmt.Fprintln(os.Stderr, "Usage: promote --add=<ids> | --remove=<ids> | --list")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	repo := adminrepo.New(pool)
	txm := postgres.NewTxManager(pool)

	if len(add) > 0 || len(remove) > 0 {
		err := txm.RunInTx(ctx, func(ctx context.Context) error {
			for _, id := range add {
				// A failed INSERT aborts the transaction, so check first.
				exists, err := repo.IsAdmin(ctx, id)
				if err != nil {
					return err
				}
				if exists {
					fmt.Printf("%s: already an admin\n", id)
					continue
				}
				if _, err := repo.Add(ctx, id); err != nil {
					return fmt.Errorf("add %s: %w", id, err)
				}
				fmt.Printf("%s: promoted to admin\n", id)
			}
			for _, id := range remove {
				if err := repo.Remove(ctx, id); err != nil {
					return fmt.Errorf("remove %s: %w", id, err)
				}
				fmt.Printf("%s: no longer an admin\n", id)
			}
			return nil
		})
		if err != nil {
			pool.Close()
			log.Fatalf("update grants (nothing changed): %v", err)
		}
	}

	if !*listFlag {
		return
	}

	admins, err := repo.List(ctx)
	if err != nil {
		pool.Close()
		log.Fatalf("list admins: %v", err)
	}
	if len(admins) == 0 {
		fmt.Println("No stored admins. Ids from TELEGRAM_ADMIN_IDS still apply.")
		return
	}
	for _, a := range admins {
		fmt.Printf("%s\t%s\n", a.TelegramID, a.CreatedAt.Format(time.RFC3339))
	}
}
