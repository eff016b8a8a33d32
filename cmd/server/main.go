// Package main implements the entry point for the gearcast API server,
// which manages equipment assets and generates product videos from them.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, status, version, redo, reset) and exit; extra arguments are passed through")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrateCmd, flag.Args()); err != nil {
		log.Fatalf("gearcast-api: %v", err)
	}
}

// run loads configuration and either executes a migration command or serves
// the API until ctx is canceled.
func run(ctx context.Context, migrateCmd string, migrateArgs []string) error {
	cfg, logger, db, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer func() { _ = db.Close() }()
		return handleMigrations(ctx, db, logger, migrateCmd, migrateArgs)
	}

	if cfg.Database.AutoMigrate {
		if err := handleMigrations(ctx, db, logger, "up", nil); err != nil {
			_ = db.Close()
			return err
		}
	}

	app, err := newApplication(ctx, cfg, logger, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}
