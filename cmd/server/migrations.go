package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/gearcast-api/internal/platform/postgres"
)

// migrationCommands are the goose commands that work against the embedded
// migration files.
var migrationCommands = map[string]bool{
	"up":        true,
	"up-by-one": true,
	"up-to":     true,
	"down":      true,
	"down-to":   true,
	"redo":      true,
	"reset":     true,
	"status":    true,
	"version":   true,
}

// handleMigrations runs one migration command against db.
func handleMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger, command string, args []string) error {
	if !migrationCommands[command] {
		return fmt.Errorf("unsupported migration command %q", command)
	}

	logger.Info("Executing migrations", "command", command, "args", args)
	if err := postgres.Migrate(ctx, db, logger, command, args...); err != nil {
		return err
	}
	logger.Info("Migrations finished", "command", command)
	return nil
}
