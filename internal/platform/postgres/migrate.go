package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/phrazzld/gearcast-api/internal/platform/postgres/migrations"
	"github.com/pressly/goose/v3"
)

// MigrationTableName is the table goose uses to track applied migrations.
const MigrationTableName = "schema_migrations"

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

// slogGooseLogger adapts slog to goose.Logger.
type slogGooseLogger struct {
	log *slog.Logger
}

func (l *slogGooseLogger) Printf(format string, v ...any) {
	l.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *slogGooseLogger) Fatalf(format string, v ...any) {
	// Does not exit; goose also returns the error to Migrate.
	l.log.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Migrate runs a goose command (up, down, status, version, reset, redo)
// against db using the embedded migrations.
func Migrate(ctx context.Context, db *sql.DB, log *slog.Logger, command string, args ...string) error {
	if log == nil {
		log = slog.Default()
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetLogger(&slogGooseLogger{log: log.With("component", "migrations")})
	goose.SetBaseFS(migrations.FS)
	goose.SetTableName(MigrationTableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, ".", args...); err != nil {
		return fmt.Errorf("migration command %q failed: %w", command, err)
	}
	return nil
}
