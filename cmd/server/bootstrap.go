package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/gearcast-api/internal/config"
	"github.com/phrazzld/gearcast-api/internal/platform/logger"
	"github.com/phrazzld/gearcast-api/internal/platform/postgres"
)

// bootstrap loads configuration, installs the JSON logger and opens the
// database pool. Both the server and the -migrate mode start here.
func bootstrap(ctx context.Context) (*config.Config, *slog.Logger, *sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"storage_backend", cfg.Storage.Backend,
		"provider", cfg.Provider.Name)

	db, err := postgres.Open(ctx, cfg.Database.URL, postgres.PoolConfig{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	log.Info("database pool ready",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns)

	return cfg, log, db, nil
}
