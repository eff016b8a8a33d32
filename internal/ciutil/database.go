package ciutil

import (
	"log/slog"
)

// GetTestDatabaseURL returns the database URL for integration tests, or ""
// when none is configured. DATABASE_URL wins over GEARCAST_TEST_DB_URL,
// which wins over GEARCAST_DATABASE_URL.
func GetTestDatabaseURL(logger *slog.Logger) string {
	dbURL := GetEnvWithFallbacks(
		[]string{EnvDatabaseURL, EnvGearcastTestDBURL, EnvGearcastDatabaseURL},
		"",
		logger,
	)
	if dbURL == "" && logger != nil {
		logger.Info("No database URL environment variables found", "ci", IsCI())
	}
	return dbURL
}
