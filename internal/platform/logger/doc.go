// Package logger provides structured logging functionality for the application.
//
// It builds on log/slog with a JSON handler on stdout and carries
// request-scoped loggers through context.Context so that every log line
// written while serving a request, or while running a background task,
// carries the same correlation fields.
package logger
