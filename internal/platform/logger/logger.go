package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LoggerConfig holds the settings used by Setup.
type LoggerConfig struct {
	// Level is one of debug, info, warn or error. Unknown values fall back to info.
	Level string
	// AddSource includes the caller's file and line in every record.
	AddSource bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

type contextKey string

const (
	loggerKey    contextKey = "logger"
	requestIDKey contextKey = "request_id"
)

// ParseLevel maps a configured level name to a slog.Level.
// The second return value is false when the name was not recognized.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Setup creates a structured JSON logger from cfg and installs it as the
// slog default.
func Setup(cfg LoggerConfig) (*slog.Logger, error) {
	level, ok := ParseLevel(cfg.Level)

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	})
	l := slog.New(handler)
	slog.SetDefault(l)

	if !ok {
		l.Warn("invalid log level configured, using default level",
			"configured_level", cfg.Level,
			"default_level", "info")
	}

	return l, nil
}

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOrDefault(ctx, slog.Default())
}

// FromContextOrDefault returns the logger stored in ctx, or fallback when
// none was set. A request ID found in ctx is attached to the result.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if fallback == nil {
		fallback = slog.Default()
	}
	if ctx == nil {
		return fallback
	}

	l, ok := ctx.Value(loggerKey).(*slog.Logger)
	if !ok || l == nil {
		l = fallback
		if id := RequestIDFromContext(ctx); id != "" {
			l = l.With("request_id", id)
		}
	}
	return l
}

// WithRequestID returns a copy of ctx carrying the given request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request ID stored in ctx, if any.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
