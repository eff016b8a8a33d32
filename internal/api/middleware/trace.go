// Package middleware holds HTTP middleware shared by all routes.
package middleware

import (
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/gearcast-api/internal/api/shared"
	"github.com/phrazzld/gearcast-api/internal/platform/logger"
)

// Trace adds a trace ID to the request context and stores a logger tagged
// with it, so handlers and error replies share the same ID. A chi request ID,
// when present, is carried along. It should run before any handler that logs.
func Trace(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			if reqID := chimw.GetReqID(ctx); reqID != "" {
				ctx = logger.WithRequestID(ctx, reqID)
			}
			log := logger.FromContextOrDefault(ctx, base).
				With(slog.String("trace_id", shared.GetTraceID(ctx)))

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(logger.WithLogger(ctx, log)))
		})
	}
}
