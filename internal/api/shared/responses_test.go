package shared

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/gearcast-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tracedRequest returns a request whose context carries a fixed trace ID and
// a debug logger writing into buf.
func tracedRequest(buf *strings.Builder) *http.Request {
	l := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.WithValue(context.Background(), TraceIDKey, "test-trace-id")
	ctx = logger.WithLogger(ctx, l)
	return httptest.NewRequest(http.MethodGet, "/videos", nil).WithContext(ctx)
}

func TestRespondWithJSON(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/equipments", nil)

	RespondWithJSON(w, req, http.StatusCreated, map[string]any{"id": "e1", "images": []string{}})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"e1","images":[]}`, w.Body.String())
}

func TestRespondWithJSONNil(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithJSON(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, nil)
	assert.Equal(t, "null\n", w.Body.String())
}

type cyclic struct {
	Next *cyclic
}

func TestRespondWithJSONEncodingError(t *testing.T) {
	var buf strings.Builder
	w := httptest.NewRecorder()

	data := &cyclic{}
	data.Next = data
	RespondWithJSON(w, tracedRequest(&buf), http.StatusOK, data)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, buf.String(), "failed to encode JSON response")
}

func TestRespondWithError(t *testing.T) {
	var buf strings.Builder
	w := httptest.NewRecorder()

	RespondWithError(w, tracedRequest(&buf), http.StatusNotFound, "Video not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{Error: "Video not found", TraceID: "test-trace-id"}, body)
}

func TestRespondWithErrorNoTraceID(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithError(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusBadRequest, "bad")

	assert.JSONEq(t, `{"error":"bad","trace_id":""}`, w.Body.String())
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		elevate   bool
		wantLevel string
	}{
		{name: "server error", status: http.StatusInternalServerError, wantLevel: "level=ERROR"},
		{name: "client error", status: http.StatusBadRequest, wantLevel: "level=DEBUG"},
		{name: "elevated client error", status: http.StatusBadRequest, elevate: true, wantLevel: "level=WARN"},
		{name: "rate limited", status: http.StatusTooManyRequests, wantLevel: "level=WARN"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf strings.Builder
			w := httptest.NewRecorder()

			var opts []ResponseOption
			if tc.elevate {
				opts = append(opts, WithElevatedLogLevel())
			}
			err := errors.New("connect postgres://admin:hunter2@db:5432/gear failed")
			RespondWithErrorAndLog(w, tracedRequest(&buf), tc.status, "Something went wrong", err, opts...)

			assert.Equal(t, tc.status, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "Something went wrong", body.Error)
			assert.Equal(t, "test-trace-id", body.TraceID)
			assert.NotContains(t, w.Body.String(), "hunter2")

			out := buf.String()
			assert.Contains(t, out, tc.wantLevel)
			assert.Contains(t, out, "trace_id=test-trace-id")
			assert.Contains(t, out, "error_type=")
			assert.NotContains(t, out, "hunter2")
		})
	}
}
