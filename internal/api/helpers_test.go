package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/gearcast-api/internal/api/middleware"
	"github.com/phrazzld/gearcast-api/internal/domain"
	"github.com/phrazzld/gearcast-api/internal/generation"
	"github.com/phrazzld/gearcast-api/internal/mocks"
	"github.com/phrazzld/gearcast-api/internal/service"
	"github.com/stretchr/testify/require"
)

const (
	drillID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	sawID   = "16fd2706-8baf-433b-82eb-8c7fada847da"
	// unknownID is well formed but never stored.
	unknownID = "9b2f4a70-0000-4000-8000-000000000000"

	testMaxUpload = 1024
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// apiFixture wires real services over in-memory stores behind the same
// routes the server registers.
type apiFixture struct {
	router    http.Handler
	equipment *mocks.MockEquipmentStore
	videos    *mocks.MockVideoStore
	blobs     *mocks.MockBlobStore
	emitter   *mocks.MockEventEmitter
}

func newAPIFixture(t *testing.T, equipment []*domain.Equipment, videos ...*domain.Video) apiFixture {
	t.Helper()

	f := apiFixture{
		equipment: mocks.NewMockEquipmentStore(equipment...),
		videos:    mocks.NewMockVideoStore(videos...),
		blobs:     mocks.NewMockBlobStore(),
		emitter:   &mocks.MockEventEmitter{},
	}

	equipmentSvc, err := service.NewEquipmentService(
		f.equipment, f.blobs, service.Buckets{Manuals: "manuals", Images: "images"}, nil, testLogger())
	require.NoError(t, err)
	videoSvc, err := service.NewVideoService(
		equipmentSvc, f.videos, &mocks.MockProvider{}, generation.DefaultParams(), f.emitter, testLogger())
	require.NoError(t, err)

	eh := NewEquipmentHandler(equipmentSvc, testMaxUpload, testLogger())
	vh := NewVideoHandler(videoSvc, testLogger())

	r := chi.NewRouter()
	r.Use(middleware.Trace(testLogger()))
	r.Route("/equipments", func(r chi.Router) {
		r.Post("/", eh.Create)
		r.Get("/", eh.List)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", eh.Get)
			r.Patch("/", eh.Update)
			r.Post("/manuals", eh.AttachManual)
			r.Delete("/manuals", eh.RemoveManual)
			r.Post("/images", eh.AttachImage)
			r.Delete("/images", eh.RemoveImage)
			r.Post("/videos", vh.Create)
			r.Get("/videos", vh.ListForEquipment)
		})
	})
	r.Route("/videos", func(r chi.Router) {
		r.Get("/", vh.List)
		r.Get("/{id}", vh.Get)
		r.Delete("/{id}", vh.Delete)
	})
	f.router = r
	return f
}

func (f apiFixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

// requireError checks the status and the {"error","trace_id"} body.
func requireError(t *testing.T, w *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	require.Equal(t, status, w.Code, "body: %s", w.Body.String())
	body := decodeBody[map[string]string](t, w)
	require.Equal(t, message, body["error"])
	require.Len(t, body["trace_id"], 32)
}

func drillWithImage() *domain.Equipment {
	return &domain.Equipment{
		ID:      uuid.MustParse(drillID),
		Name:    "Drill",
		Manuals: []string{},
		Images:  []string{"https://blobs.test/images/" + drillID + "/a-front.jpg"},
	}
}

func bareSaw() *domain.Equipment {
	return &domain.Equipment{ID: uuid.MustParse(sawID), Name: "Saw", Manuals: []string{}, Images: []string{}}
}
