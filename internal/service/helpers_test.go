package service

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/gearcast-api/internal/domain"
	"github.com/phrazzld/gearcast-api/internal/mocks"
	"github.com/stretchr/testify/require"
)

var testBuckets = Buckets{Manuals: "manuals", Images: "images"}

const (
	eq1    = "5f0c2f8e-8a52-4a8e-9d55-0a3c52f3c001"
	drill1 = "5f0c2f8e-8a52-4a8e-9d55-0a3c52f3c002"
	saw1   = "5f0c2f8e-8a52-4a8e-9d55-0a3c52f3c003"
)

var (
	eq1ID     = uuid.MustParse(eq1)
	drillID   = uuid.MustParse(drill1)
	sawID     = uuid.MustParse(saw1)
	missingID = uuid.MustParse("5f0c2f8e-8a52-4a8e-9d55-0a3c52f3cfff")
	videoID   = uuid.MustParse("9d2f4c1a-7b3e-4e5f-8a6b-1c2d3e4f5a66")
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type equipmentFixture struct {
	svc   EquipmentService
	store *mocks.MockEquipmentStore
	blobs *mocks.MockBlobStore
}

func newEquipmentFixture(t *testing.T, seed ...*domain.Equipment) equipmentFixture {
	t.Helper()
	f := equipmentFixture{
		store: mocks.NewMockEquipmentStore(seed...),
		blobs: mocks.NewMockBlobStore(),
	}
	svc, err := NewEquipmentService(f.store, f.blobs, testBuckets, nil, testLogger())
	require.NoError(t, err)
	f.svc = svc
	return f
}

func equipmentWith(id uuid.UUID, name string, images ...string) *domain.Equipment {
	return &domain.Equipment{ID: id, Name: name, Manuals: []string{}, Images: append([]string{}, images...)}
}
