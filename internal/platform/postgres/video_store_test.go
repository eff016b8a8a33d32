package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/gearcast-api/internal/domain"
	"github.com/phrazzld/gearcast-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var videoID = uuid.MustParse("9d2f4c1a-7b3e-4e5f-8a6b-1c2d3e4f5a66")

var videoColumns = []string{"id", "equipment_id", "created_at", "status", "result_url", "prompt", "task_id"}

func newTestVideoStore(t *testing.T) (*PostgresVideoStore, sqlmock.Sqlmock, time.Time) {
	t.Helper()
	db, mock := newMockDB(t)
	s := NewPostgresVideoStore(db, nil)
	fixed := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	return s, mock, fixed
}

func TestPostgresVideoStore_Create(t *testing.T) {
	s, mock, _ := newTestVideoStore(t)

	v := domain.NewVideo(equipmentID, "spinning drill")
	mock.ExpectExec("INSERT INTO videos").
		WithArgs(v.ID, equipmentID, "spinning drill", "queued", "", nil, v.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Create(context.Background(), v))
}

func TestPostgresVideoStore_ReadCoercions(t *testing.T) {
	s, mock, fixed := newTestVideoStore(t)

	mock.ExpectQuery("FROM videos ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows(videoColumns).
			AddRow(videoID.String(), equipmentID.String(), "2024-05-06T07:08:09Z", "SUCCESS", "https://cdn/v.mp4", "drill", "task-1").
			AddRow(otherID.String(), nil, "garbage", "completed", "   ", "", nil).
			AddRow(equipmentID.String(), equipmentID.String(), nil, nil, nil, nil, nil))

	list, err := s.List(context.Background(), uuid.Nil)
	require.NoError(t, err)
	require.Len(t, list, 3)

	first := list[0]
	assert.Equal(t, domain.VideoStatusSuccess, first.Status)
	assert.Equal(t, "https://cdn/v.mp4", first.ResultURL)
	assert.Equal(t, "task-1", first.ProviderTaskID)
	assert.Equal(t, time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC), first.CreatedAt)

	second := list[1]
	assert.Equal(t, uuid.Nil, second.EquipmentID)
	assert.Equal(t, domain.VideoStatusProcessing, second.Status)
	assert.Empty(t, second.ResultURL)
	assert.Equal(t, fixed, second.CreatedAt)
	assert.Empty(t, second.ProviderTaskID)

	third := list[2]
	assert.Equal(t, domain.VideoStatusProcessing, third.Status)
	assert.Equal(t, fixed, third.CreatedAt)
}

func TestPostgresVideoStore_ListByEquipment(t *testing.T) {
	t.Run("filters by equipment", func(t *testing.T) {
		s, mock, _ := newTestVideoStore(t)

		mock.ExpectQuery("WHERE equipment_id = \\$1 ORDER BY created_at DESC").
			WithArgs(equipmentID).
			WillReturnRows(sqlmock.NewRows(videoColumns).
				AddRow(videoID.String(), equipmentID.String(), "2024-05-06T07:08:09Z", "queued", "", "drill", nil))

		list, err := s.List(context.Background(), equipmentID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, equipmentID, list[0].EquipmentID)
	})

	t.Run("unknown equipment yields empty list", func(t *testing.T) {
		s, mock, _ := newTestVideoStore(t)

		mock.ExpectQuery("WHERE equipment_id = \\$1").
			WithArgs(otherID).
			WillReturnRows(sqlmock.NewRows(videoColumns))

		list, err := s.List(context.Background(), otherID)
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})
}

func TestPostgresVideoStore_ListByStatus(t *testing.T) {
	s, mock, _ := newTestVideoStore(t)

	mock.ExpectQuery("WHERE lower\\(status\\) = \\$1").
		WithArgs("queued").
		WillReturnRows(sqlmock.NewRows(videoColumns).
			AddRow(videoID.String(), equipmentID.String(), "2024-05-06T07:08:09Z", "queued", "", "drill", nil))

	list, err := s.ListByStatus(context.Background(), domain.VideoStatusQueued)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.VideoStatusQueued, list[0].Status)
}

func TestPostgresVideoStore_GetByID(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		s, mock, _ := newTestVideoStore(t)
		mock.ExpectQuery("FROM videos WHERE id = \\$1").
			WithArgs(videoID).
			WillReturnRows(sqlmock.NewRows(videoColumns))

		_, err := s.GetByID(context.Background(), videoID)
		assert.ErrorIs(t, err, store.ErrVideoNotFound)
	})

	t.Run("found", func(t *testing.T) {
		s, mock, _ := newTestVideoStore(t)
		mock.ExpectQuery("FROM videos WHERE id = \\$1").
			WithArgs(videoID).
			WillReturnRows(sqlmock.NewRows(videoColumns).
				AddRow(videoID.String(), nil, "2024-05-06T07:08:09Z", "processing", "", "drill", "task-1"))

		v, err := s.GetByID(context.Background(), videoID)
		require.NoError(t, err)
		assert.Equal(t, videoID, v.ID)
		assert.Equal(t, uuid.Nil, v.EquipmentID)
		assert.Equal(t, "task-1", v.ProviderTaskID)
	})
}

func TestPostgresVideoStore_Update(t *testing.T) {
	t.Run("writes status url and task id", func(t *testing.T) {
		s, mock, _ := newTestVideoStore(t)

		url, taskID := "https://cdn/v.mp4", "task-1"
		mock.ExpectExec("UPDATE videos").
			WithArgs("success", url, taskID, videoID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := s.Update(context.Background(), videoID, store.VideoUpdate{
			Status:         domain.VideoStatusSuccess,
			ResultURL:      &url,
			ProviderTaskID: &taskID,
		})
		require.NoError(t, err)
	})

	t.Run("nil fields keep stored values", func(t *testing.T) {
		s, mock, _ := newTestVideoStore(t)

		mock.ExpectExec("UPDATE videos").
			WithArgs("failed", nil, nil, videoID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Update(context.Background(), videoID, store.VideoUpdate{
			Status: domain.VideoStatusFailed,
		}))
	})

	t.Run("deleted row is a no-op", func(t *testing.T) {
		s, mock, _ := newTestVideoStore(t)

		mock.ExpectExec("UPDATE videos").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, s.Update(context.Background(), videoID, store.VideoUpdate{
			Status: domain.VideoStatusFailed,
		}))
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		s, _, _ := newTestVideoStore(t)

		err := s.Update(context.Background(), videoID, store.VideoUpdate{Status: "done"})
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}

func TestPostgresVideoStore_Delete(t *testing.T) {
	s, mock, _ := newTestVideoStore(t)

	mock.ExpectExec("DELETE FROM videos WHERE id = \\$1").
		WithArgs(videoID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM videos WHERE id = \\$1").
		WithArgs(videoID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.Delete(context.Background(), videoID))
	assert.ErrorIs(t, s.Delete(context.Background(), videoID), store.ErrVideoNotFound)
}
