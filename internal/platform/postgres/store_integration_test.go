//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/phrazzld/gearcast-api/internal/domain"
	"github.com/phrazzld/gearcast-api/internal/platform/postgres"
	"github.com/phrazzld/gearcast-api/internal/store"
	"github.com/phrazzld/gearcast-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquipmentStore_Integration(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		equipments := postgres.NewPostgresEquipmentStore(tx, nil)

		drill, err := domain.NewEquipment("Drill")
		require.NoError(t, err)
		require.NoError(t, equipments.Create(ctx, drill))

		got, err := equipments.GetByID(ctx, drill.ID)
		require.NoError(t, err)
		assert.Equal(t, "Drill", got.Name)
		assert.Equal(t, []string{}, got.Images)

		got.AppendAsset(domain.AssetKindImage, "https://cdn/a.png")
		got.AppendAsset(domain.AssetKindImage, "https://cdn/a.png")
		got.AppendAsset(domain.AssetKindManual, "https://cdn/m.pdf")
		require.NoError(t, equipments.Update(ctx, got))

		reloaded, err := equipments.GetByID(ctx, drill.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"https://cdn/a.png", "https://cdn/a.png"}, reloaded.Images)
		assert.Equal(t, []string{"https://cdn/m.pdf"}, reloaded.Manuals)

		_, err = tx.ExecContext(ctx, `UPDATE equipments SET manuals = NULL WHERE id = $1`, drill.ID)
		require.NoError(t, err)
		reloaded, err = equipments.GetByID(ctx, drill.ID)
		require.NoError(t, err)
		assert.NotNil(t, reloaded.Manuals)
		assert.Empty(t, reloaded.Manuals)

		missing, _ := domain.NewEquipment("Ghost")
		_, err = equipments.GetByID(ctx, missing.ID)
		assert.ErrorIs(t, err, store.ErrEquipmentNotFound)
		assert.ErrorIs(t, equipments.Update(ctx, missing), store.ErrEquipmentNotFound)

		list, err := equipments.List(ctx)
		require.NoError(t, err)
		found := false
		for _, e := range list {
			found = found || e.ID == drill.ID
		}
		assert.True(t, found)
	})
}

func TestVideoStore_Integration(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		equipments := postgres.NewPostgresEquipmentStore(tx, nil)
		videos := postgres.NewPostgresVideoStore(tx, nil)

		drill, err := domain.NewEquipment("Drill")
		require.NoError(t, err)
		require.NoError(t, equipments.Create(ctx, drill))

		older := domain.NewVideo(drill.ID, "first")
		older.CreatedAt = time.Now().UTC().Add(-time.Hour)
		newer := domain.NewVideo(drill.ID, "second")
		require.NoError(t, videos.Create(ctx, older))
		require.NoError(t, videos.Create(ctx, newer))

		list, err := videos.List(ctx, drill.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, newer.ID, list[0].ID)
		assert.Equal(t, older.ID, list[1].ID)

		queued, err := videos.ListByStatus(ctx, domain.VideoStatusQueued)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(queued), 2)

		url, taskID := "https://cdn/v.mp4", "task-1"
		require.NoError(t, videos.Update(ctx, newer.ID, store.VideoUpdate{
			Status:         domain.VideoStatusSuccess,
			ResultURL:      &url,
			ProviderTaskID: &taskID,
		}))
		got, err := videos.GetByID(ctx, newer.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.VideoStatusSuccess, got.Status)
		assert.Equal(t, url, got.ResultURL)
		assert.Equal(t, taskID, got.ProviderTaskID)

		_, err = tx.ExecContext(ctx, `UPDATE videos SET status = 'Exploded' WHERE id = $1`, older.ID)
		require.NoError(t, err)
		got, err = videos.GetByID(ctx, older.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.VideoStatusProcessing, got.Status)

		require.NoError(t, videos.Delete(ctx, older.ID))
		assert.ErrorIs(t, videos.Delete(ctx, older.ID), store.ErrVideoNotFound)
		assert.NoError(t, videos.Update(ctx, older.ID, store.VideoUpdate{Status: domain.VideoStatusFailed}))
	})
}
