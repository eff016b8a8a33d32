package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/gearcast-api/internal/domain"
	"github.com/phrazzld/gearcast-api/internal/platform/logger"
	"github.com/phrazzld/gearcast-api/internal/store"
)

// PostgresVideoStore implements store.VideoStore using PostgreSQL.
type PostgresVideoStore struct {
	db     store.DBTX
	logger *slog.Logger
	now    func() time.Time
}

// NewPostgresVideoStore creates a new PostgresVideoStore.
// If logger is nil, a default logger will be used.
func NewPostgresVideoStore(db store.DBTX, logger *slog.Logger) *PostgresVideoStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresVideoStore{
		db:     db,
		logger: logger.With(slog.String("component", "video_store")),
		now:    time.Now,
	}
}

var _ store.VideoStore = (*PostgresVideoStore)(nil)

// Create implements store.VideoStore.Create.
func (s *PostgresVideoStore) Create(ctx context.Context, video *domain.Video) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !video.Status.Valid() {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrInvalidVideoStatus)
	}

	query := `
		INSERT INTO videos (id, equipment_id, prompt, status, result_url, task_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		video.ID,
		nullUUID(video.EquipmentID),
		video.Prompt,
		string(video.Status),
		video.ResultURL,
		nullString(video.ProviderTaskID),
		video.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create video",
			slog.String("video_id", video.ID.String()),
			slog.String("equipment_id", video.EquipmentID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("video task created",
		slog.String("video_id", video.ID.String()),
		slog.String("equipment_id", video.EquipmentID.String()),
		slog.String("status", string(video.Status)))
	return nil
}

const selectVideo = `
	SELECT id, equipment_id, created_at, status, result_url, prompt, task_id
	FROM videos`

// scanVideo reads one row and applies the read-time coercions for status,
// result_url and created_at.
func (s *PostgresVideoStore) scanVideo(row interface{ Scan(...any) error }) (*domain.Video, error) {
	var (
		v           domain.Video
		equipmentID uuid.NullUUID
		createdAt   sql.NullString
		status      sql.NullString
		resultURL   sql.NullString
		prompt      sql.NullString
		taskID      sql.NullString
	)
	if err := row.Scan(&v.ID, &equipmentID, &createdAt, &status, &resultURL, &prompt, &taskID); err != nil {
		return nil, err
	}

	v.EquipmentID = equipmentID.UUID
	v.CreatedAt = domain.ParseCreatedAt(createdAt.String, s.now)
	v.Status = domain.ParseVideoStatus(status.String)
	v.ResultURL = domain.NormalizeResultURL(resultURL.String)
	v.Prompt = prompt.String
	v.ProviderTaskID = taskID.String
	return &v, nil
}

func (s *PostgresVideoStore) queryVideos(ctx context.Context, query string, args ...any) ([]*domain.Video, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query videos", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	result := []*domain.Video{}
	for rows.Next() {
		v, err := s.scanVideo(rows)
		if err != nil {
			log.Error("failed to scan video row", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return result, nil
}

// GetByID implements store.VideoStore.GetByID.
func (s *PostgresVideoStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	v, err := s.scanVideo(s.db.QueryRowContext(ctx, selectVideo+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrVideoNotFound
		}
		log.Error("failed to get video",
			slog.String("video_id", id.String()),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return v, nil
}

// List implements store.VideoStore.List.
func (s *PostgresVideoStore) List(ctx context.Context, equipmentID uuid.UUID) ([]*domain.Video, error) {
	if equipmentID == uuid.Nil {
		return s.queryVideos(ctx, selectVideo+` ORDER BY created_at DESC NULLS LAST, id`)
	}
	return s.queryVideos(ctx,
		selectVideo+` WHERE equipment_id = $1 ORDER BY created_at DESC NULLS LAST, id`,
		equipmentID)
}

// ListByStatus implements store.VideoStore.ListByStatus.
func (s *PostgresVideoStore) ListByStatus(ctx context.Context, status domain.VideoStatus) ([]*domain.Video, error) {
	return s.queryVideos(ctx,
		selectVideo+` WHERE lower(status) = $1 ORDER BY created_at ASC NULLS FIRST, id`,
		string(status))
}

// Update implements store.VideoStore.Update.
func (s *PostgresVideoStore) Update(ctx context.Context, id uuid.UUID, update store.VideoUpdate) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !update.Status.Valid() {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrInvalidVideoStatus)
	}

	query := `
		UPDATE videos
		SET status = $1,
			result_url = COALESCE($2, result_url),
			task_id = COALESCE($3, task_id)
		WHERE id = $4
	`
	result, err := s.db.ExecContext(ctx, query,
		string(update.Status),
		nullStringPtr(update.ResultURL),
		nullStringPtr(update.ProviderTaskID),
		id,
	)
	if err != nil {
		log.Error("failed to update video",
			slog.String("video_id", id.String()),
			slog.String("status", string(update.Status)),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// Deleted while the generation was running.
		log.Warn("no video found with ID to update",
			slog.String("video_id", id.String()),
			slog.String("status", string(update.Status)))
		return nil
	}

	log.Debug("video updated",
		slog.String("video_id", id.String()),
		slog.String("status", string(update.Status)))
	return nil
}

// Delete implements store.VideoStore.Delete.
func (s *PostgresVideoStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete video",
			slog.String("video_id", id.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}
	if err := requireRow(result, store.ErrVideoNotFound); err != nil {
		return err
	}

	log.Info("video deleted", slog.String("video_id", id.String()))
	return nil
}

func nullUUID(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: id != uuid.Nil}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
