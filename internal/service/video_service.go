package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/gearcast-api/internal/domain"
	"github.com/phrazzld/gearcast-api/internal/events"
	"github.com/phrazzld/gearcast-api/internal/generation"
	"github.com/phrazzld/gearcast-api/internal/redact"
	"github.com/phrazzld/gearcast-api/internal/store"
)

// EquipmentLookup resolves equipment by id.
type EquipmentLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Equipment, error)
}

// VideoService manages video generation tasks.
type VideoService interface {
	// CreateTask records a queued video and schedules its generation. It
	// fails with a validation error when the equipment is missing or has
	// no images, and returns without waiting for the provider.
	CreateTask(ctx context.Context, equipmentID uuid.UUID, prompt string) (*domain.Video, error)

	// RunGeneration calls the provider for a queued video and records the
	// outcome. It is run by background workers.
	RunGeneration(ctx context.Context, videoID, equipmentID uuid.UUID, prompt string) error

	// ListTasks returns videos newest first. uuid.Nil lists every video;
	// any other id restricts the list to that equipment.
	ListTasks(ctx context.Context, equipmentID uuid.UUID) ([]*domain.Video, error)

	// GetTask returns one video or domain.ErrVideoNotFound.
	GetTask(ctx context.Context, id uuid.UUID) (*domain.Video, error)

	// DeleteTask removes a video in any status.
	DeleteTask(ctx context.Context, id uuid.UUID) error
}

type videoServiceImpl struct {
	equipment EquipmentLookup
	videos    store.VideoStore
	provider  generation.Provider
	params    generation.Params
	emitter   events.Emitter
	logger    *slog.Logger
}

// NewVideoService creates a VideoService.
func NewVideoService(
	equipment EquipmentLookup,
	videos store.VideoStore,
	provider generation.Provider,
	params generation.Params,
	emitter events.Emitter,
	logger *slog.Logger,
) (VideoService, error) {
	if equipment == nil {
		return nil, &ServiceError{Service: "video", Operation: "create_service", Message: "equipment lookup cannot be nil"}
	}
	if videos == nil {
		return nil, &ServiceError{Service: "video", Operation: "create_service", Message: "video store cannot be nil"}
	}
	if provider == nil {
		return nil, &ServiceError{Service: "video", Operation: "create_service", Message: "provider cannot be nil"}
	}
	if emitter == nil {
		return nil, &ServiceError{Service: "video", Operation: "create_service", Message: "event emitter cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &videoServiceImpl{
		equipment: equipment,
		videos:    videos,
		provider:  provider,
		params:    params,
		emitter:   emitter,
		logger:    logger.With("component", "video_service"),
	}, nil
}

func (s *videoServiceImpl) CreateTask(ctx context.Context, equipmentID uuid.UUID, prompt string) (*domain.Video, error) {
	equipment, err := s.equipment.Get(ctx, equipmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEquipmentIneligible
		}
		return nil, NewServiceError("video", "create_task", "failed to load equipment", err)
	}
	if !equipment.HasImages() {
		return nil, domain.ErrEquipmentNoImages
	}

	video := domain.NewVideo(equipmentID, prompt)
	if err := s.videos.Create(ctx, video); err != nil {
		s.logger.ErrorContext(ctx, "failed to create video", "error", err, "equipment_id", equipmentID)
		return nil, NewServiceError("video", "create_task", "failed to save video", err)
	}

	log := s.logger.With("video_id", video.ID, "equipment_id", equipmentID)
	log.InfoContext(ctx, "video task created")

	if err := s.dispatch(ctx, video); err != nil {
		// Nothing will ever pick this video up; close it out as failed.
		log.ErrorContext(ctx, "failed to schedule video generation, marking failed", "error", err)
		s.record(ctx, video.ID, store.VideoUpdate{Status: domain.VideoStatusFailed})
		video.Status = domain.VideoStatusFailed
	}

	return video, nil
}

func (s *videoServiceImpl) dispatch(ctx context.Context, video *domain.Video) error {
	event, err := events.NewVideoGenerationEvent(video.ID, video.EquipmentID, video.Prompt)
	if err != nil {
		return err
	}
	return s.emitter.Emit(ctx, event)
}

func (s *videoServiceImpl) RunGeneration(ctx context.Context, videoID, equipmentID uuid.UUID, prompt string) error {
	log := s.logger.With("video_id", videoID, "equipment_id", equipmentID, "provider", s.provider.Name())

	equipment, err := s.equipment.Get(ctx, equipmentID)
	if err != nil {
		log.WarnContext(ctx, "equipment unavailable for generation", "error", redact.Error(err))
		return s.record(ctx, videoID, store.VideoUpdate{Status: domain.VideoStatusFailed})
	}
	if !equipment.HasImages() {
		log.WarnContext(ctx, "equipment has no images for generation")
		return s.record(ctx, videoID, store.VideoUpdate{Status: domain.VideoStatusFailed})
	}

	req := generation.NewRequest(s.params, prompt, equipment.Images)
	resp, err := s.provider.GenerateVideo(ctx, req)
	if err != nil {
		log.ErrorContext(ctx, "video provider call failed", "error", redact.Error(err))
		return s.record(ctx, videoID, store.VideoUpdate{Status: domain.VideoStatusFailed})
	}

	outcome := generation.Normalize(resp)
	update := store.VideoUpdate{
		Status:    outcome.Status,
		ResultURL: &outcome.ResultURL,
	}
	if outcome.ProviderTaskID != "" {
		update.ProviderTaskID = &outcome.ProviderTaskID
	}

	log.InfoContext(ctx, "video generation finished",
		"status", outcome.Status,
		"provider_task_id", outcome.ProviderTaskID,
		"has_result", outcome.ResultURL != "")
	return s.record(ctx, videoID, update)
}

// record writes a status change. A row deleted in the meantime makes this
// a no-op in the store.
func (s *videoServiceImpl) record(ctx context.Context, videoID uuid.UUID, update store.VideoUpdate) error {
	if err := s.videos.Update(ctx, videoID, update); err != nil {
		s.logger.ErrorContext(ctx, "failed to record video status",
			"error", err,
			"video_id", videoID,
			"status", update.Status)
		return NewServiceError("video", "record_status", "failed to record video status", err)
	}
	return nil
}

func (s *videoServiceImpl) ListTasks(ctx context.Context, equipmentID uuid.UUID) ([]*domain.Video, error) {
	videos, err := s.videos.List(ctx, equipmentID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list videos", "error", err, "equipment_id", equipmentID)
		return nil, NewServiceError("video", "list_tasks", "failed to list videos", err)
	}
	return videos, nil
}

func (s *videoServiceImpl) GetTask(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	video, err := s.videos.GetByID(ctx, id)
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.ErrorContext(ctx, "failed to get video", "error", err, "video_id", id)
		}
		return nil, NewServiceError("video", "get_task", "failed to get video", err)
	}
	return video, nil
}

func (s *videoServiceImpl) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if err := s.videos.Delete(ctx, id); err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.ErrorContext(ctx, "failed to delete video", "error", err, "video_id", id)
		}
		return NewServiceError("video", "delete_task", "failed to delete video", err)
	}
	s.logger.InfoContext(ctx, "video deleted", "video_id", id)
	return nil
}
