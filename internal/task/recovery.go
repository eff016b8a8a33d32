package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/gearcast-api/internal/domain"
	"github.com/phrazzld/gearcast-api/internal/events"
)

// QueuedVideoLister lists videos by status.
type QueuedVideoLister interface {
	ListByStatus(ctx context.Context, status domain.VideoStatus) ([]*domain.Video, error)
}

// QueuedVideoRecovery rebuilds generation tasks for videos still queued.
// A queued video was never picked up by a worker: either the process
// stopped first or its task was lost with the in-memory queue.
type QueuedVideoRecovery struct {
	videos  QueuedVideoLister
	factory *VideoGenerationTaskFactory
	logger  *slog.Logger
}

// NewQueuedVideoRecovery creates a RecoverySource over queued videos.
func NewQueuedVideoRecovery(
	videos QueuedVideoLister,
	factory *VideoGenerationTaskFactory,
	logger *slog.Logger,
) *QueuedVideoRecovery {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueuedVideoRecovery{
		videos:  videos,
		factory: factory,
		logger:  logger.With("component", "queued_video_recovery"),
	}
}

var _ RecoverySource = (*QueuedVideoRecovery)(nil)

// RecoverTasks returns one task per queued video, oldest first. Videos that
// already carry a provider task ID were accepted by the provider before the
// process stopped and are left alone.
func (r *QueuedVideoRecovery) RecoverTasks(ctx context.Context) ([]Task, error) {
	videos, err := r.videos.ListByStatus(ctx, domain.VideoStatusQueued)
	if err != nil {
		return nil, fmt.Errorf("failed to list queued videos: %w", err)
	}

	tasks := make([]Task, 0, len(videos))
	for _, v := range videos {
		if v.Status.IsTerminal() || v.ProviderTaskID != "" {
			r.logger.Warn("skipping video already handed to the provider",
				"video_id", v.ID,
				"status", v.Status,
				"provider_task_id", v.ProviderTaskID)
			continue
		}
		task, err := r.factory.CreateTask(events.VideoGenerationPayload{
			VideoID:     v.ID,
			EquipmentID: v.EquipmentID,
			Prompt:      v.Prompt,
		})
		if err != nil {
			r.logger.Error("skipping queued video", "video_id", v.ID, "error", err)
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
