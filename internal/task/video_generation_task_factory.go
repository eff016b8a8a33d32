package task

import (
	"log/slog"

	"github.com/phrazzld/gearcast-api/internal/events"
)

// VideoGenerationTaskFactory creates VideoGenerationTask instances
type VideoGenerationTaskFactory struct {
	generator VideoGenerator
	logger    *slog.Logger
}

// NewVideoGenerationTaskFactory creates a new factory for VideoGenerationTasks
func NewVideoGenerationTaskFactory(generator VideoGenerator, logger *slog.Logger) *VideoGenerationTaskFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &VideoGenerationTaskFactory{
		generator: generator,
		logger:    logger.With("component", "video_generation_task_factory"),
	}
}

// CreateTask creates a new VideoGenerationTask for the payload
func (f *VideoGenerationTaskFactory) CreateTask(payload events.VideoGenerationPayload) (Task, error) {
	task, err := NewVideoGenerationTask(payload, f.generator, f.logger)
	if err != nil {
		return nil, err
	}
	return task, nil
}
