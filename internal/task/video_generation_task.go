package task

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/gearcast-api/internal/events"
)

// Common errors
var (
	ErrNilGenerator = errors.New("video generator cannot be nil")
	ErrEmptyVideoID = errors.New("video ID cannot be empty")
)

// VideoGenerator performs a generation run and records its outcome on the
// video. The returned error only reports a run that could not record its
// outcome; provider failures are written to the video as failed.
type VideoGenerator interface {
	RunGeneration(ctx context.Context, videoID, equipmentID uuid.UUID, prompt string) error
}

// VideoGenerationTask runs one video through the inference provider.
type VideoGenerationTask struct {
	payload   events.VideoGenerationPayload
	generator VideoGenerator
	logger    *slog.Logger
}

// NewVideoGenerationTask creates a task for the given payload.
func NewVideoGenerationTask(
	payload events.VideoGenerationPayload,
	generator VideoGenerator,
	logger *slog.Logger,
) (*VideoGenerationTask, error) {
	if payload.VideoID == uuid.Nil {
		return nil, ErrEmptyVideoID
	}
	if generator == nil {
		return nil, ErrNilGenerator
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &VideoGenerationTask{
		payload:   payload,
		generator: generator,
		logger: logger.With(
			"task_kind", KindVideoGeneration,
			"video_id", payload.VideoID,
			"equipment_id", payload.EquipmentID,
		),
	}, nil
}

// ID returns the video ID.
func (t *VideoGenerationTask) ID() uuid.UUID {
	return t.payload.VideoID
}

// Kind returns KindVideoGeneration.
func (t *VideoGenerationTask) Kind() Kind {
	return KindVideoGeneration
}

// Execute runs the generation.
func (t *VideoGenerationTask) Execute(ctx context.Context) error {
	t.logger.InfoContext(ctx, "starting video generation")
	return t.generator.RunGeneration(ctx, t.payload.VideoID, t.payload.EquipmentID, t.payload.Prompt)
}
