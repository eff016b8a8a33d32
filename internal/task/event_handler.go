package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/gearcast-api/internal/events"
)

// TaskFactory builds video generation tasks from event payloads.
type TaskFactory interface {
	CreateTask(payload events.VideoGenerationPayload) (Task, error)
}

// TaskSubmitter accepts tasks for background execution.
type TaskSubmitter interface {
	Submit(ctx context.Context, task Task) error
}

// DispatchHandler turns video generation events into tasks and hands them
// to a submitter.
type DispatchHandler struct {
	factory   TaskFactory
	submitter TaskSubmitter
	logger    *slog.Logger
}

var _ events.Handler = (*DispatchHandler)(nil)

// NewDispatchHandler wires factory output into submitter.
func NewDispatchHandler(factory TaskFactory, submitter TaskSubmitter, logger *slog.Logger) *DispatchHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DispatchHandler{
		factory:   factory,
		submitter: submitter,
		logger:    logger.With("component", "dispatch_handler"),
	}
}

// Handle builds a task from a video generation event and submits it.
// Events of other types are ignored.
func (h *DispatchHandler) Handle(ctx context.Context, event *events.Event) error {
	log := h.logger.With("event_id", event.ID, "event_type", event.Type)
	if event.Type != events.TypeVideoGeneration {
		log.DebugContext(ctx, "event ignored")
		return nil
	}

	var payload events.VideoGenerationPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		return fmt.Errorf("decode video generation payload: %w", err)
	}

	t, err := h.factory.CreateTask(payload)
	if err != nil {
		return fmt.Errorf("build task for video %s: %w", payload.VideoID, err)
	}
	if err := h.submitter.Submit(ctx, t); err != nil {
		log.WarnContext(ctx, "task rejected", "video_id", payload.VideoID, "error", err)
		return fmt.Errorf("submit task for video %s: %w", payload.VideoID, err)
	}

	log.InfoContext(ctx, "task submitted",
		"video_id", payload.VideoID,
		"equipment_id", payload.EquipmentID)
	return nil
}
