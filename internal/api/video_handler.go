package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/gearcast-api/internal/api/shared"
	"github.com/phrazzld/gearcast-api/internal/domain"
	"github.com/phrazzld/gearcast-api/internal/platform/logger"
	"github.com/phrazzld/gearcast-api/internal/redact"
	"github.com/phrazzld/gearcast-api/internal/service"
)

// VideoHandler serves video task routes, both nested under an equipment and
// at /videos.
type VideoHandler struct {
	videos service.VideoService
	logger *slog.Logger
}

// NewVideoHandler creates a VideoHandler.
func NewVideoHandler(videos service.VideoService, logger *slog.Logger) *VideoHandler {
	if videos == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("video service cannot be nil for VideoHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for VideoHandler")
	}
	return &VideoHandler{
		videos: videos,
		logger: logger.With(slog.String("component", "video_handler")),
	}
}

// Create handles POST /equipments/{id}/videos. The reply is sent as soon as
// the task is recorded; generation happens in the background.
func (h *VideoHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	equipmentID, ok := pathID(r, "id")
	if !ok {
		HandleAPIError(w, r, domain.ErrEquipmentIneligible, "")
		return
	}

	var req CreateVideoRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	video, err := h.videos.CreateTask(r.Context(), equipmentID, req.Prompt)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create video task")
		return
	}

	log.Debug("video task created",
		slog.String("video_id", video.ID.String()),
		slog.String("status", string(video.Status)))
	shared.RespondWithJSON(w, r, http.StatusCreated, videoToResponse(video))
}

// ListForEquipment handles GET /equipments/{id}/videos.
func (h *VideoHandler) ListForEquipment(w http.ResponseWriter, r *http.Request) {
	equipmentID, ok := pathID(r, "id")
	if !ok {
		shared.RespondWithJSON(w, r, http.StatusOK, []VideoResponse{})
		return
	}
	h.list(w, r, equipmentID)
}

// List handles GET /videos with an optional equipment_id filter.
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	equipmentID := uuid.Nil
	if raw := r.URL.Query().Get("equipment_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			// No video can reference a malformed equipment id.
			shared.RespondWithJSON(w, r, http.StatusOK, []VideoResponse{})
			return
		}
		equipmentID = id
	}
	h.list(w, r, equipmentID)
}

func (h *VideoHandler) list(w http.ResponseWriter, r *http.Request, equipmentID uuid.UUID) {
	videos, err := h.videos.ListTasks(r.Context(), equipmentID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list videos")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, videoListToResponse(videos))
}

// Get handles GET /videos/{id}.
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		HandleAPIError(w, r, domain.ErrVideoNotFound, "")
		return
	}

	video, err := h.videos.GetTask(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get video")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, videoToResponse(video))
}

// Delete handles DELETE /videos/{id}.
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		HandleAPIError(w, r, domain.ErrVideoNotFound, "")
		return
	}

	if err := h.videos.DeleteTask(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete video")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
