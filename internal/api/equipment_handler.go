package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/gearcast-api/internal/api/shared"
	"github.com/phrazzld/gearcast-api/internal/domain"
	"github.com/phrazzld/gearcast-api/internal/platform/logger"
	"github.com/phrazzld/gearcast-api/internal/redact"
	"github.com/phrazzld/gearcast-api/internal/service"
)

// EquipmentHandler serves the /equipments routes.
type EquipmentHandler struct {
	equipment      service.EquipmentService
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewEquipmentHandler creates an EquipmentHandler. Uploads larger than
// maxUploadBytes are rejected; zero disables the limit.
func NewEquipmentHandler(equipment service.EquipmentService, maxUploadBytes int64, logger *slog.Logger) *EquipmentHandler {
	if equipment == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("equipment service cannot be nil for EquipmentHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for EquipmentHandler")
	}
	return &EquipmentHandler{
		equipment:      equipment,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With(slog.String("component", "equipment_handler")),
	}
}

// decodeEquipmentRequest reads and validates a name payload. It writes the
// error reply itself and reports whether the handler should go on.
func (h *EquipmentHandler) decodeEquipmentRequest(w http.ResponseWriter, r *http.Request) (EquipmentRequest, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req EquipmentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return req, false
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return req, false
	}
	return req, true
}

// Create handles POST /equipments.
func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeEquipmentRequest(w, r)
	if !ok {
		return
	}

	equipment, err := h.equipment.Create(r.Context(), req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create equipment")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, equipmentToResponse(equipment))
}

// List handles GET /equipments.
func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.equipment.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list equipment")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, equipmentListToResponse(list))
}

// Get handles GET /equipments/{id}.
func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		HandleAPIError(w, r, domain.ErrEquipmentNotFound, "")
		return
	}

	equipment, err := h.equipment.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get equipment")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, equipmentToResponse(equipment))
}

// Update handles PATCH /equipments/{id}.
func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		HandleAPIError(w, r, domain.ErrEquipmentNotFound, "")
		return
	}
	req, ok := h.decodeEquipmentRequest(w, r)
	if !ok {
		return
	}

	equipment, err := h.equipment.Update(r.Context(), id, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update equipment")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, equipmentToResponse(equipment))
}

// AttachManual handles POST /equipments/{id}/manuals.
func (h *EquipmentHandler) AttachManual(w http.ResponseWriter, r *http.Request) {
	h.attach(w, r, domain.AssetKindManual)
}

// AttachImage handles POST /equipments/{id}/images.
func (h *EquipmentHandler) AttachImage(w http.ResponseWriter, r *http.Request) {
	h.attach(w, r, domain.AssetKindImage)
}

func (h *EquipmentHandler) attach(w http.ResponseWriter, r *http.Request, kind domain.AssetKind) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := pathID(r, "id")
	if !ok {
		HandleAPIError(w, r, domain.ErrEquipmentNotFound, "")
		return
	}

	upload, err := readUpload(r, h.maxUploadBytes)
	if err != nil {
		if errors.Is(err, errUploadTooLarge) {
			shared.RespondWithErrorAndLog(w, r, http.StatusRequestEntityTooLarge, "File too large", err)
			return
		}
		log.Warn("unreadable upload", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid upload")
		return
	}

	equipment, err := h.equipment.AttachAsset(r.Context(), id, kind, upload)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to upload file")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, equipmentToResponse(equipment))
}

// RemoveManual handles DELETE /equipments/{id}/manuals?url=.
func (h *EquipmentHandler) RemoveManual(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, domain.AssetKindManual)
}

// RemoveImage handles DELETE /equipments/{id}/images?url=.
func (h *EquipmentHandler) RemoveImage(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, domain.AssetKindImage)
}

func (h *EquipmentHandler) remove(w http.ResponseWriter, r *http.Request, kind domain.AssetKind) {
	id, ok := pathID(r, "id")
	if !ok {
		HandleAPIError(w, r, domain.ErrEquipmentNotFound, "")
		return
	}

	// Blob cleanup is logged by the service and not reported to the caller.
	equipment, _, err := h.equipment.RemoveAsset(r.Context(), id, kind, r.URL.Query().Get("url"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to remove file")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, equipmentToResponse(equipment))
}
