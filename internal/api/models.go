package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/gearcast-api/internal/domain"
)

// EquipmentRequest is the body of POST /equipments and PATCH /equipments/{id}.
type EquipmentRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// CreateVideoRequest is the body of POST /equipments/{id}/videos.
// A blank prompt is accepted.
type CreateVideoRequest struct {
	Prompt string `json:"prompt" validate:"max=2000"`
}

// EquipmentResponse is the wire shape of an Equipment.
type EquipmentResponse struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Manuals []string `json:"manuals"`
	Images  []string `json:"images"`
}

// VideoResponse is the wire shape of a video task. Absent values are null.
type VideoResponse struct {
	ID          string    `json:"id"`
	EquipmentID *string   `json:"equipment_id"`
	CreatedAt   time.Time `json:"created_at"`
	Status      string    `json:"status"`
	ResultURL   *string   `json:"result_url"`
	Prompt      string    `json:"prompt"`
	TaskID      *string   `json:"task_id"`
}

func equipmentToResponse(e *domain.Equipment) EquipmentResponse {
	return EquipmentResponse{
		ID:      e.ID.String(),
		Name:    e.Name,
		Manuals: nonNil(e.Manuals),
		Images:  nonNil(e.Images),
	}
}

func equipmentListToResponse(list []*domain.Equipment) []EquipmentResponse {
	out := make([]EquipmentResponse, 0, len(list))
	for _, e := range list {
		out = append(out, equipmentToResponse(e))
	}
	return out
}

func videoToResponse(v *domain.Video) VideoResponse {
	return VideoResponse{
		ID:          v.ID.String(),
		EquipmentID: optionalID(v.EquipmentID),
		CreatedAt:   v.CreatedAt,
		Status:      string(domain.ParseVideoStatus(string(v.Status))),
		ResultURL:   optional(domain.NormalizeResultURL(v.ResultURL)),
		Prompt:      domain.DisplayPrompt(v.Prompt),
		TaskID:      optional(v.ProviderTaskID),
	}
}

func videoListToResponse(list []*domain.Video) []VideoResponse {
	out := make([]VideoResponse, 0, len(list))
	for _, v := range list {
		out = append(out, videoToResponse(v))
	}
	return out
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalID(id uuid.UUID) *string {
	if id == uuid.Nil {
		return nil
	}
	return optional(id.String())
}
