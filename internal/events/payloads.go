package events

import "github.com/google/uuid"

// TypeVideoGeneration requests a background video generation run.
const TypeVideoGeneration = "video_generation"

// VideoGenerationPayload is the payload of a TypeVideoGeneration event.
type VideoGenerationPayload struct {
	VideoID     uuid.UUID `json:"video_id"`
	EquipmentID uuid.UUID `json:"equipment_id"`
	Prompt      string    `json:"prompt"`
}

// NewVideoGenerationEvent builds the event that schedules generation for a video.
func NewVideoGenerationEvent(videoID, equipmentID uuid.UUID, prompt string) (*Event, error) {
	return New(TypeVideoGeneration, VideoGenerationPayload{
		VideoID:     videoID,
		EquipmentID: equipmentID,
		Prompt:      prompt,
	})
}
