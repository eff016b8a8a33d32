package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// VideoStatus represents the lifecycle state of a video generation task
type VideoStatus string

// Possible video status values
const (
	VideoStatusQueued     VideoStatus = "queued"
	VideoStatusProcessing VideoStatus = "processing"
	VideoStatusSuccess    VideoStatus = "success"
	VideoStatusFailed     VideoStatus = "failed"
)

// UntitledPrompt is shown in place of a blank stored prompt.
const UntitledPrompt = "Untitled video"

// Video tracks one request to generate a video for a piece of equipment.
// A uuid.Nil EquipmentID and empty ResultURL or ProviderTaskID mean "absent".
type Video struct {
	ID             uuid.UUID   `json:"id"`
	EquipmentID    uuid.UUID   `json:"equipment_id"`
	CreatedAt      time.Time   `json:"created_at"`
	Status         VideoStatus `json:"status"`
	ResultURL      string      `json:"result_url"`
	Prompt         string      `json:"prompt"`
	ProviderTaskID string      `json:"task_id"`
}

// NewVideo creates a queued video task for the given equipment.
func NewVideo(equipmentID uuid.UUID, prompt string) *Video {
	return &Video{
		ID:          uuid.New(),
		EquipmentID: equipmentID,
		CreatedAt:   time.Now().UTC(),
		Status:      VideoStatusQueued,
		Prompt:      prompt,
	}
}

// Valid reports whether s is one of the four lifecycle values.
func (s VideoStatus) Valid() bool {
	switch s {
	case VideoStatusQueued, VideoStatusProcessing, VideoStatusSuccess, VideoStatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions happen from s.
func (s VideoStatus) IsTerminal() bool {
	return s == VideoStatusSuccess || s == VideoStatusFailed
}

// ParseVideoStatus coerces a raw stored status into a valid VideoStatus.
// Matching is case-insensitive; anything unrecognized, including an empty
// value, becomes processing.
func ParseVideoStatus(raw string) VideoStatus {
	s := VideoStatus(strings.ToLower(strings.TrimSpace(raw)))
	if s.Valid() {
		return s
	}
	return VideoStatusProcessing
}

// createdAtLayouts are the timestamp shapes accepted from storage.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseCreatedAt parses a stored creation timestamp. A missing or unparsable
// value yields now; the fallback is for display only and is never written
// back.
func ParseCreatedAt(raw string, now func() time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		for _, layout := range createdAtLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t.UTC()
			}
		}
	}
	return now().UTC()
}

// NormalizeResultURL treats blank URLs as absent.
func NormalizeResultURL(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return raw
}

// DisplayPrompt returns the prompt to present for a stored value.
func DisplayPrompt(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return UntitledPrompt
	}
	return raw
}
