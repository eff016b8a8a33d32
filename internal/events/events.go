package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNoHandlers is returned by Emit when nothing is subscribed, so the
// caller knows the requested work will never run.
var ErrNoHandlers = errors.New("no handlers registered for event")

// Event requests background work of the given Type. Payload is the JSON
// encoding of the type's payload struct.
type Event struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// New builds an event of eventType with payload encoded as JSON.
func New(eventType string, payload any) (*Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   raw,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// UnmarshalPayload decodes the payload into v.
func (e *Event) UnmarshalPayload(v any) error {
	if len(e.Payload) == 0 {
		return fmt.Errorf("event %s has no payload", e.ID)
	}
	return json.Unmarshal(e.Payload, v)
}

// Handler acts on events. Handlers ignore event types they do not own.
type Handler interface {
	Handle(ctx context.Context, event *Event) error
}

// Emitter hands events to whoever is subscribed.
type Emitter interface {
	Emit(ctx context.Context, event *Event) error
}
