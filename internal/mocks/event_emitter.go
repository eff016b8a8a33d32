package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/gearcast-api/internal/events"
)

// MockEventEmitter implements events.Emitter and records emitted events.
type MockEventEmitter struct {
	EmitFn func(ctx context.Context, event *events.Event) error

	mu     sync.Mutex
	Events []*events.Event
}

var _ events.Emitter = (*MockEventEmitter)(nil)

// Emit implements events.Emitter.
func (m *MockEventEmitter) Emit(ctx context.Context, event *events.Event) error {
	m.mu.Lock()
	m.Events = append(m.Events, event)
	m.mu.Unlock()

	if m.EmitFn != nil {
		return m.EmitFn(ctx, event)
	}
	return nil
}
