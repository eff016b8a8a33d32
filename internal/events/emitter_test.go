package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	newEvent := func(t *testing.T) *Event {
		event, err := NewVideoGenerationEvent(uuid.New(), uuid.New(), "p")
		require.NoError(t, err)
		return event
	}

	t.Run("no handlers", func(t *testing.T) {
		emitter := NewDispatcher(logger)
		err := emitter.Emit(context.Background(), newEvent(t))
		assert.ErrorIs(t, err, ErrNoHandlers)
	})

	t.Run("all handlers receive the event", func(t *testing.T) {
		emitter := NewDispatcher(logger)
		h1, h2 := &recordingHandler{}, &recordingHandler{}
		emitter.Subscribe(h1)
		emitter.Subscribe(h2)

		event := newEvent(t)
		require.NoError(t, emitter.Emit(context.Background(), event))

		assert.Equal(t, []*Event{event}, h1.events)
		assert.Equal(t, []*Event{event}, h2.events)
	})

	t.Run("failures are joined and later handlers still run", func(t *testing.T) {
		emitter := NewDispatcher(logger)
		full := errors.New("queue is full")
		first := &recordingHandler{err: full}
		second := &recordingHandler{}
		third := &recordingHandler{err: errors.New("closed")}
		emitter.Subscribe(first)
		emitter.Subscribe(second)
		emitter.Subscribe(third)

		err := emitter.Emit(context.Background(), newEvent(t))
		require.Error(t, err)
		assert.ErrorIs(t, err, full)
		assert.ErrorContains(t, err, "closed")
		assert.Len(t, first.events, 1)
		assert.Len(t, second.events, 1)
		assert.Len(t, third.events, 1)
	})

	t.Run("nil logger", func(t *testing.T) {
		emitter := NewDispatcher(nil)
		emitter.Subscribe(&recordingHandler{})
		assert.NoError(t, emitter.Emit(context.Background(), newEvent(t)))
	})
}
