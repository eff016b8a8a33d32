package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Dispatcher is an in-process Emitter. Emit calls every subscriber on the
// caller's goroutine before returning.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers []Handler
	logger   *slog.Logger
}

var _ Emitter = (*Dispatcher)(nil)

// NewDispatcher returns a Dispatcher with no subscribers.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{logger: logger.With("component", "event_dispatcher")}
}

// Subscribe adds h to the handlers that receive every event.
func (d *Dispatcher) Subscribe(h Handler) {
	d.mu.Lock()
	d.handlers = append(d.handlers, h)
	n := len(d.handlers)
	d.mu.Unlock()
	d.logger.Debug("handler subscribed", "handlers", n)
}

// Emit delivers event to each subscriber in order. A failing handler does
// not stop delivery; all failures are joined into the returned error.
func (d *Dispatcher) Emit(ctx context.Context, event *Event) error {
	d.mu.RLock()
	handlers := append([]Handler(nil), d.handlers...)
	d.mu.RUnlock()

	log := d.logger.With("event_id", event.ID, "event_type", event.Type)
	if len(handlers) == 0 {
		log.WarnContext(ctx, "event dropped, no handlers")
		return ErrNoHandlers
	}

	var errs []error
	for i, h := range handlers {
		if err := h.Handle(ctx, event); err != nil {
			log.ErrorContext(ctx, "event handler failed", "handler", i, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
