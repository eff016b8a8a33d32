package task

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var (
	ErrQueueClosed = errors.New("task queue is closed")
	ErrQueueFull   = errors.New("task queue is full")
)

// Queue is a bounded, non-blocking FIFO of tasks. It is the TaskSource the
// runner hands to its WorkerPool.
type Queue struct {
	mu     sync.RWMutex
	ch     chan Task
	closed bool
	logger *slog.Logger
}

// NewQueue returns a queue buffering up to capacity tasks. A negative
// capacity is treated as zero, so every Enqueue needs a waiting worker.
func NewQueue(capacity int, logger *slog.Logger) *Queue {
	if logger == nil {
		logger = slog.Default()
	}
	return &Queue{ch: make(chan Task, max(capacity, 0)), logger: logger}
}

// Enqueue adds t, failing with ErrQueueFull rather than waiting for room.
func (q *Queue) Enqueue(t Task) error {
	// Held for reading so Close cannot close ch during the send.
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.ch <- t:
	default:
		return fmt.Errorf("%w: %d tasks pending", ErrQueueFull, cap(q.ch))
	}
	q.logger.Debug("task queued",
		"task_id", t.ID(),
		"task_kind", t.Kind(),
		"pending", len(q.ch))
	return nil
}

// Tasks implements TaskSource. Buffered tasks stay readable after Close.
func (q *Queue) Tasks() <-chan Task {
	return q.ch
}

// Close rejects further tasks and closes the channel once. Safe to call
// repeatedly.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.ch)
	q.logger.Info("task queue closed", "pending", len(q.ch))
}

// Len reports how many tasks are waiting.
func (q *Queue) Len() int {
	return len(q.ch)
}
