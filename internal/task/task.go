package task

import (
	"context"

	"github.com/google/uuid"
)

// Kind names a class of background work.
type Kind string

// KindVideoGeneration drives one video through the inference provider.
const KindVideoGeneration Kind = "video_generation"

// Task is one unit of background work, keyed by the record it acts on.
type Task interface {
	ID() uuid.UUID
	Kind() Kind
	Execute(ctx context.Context) error
}

// TaskSource feeds tasks to a WorkerPool. The pool drains the channel until
// it is closed.
type TaskSource interface {
	Tasks() <-chan Task
}

// RecoverySource yields tasks left unfinished by a previous process.
type RecoverySource interface {
	RecoverTasks(ctx context.Context) ([]Task, error)
}
