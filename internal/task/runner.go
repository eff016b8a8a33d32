package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// TaskRunnerConfig holds configuration for the task runner
type TaskRunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int
}

// DefaultTaskRunnerConfig returns a TaskRunnerConfig with reasonable defaults
func DefaultTaskRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount: 2,
		QueueSize:   100,
	}
}

// TaskRunner manages background task processing
type TaskRunner struct {
	queue    *Queue
	pool     *WorkerPool
	recovery RecoverySource
	logger   *slog.Logger
	stopOnce sync.Once
}

// NewTaskRunner creates a runner. recovery may be nil to skip startup
// recovery.
func NewTaskRunner(config TaskRunnerConfig, recovery RecoverySource, logger *slog.Logger) *TaskRunner {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "task_runner")

	queue := NewQueue(config.QueueSize, logger)
	pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: config.WorkerCount}, logger)

	return &TaskRunner{
		queue:    queue,
		pool:     pool,
		recovery: recovery,
		logger:   logger,
	}
}

// SetErrorHandler allows setting a custom error handler function
func (r *TaskRunner) SetErrorHandler(handler func(task Task, err error)) {
	r.pool.SetErrorHandler(handler)
}

// Submit enqueues task without blocking. It fails with ErrQueueFull or
// ErrQueueClosed.
func (r *TaskRunner) Submit(ctx context.Context, task Task) error {
	if err := r.queue.Enqueue(task); err != nil {
		return fmt.Errorf("failed to submit task %s: %w", task.ID(), err)
	}
	return nil
}

// Start recovers unfinished tasks and then starts the workers.
func (r *TaskRunner) Start() error {
	if err := r.Recover(context.Background()); err != nil {
		return fmt.Errorf("failed to recover tasks: %w", err)
	}
	r.pool.Start()
	return nil
}

// Recover re-enqueues the tasks reported by the recovery source. Tasks that
// do not fit in the queue are logged and left for the next start.
func (r *TaskRunner) Recover(ctx context.Context) error {
	if r.recovery == nil {
		return nil
	}

	tasks, err := r.recovery.RecoverTasks(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("recovering unfinished tasks", "count", len(tasks))

	for _, task := range tasks {
		if err := r.queue.Enqueue(task); err != nil {
			r.logger.Error("failed to requeue task",
				"task_id", task.ID(),
				"task_kind", task.Kind(),
				"error", err)
		}
	}
	return nil
}

// Stop closes the queue and waits for in-flight and queued tasks to finish.
func (r *TaskRunner) Stop() {
	r.stopOnce.Do(func() {
		r.queue.Close()
		r.pool.Wait()
		r.logger.Info("task runner stopped")
	})
}
