package task

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
)

// WorkerPool manages a pool of worker goroutines that process tasks
// from a task queue. Workers exit when the queue channel is closed and
// drained.
type WorkerPool struct {
	// source supplies the tasks to run
	source TaskSource

	// workerCount is the number of concurrent workers to start
	workerCount int

	// wg tracks active worker goroutines for clean shutdown
	wg sync.WaitGroup

	startOnce sync.Once

	logger *slog.Logger

	// errorHandler is called when a task execution fails or panics
	// If nil, errors are only logged
	errorHandler func(task Task, err error)
}

// WorkerPoolConfig holds configuration options for the worker pool
type WorkerPoolConfig struct {
	// WorkerCount determines how many concurrent worker goroutines to start
	// If zero or negative, defaults to 1
	WorkerCount int
}

// DefaultWorkerPoolConfig returns a WorkerPoolConfig with reasonable defaults
func DefaultWorkerPoolConfig() WorkerPoolConfig {
	return WorkerPoolConfig{
		WorkerCount: 2,
	}
}

// NewWorkerPool creates a new worker pool with the specified configuration.
// If logger is nil, a default logger will be used.
func NewWorkerPool(source TaskSource, config WorkerPoolConfig, logger *slog.Logger) *WorkerPool {
	if logger == nil {
		logger = slog.Default()
	}
	workerCount := config.WorkerCount
	if workerCount <= 0 {
		workerCount = 1
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", 1)
	}

	return &WorkerPool{
		source:      source,
		workerCount: workerCount,
		logger:      logger,
	}
}

// SetErrorHandler allows setting a custom error handler for task execution failures
func (p *WorkerPool) SetErrorHandler(handler func(task Task, err error)) {
	p.errorHandler = handler
}

// Start launches the workers. Calling it more than once has no effect.
func (p *WorkerPool) Start() {
	p.startOnce.Do(func() {
		for i := 0; i < p.workerCount; i++ {
			p.wg.Add(1)
			go p.worker(i)
		}
		p.logger.Info("worker pool started", "worker_count", p.workerCount)
	})
}

// Wait blocks until every worker has exited. Workers exit once the queue
// is closed and everything buffered in it has run.
func (p *WorkerPool) Wait() {
	p.wg.Wait()
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	p.logger.Debug("starting worker", "worker_id", id)
	for task := range p.source.Tasks() {
		p.runTask(task, id)
	}
	p.logger.Debug("task channel closed, stopping worker", "worker_id", id)
}

// runTask executes one task with a detached context; a panic is converted
// into an error so the worker survives.
func (p *WorkerPool) runTask(task Task, workerID int) {
	logger := p.logger.With(
		"task_id", task.ID(),
		"task_kind", task.Kind(),
		"worker_id", workerID,
	)

	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("task panicked: %v", r)
				logger.Error("task panicked",
					"panic", fmt.Sprint(r),
					"stack", string(debug.Stack()))
			}
		}()
		logger.Info("processing task")
		err = task.Execute(context.Background())
	}()

	if err != nil {
		logger.Error("task execution failed", "error", err)
		if p.errorHandler != nil {
			p.errorHandler(task, err)
		}
		return
	}
	logger.Info("task completed successfully")
}
