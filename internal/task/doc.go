// Package task runs background work outside the HTTP request cycle.
//
// Tasks are pushed onto a bounded in-memory Queue with a non-blocking
// send and drained by a fixed WorkerPool. Each task runs with a detached
// context and no deadline. The TaskRunner ties the queue and the pool
// together and, on start, re-dispatches work a previous process left
// queued.
package task
