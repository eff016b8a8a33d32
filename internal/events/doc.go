// Package events decouples services from the background task machinery.
//
// A service that needs work done outside the request emits an Event.
// Handlers subscribed to the Dispatcher (the task package's DispatchHandler
// in production) turn it into a queued task. Emission is synchronous: a nil
// error means the work was accepted.
package events
