// Package runware implements generation.Provider against the Runware REST
// API (videoInference tasks).
//
// Requests are POSTed as a JSON array of tasks to the configured base URL.
// The HTTP client is built without a timeout: video inference with sync
// delivery holds the connection open until the render finishes.
package runware
