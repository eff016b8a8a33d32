// Package api translates HTTP requests into equipment and video service
// calls and renders their results as JSON. Route registration lives in
// cmd/server; this package only provides the handlers.
package api
