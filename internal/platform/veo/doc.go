// Package veo implements generation.Provider with Google's Veo models
// through the Gemini API (google.golang.org/genai).
//
// Veo accepts a single conditioning image, so only the first reference
// image is sent. Generation is a long-running operation: when the
// operation is not yet done the provider answers generation.Accepted with
// the operation name as the provider task id.
package veo
