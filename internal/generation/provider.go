package generation

import "context"

// Provider generates videos through an external inference service.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string

	// GenerateVideo submits req. Any returned error means the generation
	// failed; a nil error always comes with a non-nil Response.
	GenerateVideo(ctx context.Context, req Request) (Response, error)
}

// Response is the result of GenerateVideo: Immediate or Accepted.
type Response interface {
	isResponse()
}

// Immediate is a provider answer that already carries a status and
// possibly the finished video.
type Immediate struct {
	// Status is the provider's own status string; empty when absent.
	Status         string
	VideoURL       string
	MediaURL       string
	ProviderTaskID string
}

// Accepted is a provider answer that only carries a handle for work still
// running on the provider side.
type Accepted struct {
	ProviderTaskID string
}

func (Immediate) isResponse() {}
func (Accepted) isResponse()  {}
